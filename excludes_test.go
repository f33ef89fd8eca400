package globfs

import (
	"testing"

	"github.com/basaltbuild/globfs/internal/testutil"
)

func TestGitignoreStyleExcludesEmptyIsSingleton(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)
	a, err := NewGitignoreStyleExcludes(nil)
	assert.NoError(err)
	b, err := NewGitignoreStyleExcludes([]string{})
	assert.NoError(err)
	assert.True(a == b, "expected shared empty-matcher singleton")
	assert.True(!a.IsIgnored(Dir("anything")), "empty excludes should never ignore")
}

func TestGitignoreStyleExcludesDirOnly(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)
	ex, err := NewGitignoreStyleExcludes([]string{"secret/"})
	assert.NoError(err)
	assert.True(ex.IsIgnored(Dir("secret")), "expected secret/ to ignore directory secret")
	assert.True(!ex.IsIgnored(File{FilePath: "secret", IsExecutable: false}), "dir-only pattern should not match a file of the same name")
}

func TestGitignoreStyleExcludesNegation(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)
	ex, err := NewGitignoreStyleExcludes([]string{"*.log", "!important.log"})
	assert.NoError(err)
	assert.True(ex.IsIgnored(File{FilePath: "debug.log"}), "expected debug.log ignored")
	assert.True(!ex.IsIgnored(File{FilePath: "important.log"}), "expected important.log to survive negation")
}

func TestGitignoreStyleExcludesRecursive(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)
	ex, err := NewGitignoreStyleExcludes([]string{"secret/**"})
	assert.NoError(err)
	assert.True(ex.IsIgnored(File{FilePath: "secret/b.txt"}), "expected secret/b.txt ignored")
	assert.True(!ex.IsIgnored(File{FilePath: "a.txt"}), "expected a.txt to survive")
}
