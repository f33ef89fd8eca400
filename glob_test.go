package globfs

import (
	"testing"

	"github.com/basaltbuild/globfs/internal/testutil"
)

func TestParseRejectsAbsolutePaths(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)
	_, err := Parse(Dir(""), "", "/etc/passwd")
	assert.Error(err, "absolute paths are not supported")
}

func TestParseEscapeOutsideRoot(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)
	_, err := Parse(Dir(""), "", "../outside")
	assert.Error(err, "may not traverse outside of the root")
}

func TestParseDotDotPopsCanonicalDirButKeepsSymbolicLiteral(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)
	globs, err := Parse(Dir("a/b"), "a/b", "../c")
	assert.NoError(err)
	assert.Equal(1, len(globs))
	w, ok := globs[0].(WildcardGlob)
	assert.True(ok, "expected WildcardGlob")
	assert.Equal(Dir("a"), w.Dir)
	assert.Equal("a/b/..", w.Symbolic)
	assert.Equal("c", w.Wildcard.String())
}

func TestParseTrailingDoubleStar(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)
	globs, err := Parse(Dir(""), "", "abc/**")
	assert.NoError(err)
	// "abc" is a literal leading component; the trailing "**" special
	// case is only realized once expansion recurses into the matched
	// "abc" subdirectory and re-parses the remainder ("**") there.
	assert.Equal(1, len(globs))
	dw, ok := globs[0].(DirWildcardGlob)
	assert.True(ok, "expected DirWildcardGlob")
	assert.Equal("abc", dw.Wildcard.String())
	assert.Equal(1, len(dw.Remainder))
	assert.Equal("**", dw.Remainder[0].String())
}

func TestParseCollapsedDoubleStarIdenticalToSingle(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)
	collapsed, err := Parse(Dir(""), "", "a/**/**/*.rs")
	assert.NoError(err)
	single, err := Parse(Dir(""), "", "a/**/*.rs")
	assert.NoError(err)
	assert.Equal(len(single), len(collapsed))
	for i := range single {
		assert.Equal(single[i].cacheKey(), collapsed[i].cacheKey())
	}
}

func TestParseIdempotent(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)
	filespec := "a/**/b/*.go"
	first, err := Parse(Dir(""), "", filespec)
	assert.NoError(err)
	second, err := Parse(Dir(""), "", filespec)
	assert.NoError(err)
	assert.Equal(len(first), len(second))
	for i := range first {
		assert.Equal(first[i].cacheKey(), second[i].cacheKey())
	}
}

func TestCreateFlattensMultipleFilespecs(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)
	globs, err := Create([]string{"a/*.go", "b/*.go"})
	assert.NoError(err)
	assert.Equal(2, len(globs))
}
