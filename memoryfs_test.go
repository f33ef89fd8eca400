package globfs

import (
	"context"
	"testing"

	"github.com/basaltbuild/globfs/internal/testutil"
)

func TestMemoryFSScanDirSortedAndTyped(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	fs := NewMemoryFS()
	fs.WriteFile("b_file", false)
	fs.MkDir("a_dir")
	fs.Symlink("c_link", "b_file")

	stats, err := fs.ScanDir(context.Background(), Dir(""))
	assert.NoError(err)
	assert.Equal(3, len(stats))
	assert.Equal(Dir("a_dir"), stats[0])
	assert.Equal(File{FilePath: "b_file", IsExecutable: false}, stats[1])
	assert.Equal(Link("c_link"), stats[2])
}

func TestMemoryFSScanDirUnknownDirectoryErrors(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	fs := NewMemoryFS()
	_, err := fs.ScanDir(context.Background(), Dir("missing"))
	assert.Error(err, "no such directory")
}

func TestMemoryFSWriteFileCreatesMissingParents(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	fs := NewMemoryFS()
	fs.WriteFile("a/b/c.txt", false)

	stats, err := fs.ScanDir(context.Background(), Dir(""))
	assert.NoError(err)
	assert.Equal(1, len(stats))
	assert.Equal(Dir("a"), stats[0])

	stats, err = fs.ScanDir(context.Background(), Dir("a"))
	assert.NoError(err)
	assert.Equal([]Stat{Dir("a/b")}, stats)
}

func TestMemoryFSReadLinkRejectsAbsoluteTarget(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	fs := NewMemoryFS()
	fs.Symlink("link", "/etc/passwd")
	_, err := fs.ReadLink(context.Background(), Link("link"))
	assert.Error(err, "absolute symlink")
}

func TestMemoryFSReadLinkRelativeToParent(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	fs := NewMemoryFS()
	fs.MkDir("sub")
	fs.WriteFile("sub/target", false)
	fs.Symlink("sub/link", "target")

	resolved, err := fs.ReadLink(context.Background(), Link("sub/link"))
	assert.NoError(err)
	assert.Equal("sub/target", resolved)
}

func TestMemoryFSIsIgnoredWithoutSetIgnoreIsFalse(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	fs := NewMemoryFS()
	assert.True(!fs.IsIgnored(File{FilePath: "anything"}), "no ignore set configured")
}

func TestMemoryFSSetIgnoreConfiguresIsIgnored(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	fs := NewMemoryFS()
	assert.NoError(fs.SetIgnore([]string{"*.log"}))
	assert.True(fs.IsIgnored(File{FilePath: "build.log"}))
	assert.True(!fs.IsIgnored(File{FilePath: "build.txt"}))
}
