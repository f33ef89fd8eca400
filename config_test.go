package globfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/basaltbuild/globfs/internal/testutil"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "globfs.conf")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfigValidFile(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	path := writeConfig(t, "# a comment\n\nworker_pool_size = 4\ndefault_ignore_files = .gitignore, .globfsignore\ndefault_strict_match = warn\n")
	cfg, err := LoadConfig(path)
	assert.NoError(err)
	assert.Equal(4, cfg.WorkerPoolSize)
	assert.Equal([]string{".gitignore", ".globfsignore"}, cfg.DefaultIgnoreFiles)
	assert.Equal(StrictWarn, cfg.DefaultStrictMatch)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.conf"))
	assert.Error(err, "could not open config")
}

func TestLoadConfigMalformedLine(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	path := writeConfig(t, "not_a_valid_line\n")
	_, err := LoadConfig(path)
	assert.Error(err, "expected key = value")
}

func TestLoadConfigUnrecognizedKey(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	path := writeConfig(t, "bogus_key = 1\n")
	_, err := LoadConfig(path)
	assert.Error(err, "unrecognized config key")
}

func TestLoadConfigInvalidStrictMatch(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	path := writeConfig(t, "default_strict_match = sometimes\n")
	_, err := LoadConfig(path)
	assert.Error(err, "invalid default_strict_match")
}

func TestLoadConfigInvalidWorkerPoolSize(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	path := writeConfig(t, "worker_pool_size = not_a_number\n")
	_, err := LoadConfig(path)
	assert.Error(err, "invalid worker_pool_size")
}

func TestDefaultConfigValues(t *testing.T) {
	t.Parallel()
	assert := testutil.NewAssert(t)

	cfg := DefaultConfig()
	assert.Equal(0, cfg.WorkerPoolSize)
	assert.Equal([]string{".gitignore"}, cfg.DefaultIgnoreFiles)
	assert.Equal(StrictIgnore, cfg.DefaultStrictMatch)
}
