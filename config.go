package globfs

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// Config holds this module's own runtime tunables — worker pool sizing,
// default ignore file names, and the default strict-match policy a
// front end should apply when the caller does not specify one.
type Config struct {
	WorkerPoolSize     int
	DefaultIgnoreFiles []string
	DefaultStrictMatch StrictGlobMatching
}

// DefaultConfig returns the config used when no file is loaded.
func DefaultConfig() Config {
	return Config{
		WorkerPoolSize:     0, // 0 defers to runtime.NumCPU(), see NewWorkerPool.
		DefaultIgnoreFiles: []string{".gitignore"},
		DefaultStrictMatch: StrictIgnore,
	}
}

// LoadConfig reads a tiny line-oriented "key = value" file (the teacher's
// own CLI layer reads its settings the same minimal way; a handful of
// scalar settings does not warrant a new ecosystem dependency, see
// DESIGN.md). Blank lines and lines starting with "#" are ignored.
// Recognized keys: worker_pool_size (int), default_ignore_files
// (comma-separated), default_strict_match (ignore|warn|error).
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return Config{}, WrapErrorf(err, "could not open config %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return Config{}, Errorf("%s:%d: expected key = value, got %q", path, lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "worker_pool_size":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Config{}, WrapErrorf(err, "%s:%d: invalid worker_pool_size %q", path, lineNum, value)
			}
			cfg.WorkerPoolSize = n
		case "default_ignore_files":
			cfg.DefaultIgnoreFiles = splitNonEmpty(value, ",")
		case "default_strict_match":
			strict, err := ParseStrictGlobMatching(value)
			if err != nil {
				return Config{}, WrapErrorf(err, "%s:%d: invalid default_strict_match", path, lineNum)
			}
			cfg.DefaultStrictMatch = strict
		default:
			return Config{}, Errorf("%s:%d: unrecognized config key %q", path, lineNum, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, WrapErrorf(err, "could not read config %s", path)
	}
	return cfg, nil
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
