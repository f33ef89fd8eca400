package globfs

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
)

// PosixFS is a concrete VFS rooted at a real directory on disk. The root
// is canonicalized (symlinks resolved) once, at construction.
type PosixFS struct {
	root   string
	pool   *WorkerPool
	ignore *GitignoreStyleExcludes
}

// NewPosixFS canonicalizes root and returns a PosixFS rooted there.
// ignorePatterns seed the VFS's context ignore set (distinct from any
// per-expansion GitignoreStyleExcludes passed to Expand). A nil pool gets
// one sized to runtime.NumCPU().
func NewPosixFS(root string, pool *WorkerPool, ignorePatterns []string) (*PosixFS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, WrapErrorf(err, "could not resolve root %s", root)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, WrapErrorf(err, "could not canonicalize root %s", root)
	}
	info, err := os.Stat(real)
	if err != nil {
		return nil, WrapErrorf(err, "could not stat root %s", root)
	}
	if !info.IsDir() {
		return nil, Errorf("root is not a directory: %s", root)
	}
	ignore, err := NewGitignoreStyleExcludes(ignorePatterns)
	if err != nil {
		return nil, WrapErrorf(err, "could not parse ignore patterns %v", ignorePatterns)
	}
	if pool == nil {
		pool = NewWorkerPool(0)
	}
	return &PosixFS{root: real, pool: pool, ignore: ignore}, nil
}

// RootPath returns the canonicalized root directory.
func (fs *PosixFS) RootPath() string { return fs.root }

// IsIgnored applies the VFS's context ignore set.
func (fs *PosixFS) IsIgnored(stat Stat) bool { return fs.ignore.IsIgnored(stat) }

// ScanDir returns all entries of dir, sorted lexicographically by full
// relative path.
func (fs *PosixFS) ScanDir(ctx context.Context, dir Dir) ([]Stat, error) {
	var result []Stat
	err := fs.pool.Submit(ctx, func() error {
		absDir := filepath.Join(fs.root, filepath.FromSlash(string(dir)))
		entries, err := os.ReadDir(absDir)
		if err != nil {
			return err
		}
		stats := make([]Stat, 0, len(entries))
		for _, entry := range entries {
			relPath := path.Join(string(dir), entry.Name())
			st, err := statFromDirEntry(relPath, entry)
			if err != nil {
				return err
			}
			stats = append(stats, st)
		}
		sort.Slice(stats, func(i, j int) bool { return stats[i].Path() < stats[j].Path() })
		result = stats
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func statFromDirEntry(relPath string, entry os.DirEntry) (Stat, error) {
	switch {
	case entry.Type()&os.ModeSymlink != 0:
		return Link(relPath), nil
	case entry.IsDir():
		return Dir(relPath), nil
	case entry.Type().IsRegular():
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		return File{FilePath: relPath, IsExecutable: info.Mode()&0o100 != 0}, nil
	default:
		return nil, Errorf("expected file, dir or link but %s is a %v", relPath, entry.Type())
	}
}

// ReadLink resolves one symlink hop. Absolute link targets fail; relative
// targets are resolved against link's parent directory and returned as a
// root-relative path.
func (fs *PosixFS) ReadLink(ctx context.Context, link Link) (string, error) {
	var target string
	err := fs.pool.Submit(ctx, func() error {
		absLink := filepath.Join(fs.root, filepath.FromSlash(string(link)))
		raw, err := os.Readlink(absLink)
		if err != nil {
			return err
		}
		if filepath.IsAbs(raw) {
			return Errorf("absolute symlink: %s -> %s", link, raw)
		}
		parent := path.Dir(string(link))
		if parent == "." {
			parent = ""
		}
		target = path.Join(parent, filepath.ToSlash(raw))
		return nil
	})
	return target, err
}

// Stat lstats relPath and classifies it as Dir, File or Link.
func (fs *PosixFS) Stat(relPath string) (Stat, error) {
	absPath := filepath.Join(fs.root, filepath.FromSlash(relPath))
	info, err := os.Lstat(absPath)
	if err != nil {
		return nil, err
	}
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return Link(relPath), nil
	case info.IsDir():
		return Dir(relPath), nil
	case info.Mode().IsRegular():
		return File{FilePath: relPath, IsExecutable: info.Mode()&0o100 != 0}, nil
	default:
		return nil, Errorf("expected file, dir or link but %s is a %v", relPath, info.Mode())
	}
}

// ReadFile reads the full contents of relPath.
func (fs *PosixFS) ReadFile(relPath string) ([]byte, error) {
	return os.ReadFile(filepath.Join(fs.root, filepath.FromSlash(relPath)))
}

// PathStats resolves each of paths to a PathStat, canonicalizing any
// symlink. A path that does not exist yields a nil entry, never an error;
// other I/O errors propagate and abort the whole call.
func (fs *PosixFS) PathStats(ctx context.Context, paths []string) ([]PathStat, error) {
	results := make([]PathStat, len(paths))
	eg, egctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		eg.Go(func() error {
			st, err := fs.Stat(p)
			if err != nil {
				if os.IsNotExist(err) {
					results[i] = nil
					return nil
				}
				return err
			}
			switch s := st.(type) {
			case Dir:
				results[i] = NewDirPathStat(string(s), s)
			case File:
				results[i] = NewFilePathStat(s.FilePath, s)
			case Link:
				ps, err := canonicalize(egctx, fs, p, s)
				if err != nil {
					return err
				}
				results[i] = ps
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
