package globfs

import "context"

// VFS is the capability set the expansion engine requires of any concrete
// filesystem. Implementations must be safe for concurrent use: the
// expansion engine invokes these methods from many goroutines within a
// single Expand call.
type VFS interface {
	// ReadLink resolves one symlink hop, returning the root-relative path
	// the link points at. Absolute link targets are an error.
	ReadLink(ctx context.Context, link Link) (string, error)

	// ScanDir returns all entries of dir, sorted by path.
	ScanDir(ctx context.Context, dir Dir) ([]Stat, error)

	// IsIgnored applies the VFS's context ignore set, distinct from any
	// per-expansion GitignoreStyleExcludes.
	IsIgnored(stat Stat) bool
}

// RootedVFS is a VFS that additionally knows its own root path, used only
// to enrich strict-match diagnostics (§9 Open Question: diagnostic
// context). Implementing it is optional.
type RootedVFS interface {
	VFS
	RootPath() string
}

func rootPathOf(v VFS) string {
	if rv, ok := v.(RootedVFS); ok {
		return rv.RootPath()
	}
	return ""
}
