package globfs

import (
	"path"
	"strings"
)

// PathGlob is a tagged variant of the glob algebra: either a terminal
// Wildcard matching entries of one directory, or a non-terminal
// DirWildcard that recurses into matched subdirectories.
type PathGlob interface {
	CanonicalDir() Dir
	SymbolicPath() string
	cacheKey() string
}

// WildcardGlob matches Wildcard against the entries of CanonicalDir; each
// match becomes a PathStat under SymbolicPath.
type WildcardGlob struct {
	Dir      Dir
	Symbolic string
	Wildcard Pattern
}

func (g WildcardGlob) CanonicalDir() Dir     { return g.Dir }
func (g WildcardGlob) SymbolicPath() string  { return g.Symbolic }
func (g WildcardGlob) cacheKey() string {
	return "w\x00" + string(g.Dir) + "\x00" + g.Symbolic + "\x00" + g.Wildcard.raw
}

// DirWildcardGlob matches Wildcard against the entries of CanonicalDir,
// then recurses into each matched subdirectory with Remainder. Remainder
// is never empty.
type DirWildcardGlob struct {
	Dir       Dir
	Symbolic  string
	Wildcard  Pattern
	Remainder []Pattern
}

func (g DirWildcardGlob) CanonicalDir() Dir    { return g.Dir }
func (g DirWildcardGlob) SymbolicPath() string { return g.Symbolic }
func (g DirWildcardGlob) cacheKey() string {
	var sb strings.Builder
	sb.WriteString("d\x00")
	sb.WriteString(string(g.Dir))
	sb.WriteString("\x00")
	sb.WriteString(g.Symbolic)
	sb.WriteString("\x00")
	sb.WriteString(g.Wildcard.raw)
	for _, p := range g.Remainder {
		sb.WriteString("\x00")
		sb.WriteString(p.raw)
	}
	return sb.String()
}

// Create parses each of filespecs and flattens the results into one list,
// for callers that do not need per-input provenance (symlink
// canonicalization, which then wraps the result with PathGlobsFromGlobs).
func Create(filespecs []string) ([]PathGlob, error) {
	var all []PathGlob
	for _, fs := range filespecs {
		globs, err := Parse(Dir(""), "", fs)
		if err != nil {
			return nil, err
		}
		all = append(all, globs...)
	}
	return all, nil
}

// Parse decomposes filespec into PathGlobs rooted at canonicalDir, with
// symbolicPath as the symbolic-path prefix already accumulated by a caller
// recursing through intermediate directories (top-level callers pass "").
func Parse(canonicalDir Dir, symbolicPath, filespec string) ([]PathGlob, error) {
	if path.IsAbs(filespec) {
		return nil, Errorf("absolute paths are not supported in globs: %s", filespec)
	}
	rawParts := strings.Split(filespec, "/")
	parts := make([]Pattern, 0, len(rawParts))
	prevDoubleStar := false
	for _, part := range rawParts {
		if part == "" || part == "." {
			continue
		}
		isDoubleStar := part == doubleStarRaw
		if prevDoubleStar && isDoubleStar {
			continue
		}
		prevDoubleStar = isDoubleStar
		p, err := NewPattern(part)
		if err != nil {
			return nil, WrapErrorf(err, "could not parse %q as a glob", filespec)
		}
		parts = append(parts, p)
	}
	return parseGlobs(canonicalDir, symbolicPath, parts)
}

func parseGlobs(canonicalDir Dir, symbolicPath string, parts []Pattern) ([]PathGlob, error) {
	if len(parts) == 0 {
		return nil, nil
	}

	if parts[0].raw == doubleStarRaw {
		if len(parts) == 1 {
			// A trailing "**" matches everything inside, at any depth,
			// including the current directory's own entries.
			return []PathGlob{
				DirWildcardGlob{
					Dir: canonicalDir, Symbolic: symbolicPath,
					Wildcard: singleStarPattern, Remainder: []Pattern{doubleStarPattern},
				},
				WildcardGlob{Dir: canonicalDir, Symbolic: symbolicPath, Wildcard: singleStarPattern},
			}, nil
		}
		withDoubleStar := DirWildcardGlob{
			Dir: canonicalDir, Symbolic: symbolicPath,
			Wildcard: singleStarPattern, Remainder: append([]Pattern(nil), parts...),
		}
		var withoutDoubleStar PathGlob
		if len(parts) == 2 {
			withoutDoubleStar = WildcardGlob{Dir: canonicalDir, Symbolic: symbolicPath, Wildcard: parts[1]}
		} else {
			withoutDoubleStar = DirWildcardGlob{
				Dir: canonicalDir, Symbolic: symbolicPath,
				Wildcard: parts[1], Remainder: append([]Pattern(nil), parts[2:]...),
			}
		}
		return []PathGlob{withDoubleStar, withoutDoubleStar}, nil
	}

	if parts[0].raw == ".." {
		parentDir, ok := popDir(canonicalDir)
		if !ok {
			return nil, Errorf("globs may not traverse outside of the root: %v", renderParts(parts))
		}
		parentSymbolic := joinSymbolic(symbolicPath, "..")
		return parseGlobs(parentDir, parentSymbolic, parts[1:])
	}

	if len(parts) == 1 {
		return []PathGlob{WildcardGlob{Dir: canonicalDir, Symbolic: symbolicPath, Wildcard: parts[0]}}, nil
	}
	return []PathGlob{DirWildcardGlob{
		Dir: canonicalDir, Symbolic: symbolicPath,
		Wildcard: parts[0], Remainder: append([]Pattern(nil), parts[1:]...),
	}}, nil
}

func popDir(d Dir) (Dir, bool) {
	s := string(d)
	if s == "" {
		return "", false
	}
	idx := strings.LastIndexByte(s, '/')
	if idx < 0 {
		return "", true
	}
	return Dir(s[:idx]), true
}

func joinSymbolic(base, part string) string {
	if base == "" {
		return part
	}
	return base + "/" + part
}

func renderParts(parts []Pattern) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.raw
	}
	return out
}
