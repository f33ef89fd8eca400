package globfs

// StrictGlobMatching controls what happens when a top-level include
// file-spec matches zero files.
type StrictGlobMatching int

const (
	// StrictIgnore suppresses all strict-match checks.
	StrictIgnore StrictGlobMatching = iota
	// StrictWarn logs a diagnostic but still returns the matched outputs.
	StrictWarn
	// StrictError fails the expansion entirely.
	StrictError
)

// ParseStrictGlobMatching parses the three boundary-level strings.
func ParseStrictGlobMatching(s string) (StrictGlobMatching, error) {
	switch s {
	case "ignore":
		return StrictIgnore, nil
	case "warn":
		return StrictWarn, nil
	case "error":
		return StrictError, nil
	default:
		return 0, Errorf("unrecognized strict glob matching behavior: %q", s)
	}
}

// GlobParsedSource is the original user-supplied file-spec string, used as
// a DAG root identifier for strict-match reporting. Equality is by string
// contents.
type GlobParsedSource string

// missingGlobSource is the sentinel GlobSource input used by
// PathGlobsFromGlobs, which forces StrictGlobMatching::Ignore and so never
// surfaces this value in a diagnostic.
const missingGlobSource GlobParsedSource = "<PathGlobs.from_globs>"

// PathGlobIncludeEntry pairs one parsed file-spec with the PathGlobs it
// decomposed into.
type PathGlobIncludeEntry struct {
	Input GlobParsedSource
	Globs []PathGlob
}

// GlobSource records the provenance of an intermediate glob during
// expansion: either a top-level parsed input, or a parent glob whose
// recursion produced it.
type GlobSource interface {
	isGlobSource()
}

// ParsedInputSource marks a glob as directly produced by parsing a
// top-level include file-spec.
type ParsedInputSource struct {
	Input GlobParsedSource
}

func (ParsedInputSource) isGlobSource() {}

// ParentGlobSource marks a glob as produced by recursing into a parent
// DirWildcardGlob's matched subdirectory.
type ParentGlobSource struct {
	Glob PathGlob
}

func (ParentGlobSource) isGlobSource() {}

// GlobWithSource pairs a glob awaiting expansion with the source that
// produced it.
type GlobWithSource struct {
	Glob   PathGlob
	Source GlobSource
}

// PathGlobs bundles parsed includes, compiled excludes, and the
// strict-match policy the expansion engine should enforce.
type PathGlobs struct {
	Include     []PathGlobIncludeEntry
	Exclude     *GitignoreStyleExcludes
	StrictMatch StrictGlobMatching
	Logger      Logger
}

// NewPathGlobs parses include and exclude into a PathGlobs, per §4.D.
func NewPathGlobs(include, exclude []string, strict StrictGlobMatching) (PathGlobs, error) {
	entries := make([]PathGlobIncludeEntry, 0, len(include))
	for _, filespec := range include {
		globs, err := Parse(Dir(""), "", filespec)
		if err != nil {
			return PathGlobs{}, err
		}
		entries = append(entries, PathGlobIncludeEntry{Input: GlobParsedSource(filespec), Globs: globs})
	}
	ex, err := NewGitignoreStyleExcludes(exclude)
	if err != nil {
		return PathGlobs{}, err
	}
	return PathGlobs{Include: entries, Exclude: ex, StrictMatch: strict}, nil
}

// PathGlobsFromGlobs wraps raw globs with a sentinel parsed-source and
// forces StrictGlobMatching::Ignore. Used internally by canonicalize to
// resolve one symlink hop via the ordinary expansion machinery.
func PathGlobsFromGlobs(globs []PathGlob) PathGlobs {
	entries := make([]PathGlobIncludeEntry, 0, len(globs))
	for _, g := range globs {
		entries = append(entries, PathGlobIncludeEntry{Input: missingGlobSource, Globs: []PathGlob{g}})
	}
	return PathGlobs{Include: entries, Exclude: emptyExcludes(), StrictMatch: StrictIgnore}
}
