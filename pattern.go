package globfs

import (
	"github.com/bmatcuk/doublestar/v4"
)

// Pattern is a compiled shell-style glob matched against a single path
// component (never against a string containing "/"). Matching is delegated
// to doublestar, whose additional cross-separator "**" handling never
// triggers here since a Pattern is only ever compared against one
// directory-entry name at a time.
type Pattern struct {
	raw string
}

// NewPattern compiles raw as a shell-style glob pattern.
func NewPattern(raw string) (Pattern, error) {
	if !doublestar.ValidatePattern(raw) {
		return Pattern{}, Errorf("could not parse %q as a glob pattern", raw)
	}
	return Pattern{raw: raw}, nil
}

func mustPattern(raw string) Pattern {
	p, err := NewPattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original pattern text.
func (p Pattern) String() string { return p.raw }

// Match reports whether name satisfies the pattern.
func (p Pattern) Match(name string) bool {
	ok, err := doublestar.Match(p.raw, name)
	return err == nil && ok
}

var (
	singleStarPattern = mustPattern("*")
	doubleStarPattern = mustPattern("**")
)

const doubleStarRaw = "**"
