package globfs

import (
	"strings"

	"github.com/git-pkgs/gitignore"
)

// GitignoreStyleExcludes is an immutable gitignore-style pattern matcher,
// carrying the original pattern list alongside the compiled matcher for
// diagnostics. An empty pattern list shares a canonical empty-matcher
// value via emptyExcludes.
type GitignoreStyleExcludes struct {
	patterns []string
	matcher  *gitignore.Matcher
}

var emptyExcludesSingleton = &GitignoreStyleExcludes{}

func emptyExcludes() *GitignoreStyleExcludes {
	return emptyExcludesSingleton
}

// NewGitignoreStyleExcludes compiles patterns (gitignore syntax: leading
// "!" negates, trailing "/" anchors to directories, leading "/" anchors to
// the root, "**" matches any number of path components) into a matcher.
func NewGitignoreStyleExcludes(patterns []string) (*GitignoreStyleExcludes, error) {
	if len(patterns) == 0 {
		return emptyExcludes(), nil
	}
	m := &gitignore.Matcher{}
	m.AddPatterns([]byte(strings.Join(patterns, "\n")), "")
	if errs := m.Errors(); len(errs) > 0 {
		return nil, Errorf("invalid glob exclude pattern: %s", errs[0].Error())
	}
	return &GitignoreStyleExcludes{
		patterns: append([]string(nil), patterns...),
		matcher:  m,
	}, nil
}

// Patterns returns the original pattern list, for diagnostics.
func (e *GitignoreStyleExcludes) Patterns() []string {
	return e.patterns
}

// IsIgnored classifies stat against the compiled matcher. Dir entries are
// matched as directories; File and Link entries are matched as files.
func (e *GitignoreStyleExcludes) IsIgnored(stat Stat) bool {
	if e.matcher == nil {
		return false
	}
	_, isDir := stat.(Dir)
	return e.matcher.MatchPath(stat.Path(), isDir)
}
