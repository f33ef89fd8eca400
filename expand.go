package globfs

import (
	"context"
	"path"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/sync/errgroup"
)

// cacheEntry is the per-PathGlob memo held during one Expand invocation.
type cacheEntry struct {
	glob     PathGlob
	children []PathGlob
	matched  bool
	sources  []GlobSource
}

// Expand walks pg against v as a breadth-first fixed point over the DAG of
// intermediate globs, producing a deterministic, deduplicated, ordered set
// of PathStats. See SPEC_FULL.md §4.F for the full algorithm.
func Expand(ctx context.Context, v VFS, pg PathGlobs) ([]PathStat, error) {
	if len(pg.Include) == 0 {
		return nil, nil
	}

	completed := orderedmap.New[string, *cacheEntry]()
	outputs := orderedmap.New[string, PathStat]()

	var todo []GlobWithSource
	for _, entry := range pg.Include {
		for _, g := range entry.Globs {
			todo = append(todo, GlobWithSource{Glob: g, Source: ParsedInputSource{Input: entry.Input}})
		}
	}

	for len(todo) > 0 {
		batch := todo
		todo = nil

		results := make([]singleExpansionResult, len(batch))
		eg, egctx := errgroup.WithContext(ctx)
		for i, sg := range batch {
			i, sg := i, sg
			eg.Go(func() error {
				r, err := expandSingle(egctx, v, sg, pg.Exclude)
				if err != nil {
					return err
				}
				results[i] = r
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		// Memo-table updates below are performed serially, without locks,
		// over this round's results only (§5).
		for _, r := range results {
			for _, ps := range r.pathStats {
				key := dedupeKey(ps)
				if _, exists := outputs.Get(key); !exists {
					outputs.Set(key, ps)
				}
			}

			key := r.sourcedGlob.Glob.cacheKey()
			entry, existed := completed.Get(key)
			if !existed {
				entry = &cacheEntry{
					glob:     r.sourcedGlob.Glob,
					children: r.childGlobs,
					matched:  len(r.pathStats) > 0,
				}
				completed.Set(key, entry)
			}
			entry.sources = append(entry.sources, r.sourcedGlob.Source)

			parentSource := ParentGlobSource{Glob: r.sourcedGlob.Glob}
			for _, child := range r.childGlobs {
				childKey := child.cacheKey()
				if childEntry, ok := completed.Get(childKey); ok {
					childEntry.sources = append(childEntry.sources, parentSource)
					continue
				}
				todo = append(todo, GlobWithSource{Glob: child, Source: parentSource})
			}
		}
	}

	if pg.StrictMatch != StrictIgnore {
		if err := checkStrictMatch(v, pg, completed); err != nil {
			return nil, err
		}
	}

	out := make([]PathStat, 0, outputs.Len())
	for pair := outputs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out, nil
}

// checkStrictMatch implements §4.F's back-propagation: visiting completed
// in reverse insertion order is a valid bottom-up topological traversal,
// since a child glob is first inserted in a later round than the parent
// that produced it, so children are visited before their parents.
func checkStrictMatch(v VFS, pg PathGlobs, completed *orderedmap.OrderedMap[string, *cacheEntry]) error {
	keys := make([]string, 0, completed.Len())
	for pair := completed.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	matchedInputs := make(map[GlobParsedSource]bool)
	for i := len(keys) - 1; i >= 0; i-- {
		entry, _ := completed.Get(keys[i])
		if !entry.matched {
			continue
		}
		for _, src := range entry.sources {
			switch s := src.(type) {
			case ParentGlobSource:
				if parentEntry, ok := completed.Get(s.Glob.cacheKey()); ok {
					parentEntry.matched = true
				}
			case ParsedInputSource:
				matchedInputs[s.Input] = true
			}
		}
	}

	var nonMatching []string
	for _, entry := range pg.Include {
		if !matchedInputs[entry.Input] {
			nonMatching = append(nonMatching, string(entry.Input))
		}
	}
	if len(nonMatching) == 0 {
		return nil
	}

	msg := RootErrorf(
		v, "globs did not match: inputs=%s excludes=%s",
		strings.Join(nonMatching, ", "), strings.Join(pg.Exclude.Patterns(), ", "),
	)
	if pg.StrictMatch == StrictError {
		return msg
	}
	logf(pg.Logger, "%s", msg.Error())
	return nil
}

// singleExpansionResult is the output of expanding one GlobWithSource.
type singleExpansionResult struct {
	sourcedGlob GlobWithSource
	pathStats   []PathStat
	childGlobs  []PathGlob
}

// expandSingle implements §4.F.1.
func expandSingle(ctx context.Context, v VFS, sg GlobWithSource, exclude *GitignoreStyleExcludes) (singleExpansionResult, error) {
	switch g := sg.Glob.(type) {
	case WildcardGlob:
		stats, err := directoryListing(ctx, v, g.Dir, g.Symbolic, g.Wildcard, exclude)
		if err != nil {
			return singleExpansionResult{}, err
		}
		return singleExpansionResult{sourcedGlob: sg, pathStats: stats}, nil

	case DirWildcardGlob:
		stats, err := directoryListing(ctx, v, g.Dir, g.Symbolic, g.Wildcard, exclude)
		if err != nil {
			return singleExpansionResult{}, err
		}
		var children []PathGlob
		for _, ps := range stats {
			dps, ok := ps.(DirPathStat)
			if !ok {
				continue // File results never recurse; Links were already canonicalized.
			}
			more, err := parseGlobs(dps.Stat, dps.Symbolic, g.Remainder)
			if err != nil {
				return singleExpansionResult{}, err
			}
			children = append(children, more...)
		}
		return singleExpansionResult{sourcedGlob: sg, childGlobs: children}, nil

	default:
		return singleExpansionResult{}, Errorf("unrecognized PathGlob variant %T", sg.Glob)
	}
}

// directoryListing implements §4.F.2.
func directoryListing(ctx context.Context, v VFS, dir Dir, symbolicPath string, wildcard Pattern, exclude *GitignoreStyleExcludes) ([]PathStat, error) {
	entries, err := v.ScanDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		symbolic string
		stat     Stat
	}
	var candidates []candidate
	for _, st := range entries {
		name := path.Base(st.Path())
		if !wildcard.Match(name) {
			continue
		}
		candidates = append(candidates, candidate{symbolic: path.Join(symbolicPath, name), stat: st})
	}

	results := make([]PathStat, len(candidates))
	eg, egctx := errgroup.WithContext(ctx)
	for i, c := range candidates {
		i, c := i, c
		eg.Go(func() error {
			if v.IsIgnored(c.stat) || exclude.IsIgnored(c.stat) {
				return nil
			}
			switch st := c.stat.(type) {
			case File:
				results[i] = NewFilePathStat(c.symbolic, st)
			case Dir:
				results[i] = NewDirPathStat(c.symbolic, st)
			case Link:
				ps, err := canonicalize(egctx, v, c.symbolic, st)
				if err != nil {
					return err
				}
				results[i] = ps // may remain nil: broken link, silently dropped.
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]PathStat, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

type visitedLinksKey struct{}

// withVisitedLink returns a context recording link as visited, and false
// if link was already present (a symlink cycle). The underlying set is
// copy-on-write so concurrent branches of the expansion DAG never share
// mutable state (§9 Open Question: symlink cycles).
func withVisitedLink(ctx context.Context, link Link) (context.Context, bool) {
	visited, _ := ctx.Value(visitedLinksKey{}).(map[Link]bool)
	if visited[link] {
		return ctx, false
	}
	next := make(map[Link]bool, len(visited)+1)
	for k := range visited {
		next[k] = true
	}
	next[link] = true
	return context.WithValue(ctx, visitedLinksKey{}, next), true
}

// canonicalize implements §4.F.3.
func canonicalize(ctx context.Context, v VFS, symbolicPath string, link Link) (PathStat, error) {
	ctx, fresh := withVisitedLink(ctx, link)
	if !fresh {
		return nil, nil // symlink cycle: treated like a broken link.
	}

	target, err := v.ReadLink(ctx, link)
	if err != nil {
		return nil, err
	}

	globs, err := Create([]string{escapeGlobMeta(target)})
	if err != nil {
		return nil, nil // target cannot be re-escaped as a literal glob: broken link.
	}

	pg := PathGlobsFromGlobs(globs)
	stats, err := Expand(ctx, v, pg)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, nil
	}
	last := stats[len(stats)-1]
	switch st := last.(type) {
	case DirPathStat:
		return NewDirPathStat(symbolicPath, st.Stat), nil
	case FilePathStat:
		return NewFilePathStat(symbolicPath, st.Stat), nil
	default:
		return nil, nil
	}
}

// escapeGlobMeta wraps every glob metacharacter of s in a single-character
// bracket expression so the result parses as a pattern matching only s
// itself, mirroring the original design's "shell-escape every
// metacharacter" step.
func escapeGlobMeta(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\', '!':
			sb.WriteByte('[')
			sb.WriteRune(r)
			sb.WriteByte(']')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
