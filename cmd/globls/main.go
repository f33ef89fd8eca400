// Command globls expands glob patterns against a real directory tree and
// prints the matched symbolic paths: one per line when stdout is not a
// terminal, in terminal-width columns when it is.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/basaltbuild/globfs"
	"golang.org/x/term"
)

type excludeFlags []string

func (e *excludeFlags) String() string { return fmt.Sprint([]string(*e)) }

func (e *excludeFlags) Set(value string) error {
	*e = append(*e, value)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	var excludes excludeFlags
	strictStr := "ignore"

	flags := flag.NewFlagSet("globls", flag.ExitOnError)
	flags.Var(&excludes, "exclude", "gitignore-style exclude pattern (repeatable)")
	flags.StringVar(&strictStr, "strict", "ignore", "strict-match mode: ignore, warn or error")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: globls [flags] ROOT PATTERN...\n\nFlags:\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(argv); err != nil {
		return err //nolint:wrapcheck
	}
	args := flags.Args()
	if len(args) < 2 {
		flags.Usage()
		return globfs.Errorf("expected ROOT and at least one PATTERN")
	}
	root, patterns := args[0], args[1:]

	strict, err := globfs.ParseStrictGlobMatching(strictStr)
	if err != nil {
		return err //nolint:wrapcheck
	}

	pool := globfs.NewWorkerPool(0)
	vfs, err := globfs.NewPosixFS(root, pool, nil)
	if err != nil {
		return globfs.WrapErrorf(err, "could not open root %s", root)
	}

	pg, err := globfs.NewPathGlobs(patterns, []string(excludes), strict)
	if err != nil {
		return globfs.WrapErrorf(err, "could not parse glob patterns")
	}
	pg.Logger = globfs.NewStdLogger("globls: ")

	stats, err := globfs.Expand(context.Background(), vfs, pg)
	if err != nil {
		return globfs.WrapErrorf(err, "glob expansion failed")
	}
	paths := make([]string, len(stats))
	for i, stat := range stats {
		paths[i] = stat.SymbolicPath()
	}
	printPaths(os.Stdout, paths)
	return nil
}

// printPaths prints one path per line when stdout is not a terminal (so
// piping to another command sees plain output), and packs paths into
// ls-style columns sized to the terminal width otherwise.
func printPaths(out *os.File, paths []string) {
	if !term.IsTerminal(int(out.Fd())) {
		for _, p := range paths {
			fmt.Fprintln(out, p)
		}
		return
	}
	cols, _, err := term.GetSize(int(out.Fd()))
	if err != nil || cols <= 0 {
		cols = 80
	}
	printColumns(out, paths, cols)
}

func printColumns(out io.Writer, paths []string, width int) {
	if len(paths) == 0 {
		return
	}
	maxLen := 0
	for _, p := range paths {
		if len(p) > maxLen {
			maxLen = len(p)
		}
	}
	colWidth := maxLen + 2
	perRow := width / colWidth
	if colWidth > width || perRow < 1 {
		for _, p := range paths {
			fmt.Fprintln(out, p)
		}
		return
	}
	for i, p := range paths {
		if i%perRow == perRow-1 || i == len(paths)-1 {
			fmt.Fprintln(out, p)
		} else {
			fmt.Fprintf(out, "%-*s", colWidth, p)
		}
	}
}
