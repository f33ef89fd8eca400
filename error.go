package globfs

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// WrappedError carries a message, an optional cause, the call-site location
// of where it was constructed, and — for errors raised while walking a
// particular VFS — the root that walk was rooted at. Plain Errorf/WrapErrorf
// calls leave root empty; RootErrorf is how the expansion engine ties a
// diagnostic back to the filesystem it was inspecting (see expand.go's
// strict-match check and §9's "diagnostic context" open question).
type WrappedError struct {
	Msg      string
	err      error
	location string
	root     string
}

func (w *WrappedError) Error() string {
	return w.render("Error", "")
}

func (w *WrappedError) Unwrap() error {
	return w.err
}

func (w *WrappedError) Is(target error) bool {
	return errors.Is(w.err, target)
}

func (w *WrappedError) render(prefix, indent string) string {
	var sb strings.Builder
	sb.WriteString(indent)
	sb.WriteString(prefix)
	sb.WriteString(" at ")
	sb.WriteString(w.location)
	if w.root != "" {
		sb.WriteString(" (root ")
		sb.WriteString(w.root)
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(w.Msg)
	var nested *WrappedError
	if errors.As(w.err, &nested) {
		sb.WriteString(nested.render("\n"+indent+"  Cause", indent+"  "))
	} else if w.err != nil {
		sb.WriteString("\nCause: ")
		sb.WriteString(w.err.Error())
	}
	return sb.String()
}

// Errorf builds a new WrappedError with no cause and no root.
func Errorf(msg string, args ...any) *WrappedError {
	return wrap(nil, "", msg, args...)
}

// WrapErrorf builds a new WrappedError wrapping err.
func WrapErrorf(err error, msg string, args ...any) *WrappedError {
	return wrap(err, "", msg, args...)
}

// RootErrorf builds a WrappedError tagged with the root path of v, so the
// rendered diagnostic names which filesystem root it concerns even once the
// error has propagated away from the Expand call that raised it.
func RootErrorf(v VFS, msg string, args ...any) *WrappedError {
	return wrap(nil, rootPathOf(v), msg, args...)
}

func wrap(err error, root, msg string, args ...any) *WrappedError {
	return &WrappedError{
		Msg:      fmt.Sprintf(msg, args...),
		err:      err,
		location: callerLocation(3),
		root:     root,
	}
}

func callerLocation(skip int) string {
	pc := make([]uintptr, skip+1)
	runtime.Callers(skip+1, pc)
	frame, ok := runtime.CallersFrames(pc).Next()
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", frame.File, frame.Line)
}
