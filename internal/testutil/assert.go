// Package testutil provides a small hand-rolled assertion helper used by
// this module's tests, in place of a third-party assertion library.
package testutil

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"
)

// Assert wraps a testing.TB with a handful of comparison helpers.
type Assert struct {
	tb testing.TB
}

// NewAssert returns an Assert bound to tb.
func NewAssert(tb testing.TB) Assert {
	tb.Helper()
	return Assert{tb: tb}
}

func areEqual(expected, actual any) bool {
	if expected == nil || actual == nil {
		return expected == actual
	}
	if eb, ok := expected.([]byte); ok {
		ab, ok := actual.([]byte)
		return ok && bytes.Equal(eb, ab)
	}
	if et, ok := expected.(time.Time); ok {
		at, ok := actual.(time.Time)
		return ok && et.Equal(at)
	}
	return reflect.DeepEqual(expected, actual)
}

// Equal fails the test unless expected and actual are deeply equal.
func (a Assert) Equal(expected, actual any, msg ...any) {
	a.tb.Helper()
	if areEqual(expected, actual) {
		return
	}
	a.tb.Fatalf("%sexpected: %#v, got: %#v", details(msg), expected, actual)
}

// NotEqual fails the test if expected and actual are deeply equal.
func (a Assert) NotEqual(expected, actual any, msg ...any) {
	a.tb.Helper()
	if !areEqual(expected, actual) {
		return
	}
	a.tb.Fatalf("%sexpected %#v not to equal %#v", details(msg), expected, actual)
}

// NoError fails the test if err is non-nil.
func (a Assert) NoError(err error, msg ...any) {
	a.tb.Helper()
	if err != nil {
		a.tb.Fatalf("%sexpected no error, got %v", details(msg), err)
	}
}

// Error fails the test unless err is non-nil and, if contains is
// non-empty, its message contains the given substring.
func (a Assert) Error(err error, contains string, msg ...any) {
	a.tb.Helper()
	if err == nil {
		a.tb.Fatalf("%sexpected error, got nil", details(msg))
		return
	}
	if contains != "" && !strings.Contains(err.Error(), contains) {
		a.tb.Fatalf("%sexpected error containing %q, got %v", details(msg), contains, err)
	}
}

// Nil fails the test unless v is nil.
func (a Assert) Nil(v any, msg ...any) {
	a.tb.Helper()
	if v == nil {
		return
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		if rv.IsNil() {
			return
		}
	}
	a.tb.Fatalf("%sexpected nil, got %v (%T)", details(msg), v, v)
}

// True fails the test unless ok is true.
func (a Assert) True(ok bool, msg ...any) {
	a.tb.Helper()
	if !ok {
		a.tb.Fatalf("%sexpected true", details(msg))
	}
}

func details(msg []any) string {
	if len(msg) == 0 {
		return ""
	}
	if len(msg) == 1 {
		return fmt.Sprint(msg[0]) + ": "
	}
	format, ok := msg[0].(string)
	if !ok {
		return fmt.Sprint(msg[0]) + ": "
	}
	return fmt.Sprintf(format, msg[1:]...) + ": "
}
