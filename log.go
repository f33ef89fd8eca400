package globfs

import (
	"log"
	"os"
)

// Logger receives strict-match diagnostics emitted during Expand when
// StrictMatch is StrictWarn.
type Logger interface {
	Warnf(format string, args ...any)
}

type stdLogger struct{ l *log.Logger }

// NewStdLogger returns a Logger that writes to os.Stderr with prefix,
// matching the plain fmt/log style used throughout the rest of this
// module (and its teacher) in place of a structured-logging library.
func NewStdLogger(prefix string) Logger {
	return &stdLogger{l: log.New(os.Stderr, prefix, log.Ltime)}
}

func (s *stdLogger) Warnf(format string, args ...any) { s.l.Printf(format, args...) }

type discardLogger struct{}

// DiscardLogger is a Logger that discards everything. It is the effective
// default when a PathGlobs carries no Logger.
var DiscardLogger Logger = discardLogger{}

func (discardLogger) Warnf(string, ...any) {}

func logf(l Logger, format string, args ...any) {
	if l == nil {
		l = DiscardLogger
	}
	l.Warnf(format, args...)
}
