// Package solverlog is the laboratory's only logging dependency: a thin
// wrapper over the standard library logger, matching the teacher's
// preference for stdlib facilities where no domain library is warranted.
package solverlog

import (
	"io"
	"log"
	"os"
)

// Logger writes timestamped, leveled lines. The zero value is not usable;
// construct with New.
type Logger struct {
	verbose bool
	std     *log.Logger
}

// New returns a Logger writing to os.Stderr. Debugf is a no-op unless
// verbose is true.
func New(verbose bool) *Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is New with an explicit destination, used by tests.
func NewWithWriter(w io.Writer, verbose bool) *Logger {
	return &Logger{
		verbose: verbose,
		std:     log.New(w, "", log.LstdFlags),
	}
}

// Infof logs unconditionally.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.std.Printf("INFO  "+format, args...)
}

// Warnf logs unconditionally at warning level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.std.Printf("WARN  "+format, args...)
}

// Debugf logs only when the logger was constructed with verbose=true.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.std.Printf("DEBUG "+format, args...)
}
