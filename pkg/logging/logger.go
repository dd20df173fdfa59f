// Package logging provides the package-level *logrus.Logger used by
// pdftable for debug and diagnostic output.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// logger holds the package-level logger instance.
// Defaults to nil, which causes Logger() to return a discard logger.
var logger atomic.Pointer[logrus.Logger]

// newDiscardLogger creates a logger that discards all output.
func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SetLogger configures the package-level logger.
// Pass nil to disable logging.
//
// SetLogger is safe for concurrent use.
//
// Example enabling debug output to stderr:
//
//	l := logrus.New()
//	l.SetLevel(logrus.DebugLevel)
//	logging.SetLogger(l)
//
// Example capturing logs in tests:
//
//	l, hook := test.NewNullLogger()
//	logging.SetLogger(l)
//	// ... run extraction ...
//	for _, e := range hook.AllEntries() { ... }
func SetLogger(l *logrus.Logger) {
	if l == nil {
		logger.Store(newDiscardLogger())
	} else {
		logger.Store(l)
	}
}

// Logger returns the package-level logger.
// If no logger has been set via SetLogger, returns a logger that discards
// all output.
//
// Logger is safe for concurrent use.
func Logger() *logrus.Logger {
	l := logger.Load()
	if l == nil {
		l = newDiscardLogger()
		logger.Store(l)
	}
	return l
}

// New builds a text logger writing to stderr at the named level.
// Unknown or empty level names fall back to info.
func New(level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
