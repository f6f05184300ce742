// Package logging holds the *slog.Logger used by tabopt packages.
package logging

import (
	"log/slog"
	"sync/atomic"
)

// logger is nil until SetLogger is called; Logger then returns a discard logger.
var logger atomic.Pointer[slog.Logger]

var discard = slog.New(slog.DiscardHandler)

// SetLogger sets the logger used by tabopt packages.
// Pass nil to silence logging again. Safe for concurrent use.
//
//	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the configured logger, or a logger that discards all output.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return discard
}
