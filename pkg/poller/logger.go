package poller

import "log"

// Logger is the logger interface the poller reports through.
type Logger interface {
	Printf(string, ...any)
}

// LoggerFunc is a bridge between Logger and any third party logger.
type LoggerFunc func(string, ...any)

// Printf implements the Logger interface.
func (f LoggerFunc) Printf(msg string, args ...any) { f(msg, args...) }

// defaultLogger writes nothing.
var defaultLogger = LoggerFunc(func(string, ...any) {})

// Printf is a Logger which wraps log.Printf.
var Printf = LoggerFunc(log.Printf)
