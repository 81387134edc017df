// Package logger builds the charmbracelet/log loggers shared by the loaders, the engine and the commands.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level parses a level name. Unknown names fall back to info.
func Level(name string) log.Level {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// New creates a text logger writing to stderr with the given prefix and level name.
func New(prefix, level string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           Level(level),
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
	})
}

// Discard returns a logger that drops everything. Used as the nil-logger fallback.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
