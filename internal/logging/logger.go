// Package logging provides the shared structured logger for luafmt.
// All diagnostics go to stderr through charmbracelet/log; formatted
// output and diffs never pass through here, those belong to the
// pipeline's stdout sink.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide default logger is intentional
var (
	defaultLogger *log.Logger
	defaultOnce   sync.Once
)

// Default returns the process-wide logger, created at info level on
// first use. Code that needs an injectable logger takes a *log.Logger
// parameter instead of calling this.
func Default() *log.Logger {
	defaultOnce.Do(func() {
		defaultLogger = New("info")
	})
	return defaultLogger
}

// New creates a stderr logger at the given level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

// SetLevel adjusts the default logger's level. The --verbose flag
// routes through here.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}

// parseLevel maps a level name to its charm level, falling back to
// info for anything unrecognized.
func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
