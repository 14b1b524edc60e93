package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger carries diagnostics: handler decisions, reporter state and other
// details shown with --verbose. User-facing output never goes through it.
var Logger = newLogger(os.Stderr, slog.LevelInfo, false)

// Setup replaces Logger. verbose lowers the level to debug and jsonOutput
// switches to JSON lines. A nil w writes to stderr.
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	Logger = newLogger(w, level, jsonOutput)
}

func newLogger(w io.Writer, level slog.Level, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Debug logs a diagnostic visible only with --verbose.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn logs degraded operation, such as crash reporting being disabled.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
