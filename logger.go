package geolink

import (
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
)

// Logger wraps slog.Logger with geolink-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// LogAdd logs the outcome of an AddRasters/AddVectors call.
func (l *Logger) LogAdd(kind string, added, skipped int, err error) {
	if err != nil {
		l.Error("add failed", "kind", kind, "error", err)
		return
	}
	if skipped > 0 {
		l.Info("add completed with skips", "kind", kind, "added", added, "skipped", skipped)
	} else {
		l.Debug("add completed", "kind", kind, "added", added)
	}
}

// LogDrop logs the outcome of a DropRasters/DropVectors call.
func (l *Logger) LogDrop(kind string, count int, err error) {
	if err != nil {
		l.Error("drop failed", "kind", kind, "error", err)
	} else {
		l.Debug("drop completed", "kind", kind, "count", count)
	}
}

// LogSave logs the outcome of a Save call.
func (l *Logger) LogSave(files int, bytesWritten uint64, err error) {
	if err != nil {
		l.Error("save failed", "error", err)
	} else {
		l.Info("checkpoint saved", "files", files, "size", humanize.Bytes(bytesWritten))
	}
}
