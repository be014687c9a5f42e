package logging

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with domain-specific helpers. Used by the
// long-running listen command; one-shot commands talk to the user directly.
type Logger struct {
	*slog.Logger
}

// New creates a text-formatted logger writing to stderr
func New(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{slog.New(handler)}
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{l.With("component", component)}
}

// LogReadingFolded logs a live-feed reading that was merged into the repository
func (l *Logger) LogReadingFolded(id, date string, kwh float64) {
	l.Info("reading folded",
		"id", id,
		"date", date,
		"kwh", kwh,
	)
}

// LogReadingRejected logs a live-feed reading that the repository refused
func (l *Logger) LogReadingRejected(date string, err error) {
	l.Warn("reading rejected",
		"date", date,
		"error", err,
	)
}
