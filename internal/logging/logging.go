// Package logging wraps log/slog with the field names used across hexseek.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with search-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler logs
// text at Info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger writes human-readable logs to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger writes JSON logs to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

// ParseLevel maps debug/info/warn/error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("logging: unknown level %q", s)
	}
	return l, nil
}

// WithSession tags every record with a session id.
func (l *Logger) WithSession(id string) *Logger {
	return &Logger{Logger: l.Logger.With("session", id)}
}

// LogSessionStart logs the start of a background search.
func (l *Logger) LogSessionStart(ctx context.Context, haystackLen, needleLen int) {
	l.DebugContext(ctx, "search started",
		"haystack_bytes", haystackLen,
		"needle_bytes", needleLen,
	)
}

// LogSessionEnd logs a worker exit. A non-nil err means the worker did not
// terminate cleanly.
func (l *Logger) LogSessionEnd(ctx context.Context, found int64, elapsed time.Duration, stopped bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search worker failed",
			"found", found,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "search finished",
		"found", found,
		"elapsed", elapsed,
		"stopped", stopped,
	)
}

// LogCancel logs an explicit cancellation.
func (l *Logger) LogCancel(ctx context.Context, waited time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "search cancelled with error", "waited", waited, "error", err)
		return
	}
	l.DebugContext(ctx, "search cancelled", "waited", waited)
}
