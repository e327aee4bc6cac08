// Package logging provides structured logging utilities using the
// standard library's log/slog package with consistent configuration
// and request-id enrichment.
package logging

import (
	"context"
	"log/slog"
	"os"

	"startpage/internal/handler/http/requestid"
)

// ParseLevel maps a configuration string to a slog level.
// Unknown values default to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a new structured logger with JSON output at the
// given level. Source locations are attached at warn and above.
func NewLogger(level string) *slog.Logger {
	logLevel := ParseLevel(level)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: logLevel <= slog.LevelWarn,
	})
	return slog.New(handler)
}

// NewTextLogger creates a logger with human-readable text output,
// useful for local development.
func NewTextLogger(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// WithRequestID returns a logger that includes the request ID from the
// context, enabling request tracing across log entries.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
