package logger

import (
	"context"
	"log/slog"
)

// loggerContextKey is an unexported type used as the context key for the
// request-scoped logger, so it cannot collide with keys from other packages.
type loggerContextKey struct{}

// WithLogger returns a copy of the context carrying the given logger.
// Middleware uses this to attach a logger enriched with request attributes
// (trace ID, etc.) so downstream code logs with consistent correlation
// fields.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// FromContext returns the logger stored in the context, or the process
// default logger when none has been attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// FromContextOrDefault returns the logger stored in the context, falling
// back to the provided logger (rather than the process default) when the
// context carries none. Handlers use this so component loggers keep their
// attributes outside of request flows.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
