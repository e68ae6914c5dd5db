package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var defaultLogger = slog.Default()

// FromContext returns the logger carried by ctx, or the process default
// when ctx is nil or carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}

	return defaultLogger
}

// WithContext returns a context carrying the given logger.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// enrich attaches one attribute to the context logger and stores the
// result back on the context.
func enrich(ctx context.Context, key, value string) context.Context {
	return WithContext(ctx, FromContext(ctx).With(slog.String(key, value)))
}

// WithRequestID tags the context logger with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return enrich(ctx, "request_id", requestID)
}

// WithTraceID tags the context logger with the active trace ID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return enrich(ctx, "trace_id", traceID)
}

// WithCorrelationID tags the context logger with the correlation ID.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return enrich(ctx, "correlation_id", correlationID)
}

// SetDefault swaps the fallback logger used when a context carries
// none, and makes it the slog default as well.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
