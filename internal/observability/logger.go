// Package observability carries the logging, tracing, and metrics glue
// shared by both front ends: the process logger, request trace ids, and the
// Prometheus counters the pipeline reports into.
package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopql/shopql/internal/config"
)

type traceKey struct{}

// NewLogger builds the process logger from the observability config. A nil
// writer discards everything, which keeps test wiring quiet.
func NewLogger(cfg config.Config, writer io.Writer) *slog.Logger {
	if writer == nil {
		writer = io.Discard
	}
	opts := &slog.HandlerOptions{Level: cfg.Observability.LogLevel}
	var handler slog.Handler
	if cfg.Observability.LogJSON {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}
	return slog.New(handler).With(
		slog.String("service", cfg.Service.Name),
		slog.String("profile", string(cfg.Profile)),
	)
}

// WithTrace returns the logger with the request's trace id attached. Without
// a trace in the context the logger comes back unchanged, so desktop-surface
// calls log cleanly too.
func WithTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		return logger.With(slog.String("trace_id", traceID))
	}
	return logger
}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey{}, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceKey{}).(string)
	return traceID
}
