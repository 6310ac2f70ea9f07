package trace

import (
	"context"
	"log/slog"
)

// SlogTracer writes events to an slog.Logger at debug level.
type SlogTracer struct {
	logger *slog.Logger
}

// NewSlogTracer returns a tracer writing to logger.
func NewSlogTracer(logger *slog.Logger) *SlogTracer {
	return &SlogTracer{logger: logger}
}

// Trace logs the event.
func (tracer *SlogTracer) Trace(event Event) {
	attrs := []slog.Attr{
		slog.String("op", event.Op.String()),
		slog.String("source", event.Source.String()),
		slog.String("phase", event.Phase.String()),
		slog.String("category", event.Category.String()),
		slog.Int("remaining", event.Remaining),
		slog.Int("total", event.Total),
	}
	if event.RunID != "" {
		attrs = append(attrs, slog.String("run_id", event.RunID))
	}
	tracer.logger.LogAttrs(context.Background(), slog.LevelDebug, "timer trace", attrs...)
}

var _ Tracer = (*SlogTracer)(nil)
