package observability

import (
	"context"
	"log/slog"
	"time"
)

// StartSpan marks the start of an operation and returns a finish callback.
// The callback logs the elapsed time and, when the operation failed, raises
// the record to error level.
func StartSpan(ctx context.Context, component, operation string) (context.Context, func(error)) {
	s := activeState()
	if s.logger == nil || !s.enabled {
		return ctx, func(error) {}
	}

	start := time.Now()

	return ctx, func(err error) {
		attrs := []slog.Attr{
			slog.String("component", component),
			slog.String("operation", operation),
			slog.Duration("elapsed", time.Since(start)),
		}

		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
			attrs = append(attrs, slog.Any("error", err))
		}

		s.logger.LogAttrs(ctx, level, "span", attrs...)
	}
}

// RecordMetric emits one datapoint through the configured sink. Labels are
// attached as flat slog attributes.
func RecordMetric(ctx context.Context, name string, value float64, labels map[string]string) {
	s := activeState()
	if s.logger == nil || !s.enabled {
		return
	}

	attrs := make([]slog.Attr, 0, len(labels)+2)
	attrs = append(attrs,
		slog.String("metric", name),
		slog.Float64("value", value),
	)
	for k, v := range labels {
		attrs = append(attrs, slog.String(k, v))
	}

	s.logger.LogAttrs(ctx, slog.LevelDebug, "metric", attrs...)
}
