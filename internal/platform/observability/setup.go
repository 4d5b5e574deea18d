// Package observability provides lightweight span and metric hooks over slog.
// The pipeline is instrumented against these hooks so a real exporter can be
// slotted in later without touching call sites.
package observability

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Config captures observability toggles.
type Config struct {
	Enabled bool
}

// ShutdownFunc tears down any exporters created by Setup.
type ShutdownFunc func(context.Context) error

type state struct {
	logger  *slog.Logger
	enabled bool
}

var current atomic.Pointer[state]

func activeState() *state {
	if s := current.Load(); s != nil {
		return s
	}
	return &state{}
}

// Enabled reports whether instrumentation output is turned on.
func Enabled() bool {
	return activeState().enabled
}

// Setup installs the instrumentation sink. Spans and metrics are emitted as
// debug-level slog records; when disabled they are dropped at the call site.
func Setup(ctx context.Context, cfg Config, logger *slog.Logger) (ShutdownFunc, error) {
	current.Store(&state{logger: logger, enabled: cfg.Enabled})

	if logger != nil {
		if cfg.Enabled {
			logger.InfoContext(ctx, "[OBSERVABILITY][SETUP] span/metric hooks enabled")
		} else {
			logger.InfoContext(ctx, "[OBSERVABILITY][SETUP] span/metric hooks disabled")
		}
	}

	return func(context.Context) error {
		current.Store(&state{})
		return nil
	}, nil
}
