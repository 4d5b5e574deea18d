package logging

import (
	"fmt"
	"log/slog"

	"pralay-server-go/internal/platform/config"
	"pralay-server-go/internal/utils"
)

// Logger provides access to both the tagged logging API and slog.
type Logger struct {
	core *utils.Logger
}

// New creates a Logger writing colored console output and rotated JSON files.
func New(cfg config.LogConfig) (*Logger, error) {
	core, err := utils.NewLogger(&utils.LogCfg{
		LogLevel: cfg.Level,
		LogDir:   cfg.Dir,
		LogFile:  cfg.File,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return &Logger{core: core}, nil
}

// Core exposes the underlying tagged logger.
func (l *Logger) Core() *utils.Logger {
	return l.core
}

// Slog exposes the structured logger for integrations expecting *slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.core.Slog()
}
