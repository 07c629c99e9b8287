// Package observability provides the run logger and Prometheus metrics.
package observability

import (
	"log/slog"
	"os"

	"github.com/basinworks/daymet-etl/internal/config"
)

// NewLogger builds an slog.Logger per the configured level and format
// (text for interactive runs, json for scheduled ones).
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
