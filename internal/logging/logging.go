// Package logging wires slog to a rotating file (or stdout) the way
// Hola-to-network_logistics_problem/pkg/logger/logger.go does, trimmed
// to what the planner needs: level/format/file from config.LogConfig,
// with no package-level logger of its own. The entry points install the
// logger New returns with slog.SetDefault, and components log through
// slog's package-level functions.
package logging

import (
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"loadplanner/internal/config"
)

// New builds the process's root logger from cfg. An empty cfg.File logs
// to stdout; otherwise output rotates through lumberjack.
func New(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var writer interface {
		Write([]byte) (int, error)
	} = os.Stdout
	if cfg.File != "" {
		writer = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: level == slog.LevelDebug}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	return slog.New(handler)
}
