package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tourze/ganet-tracking-service/internal/config"
)

// New builds a slog.Logger from the service log config and installs it as
// the process default.
func New(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var out io.Writer = os.Stdout
	if strings.EqualFold(cfg.LogOutput, "stderr") {
		out = os.Stderr
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
