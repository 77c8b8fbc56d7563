package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/daybookhq/daybook-backend/internal/config"
)

// NewLogger builds the process-wide logger from LogConfig and installs
// it as the slog default. "json" emits structured records for
// production; any other format falls back to the text handler with
// source locations for development. Output goes to os.Stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	opts.AddSource = true
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLevel maps a config string to a slog.Level, defaulting to info.
// slog's own parser accepts the level names case-insensitively plus
// offsets like "warn+2".
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
