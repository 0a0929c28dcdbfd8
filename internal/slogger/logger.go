package slogger

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a config level name to a slog.Level. Unknown names map to
// INFO; config validation rejects them before they get here.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds the base slog.Handler writing to w.
// format should be "json" (production) or "text" (development).
func NewHandler(w io.Writer, format, level string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// Setup wraps h in a slog.Logger and sets it as the default.
func Setup(h slog.Handler) *slog.Logger {
	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}
