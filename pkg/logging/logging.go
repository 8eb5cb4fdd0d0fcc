// Package logging configures structured logging for log/slog.
//
// Usage:
//
//	logging.Configure(os.Stderr, "tint", logging.ParseLevel(os.Getenv("LOG_LEVEL")))
//	logging.Configure(os.Stderr, "json", slog.LevelInfo)
//
// Levels accepted by ParseLevel: debug, info, warn, error (default: info)
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Configure installs the default logger. Format "json" writes JSON lines;
// anything else uses the colored tint handler.
func Configure(w io.Writer, format string, level slog.Level) {
	slog.SetDefault(slog.New(NewHandler(w, format, level)))
}

// NewHandler returns the handler Configure would install.
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

// ParseLevel maps debug, info, warn and error to slog levels. Unknown values
// yield INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
