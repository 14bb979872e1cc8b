package main

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog.Logger writing to stdout. At debug level the
// source location of each record is included.
func NewLogger(level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(h).With("app", "pixel-crop")
}
