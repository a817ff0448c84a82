package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide structured logger. JSON output so log
// aggregators can index fields; the debug flag (defaulting on outside prod)
// lowers the level.
func NewLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}
