package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init configures the process-wide JSON logger. Debug level in development,
// info otherwise.
func Init(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
