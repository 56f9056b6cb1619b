// Package logging configures the process-wide structured logger.
//
// The CLI calls Setup once at startup. Level resolution order: the --debug
// flag, then the LOG_LEVEL environment variable, then info.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the default slog handler.
// Log output goes to stderr so it never mixes with serialized report output
// on stdout.
func Setup(debug, jsonFormat bool) {
	opts := &slog.HandlerOptions{Level: resolveLevel(debug)}

	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func resolveLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
