package main

import (
	"fmt"
	"io"
	"log/slog"
)

// newLogger builds the CLI logger. Unknown levels fall back to warn and
// unknown formats to text; checkLogFlags rejects them earlier.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}

func checkLogFlags(levelStr, formatStr string) error {
	switch levelStr {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid --log-level %q: want debug, info, warn or error", levelStr)
	}
	switch formatStr {
	case "text", "json":
	default:
		return fmt.Errorf("invalid --log-format %q: want text or json", formatStr)
	}
	return nil
}
