package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// levelFromString converts a configured log level name to a slog.Level.
// Supports: debug, info, warn, error (case-insensitive)
func levelFromString(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// newLogger creates a text logger writing to w at the named level
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := levelFromString(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
