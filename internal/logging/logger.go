package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds the process-wide JSON logger. Level strings follow slog
// ("debug", "info", "warn", "error"); anything unparsable falls back to
// info. Every record carries the app name so aggregated dashboard logs stay
// filterable per service.
func New(level, appName string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler).With(slog.String("app", appName))
}

// Discard returns a logger for tests that should stay silent.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
