// Package log wraps slog with a component-scoped logger so every line
// carries the subsystem it came from.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// FieldComponent is the attribute key carrying the subsystem name.
const FieldComponent = "component"

// ComponentApp is the component name of the entrypoint.
const ComponentApp = "app"

// Logger is a slog.Logger bound to a component name.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

// New creates a logger with the given configuration.
func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: config.Level,
		})
	}

	return &Logger{
		Logger: slog.New(handler).With(FieldComponent, config.Component),
	}
}

// SetDefault installs the logger as the process-wide slog default, so the
// stores' slog calls inherit the handler and level.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}

// ParseLevel maps a config string onto a slog level. Unknown values fall
// back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
