// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable consulted for the log level.
const EnvLogLevel = "LOG_LEVEL"

// ParseLevel converts a level name (debug, info, warn, error) into a slog.Level.
// Unknown or empty names resolve to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// New returns a logger writing to w, annotated with module name and version.
// When structured is true the output is JSON, otherwise text.
func New(w io.Writer, module, version string, level slog.Level, structured bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var h slog.Handler
	if structured {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h).With("module", module, "version", version)
}

// SetDefaultStructuredLogger installs a JSON logger on stderr as the slog
// default. The level is read from LOG_LEVEL.
func SetDefaultStructuredLogger(module, version string) {
	slog.SetDefault(New(os.Stderr, module, version, ParseLevel(os.Getenv(EnvLogLevel)), true))
}

// SetDefaultLogger installs a logger on stderr at the given level.
func SetDefaultLogger(module, version string, level slog.Level, structured bool) {
	slog.SetDefault(New(os.Stderr, module, version, level, structured))
}
