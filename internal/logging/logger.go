// Package logging builds the slog logger used by slatf commands.
//
// Diagnostics go to stderr in slog's text format so stdout stays reserved
// for the generated artifact:
//
//	logger := logging.New(os.Stderr, slog.LevelDebug)
//	logger.Debug("guarantee excluded from alerting", "plan", "gold")
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"nathanbeddoewebdev/slatf/internal/util"
)

// DefaultLevel keeps the CLI quiet unless something needs attention.
const DefaultLevel = slog.LevelWarn

// ParseLevel converts a level name. An empty name selects DefaultLevel.
func ParseLevel(name string) (slog.Level, error) {
	switch util.NormalizeKey(name) {
	case "":
		return DefaultLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return DefaultLevel, fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", name)
	}
}

// New returns a text logger writing records at or above level to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
