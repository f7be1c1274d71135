// Package logging configures the go-ethereum structured logger used across
// the module and hands out per-module child loggers.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/log"
)

// New creates a terminal-format logger writing to w at the given level.
func New(w io.Writer, level slog.Level) log.Logger {
	return log.NewLogger(log.NewTerminalHandlerWithLevel(w, level, false))
}

// Discard returns a logger that drops every record.
func Discard() log.Logger {
	return New(io.Discard, log.LevelCrit)
}

// Setup installs a logger writing to w as the process-wide default.
func Setup(w io.Writer, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetDefault(New(w, lvl))
	return nil
}

// Module returns a child of the default logger tagged with the module name.
func Module(name string) log.Logger {
	return log.Root().With("module", name)
}

// ParseLevel maps a verbosity name to a log level. The empty string means
// info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	case "crit":
		return log.LevelCrit, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q", s)
	}
}
