// Package log builds the slog loggers used by the command and the MCP
// server. Output is plain key=value text on the given writer; the command
// passes os.Stderr so stdout stays free for the MCP protocol.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable that raises the log level.
// Setting it to "debug" has the same effect as --verbose.
const EnvLevel = "HOTSPOT_MAP_LOG_LEVEL"

// NewLogger returns a text logger writing to w. Progress messages are logged
// at Info; verbose, or EnvLevel=debug, also enables Debug.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose || strings.EqualFold(os.Getenv(EnvLevel), "debug") {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Timestamps only add noise to a one-shot command.
			if len(groups) == 0 && a.Key == slog.TimeKey && level > slog.LevelDebug {
				return slog.Attr{}
			}
			return a
		},
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
