// Package logging builds the zerolog loggers used across the SDK.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the given level. Unknown level
// strings fall back to info rather than failing, so a bad env value
// never takes logging down with it.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// NewConsole returns a human-readable logger for CLI use.
func NewConsole(level string) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

// Nop returns a disabled logger for components constructed without one.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
