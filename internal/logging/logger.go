// Package logging provides structured logging for the importer CLI.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewCLILogger creates a console logger writing to stderr, keeping
// stdout free for command output and the TUI.
func NewCLILogger() zerolog.Logger {
	return NewLogger(os.Stderr)
}

// NewLogger creates a console logger writing to w.
func NewLogger(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// SetGlobalLevel sets the global log level.
func SetGlobalLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
