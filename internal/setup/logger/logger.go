package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a JSON logger on stderr. stdout is reserved for program output
// and the MCP stdio transport.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stderr).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()
}
