package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const serviceName = "cafe-menu"

// InitLogger builds the console logger every component shares.
func InitLogger() zerolog.Logger {
	return newLogger(zerolog.ConsoleWriter{Out: os.Stderr})
}

func newLogger(out io.Writer) zerolog.Logger {
	return zerolog.New(out).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}
