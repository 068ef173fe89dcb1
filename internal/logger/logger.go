package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. The level comes straight from LOG_LEVEL so
// the logger can be constructed before the config is loaded (config loading
// itself logs).
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Logger()

	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}
