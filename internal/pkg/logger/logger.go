package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

var Logger zerolog.Logger

// Init configures the process logger. Every entry carries a "service" field
// so the two services can be told apart in aggregated output.
func Init(service string) {
	InitWithWriter(service, os.Stdout)
}

func InitWithWriter(service string, w io.Writer) {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if os.Getenv("LOG_FORMAT") == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	Logger = zerolog.New(w).With().
		Timestamp().
		Str("service", service).
		Logger().Level(level)

	// set global
	zlog.Logger = Logger
}
