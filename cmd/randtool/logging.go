package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// setupLogger returns a console logger on w, or a JSON logger when
// jsonFormat is set. Logs never go to stdout, which carries generated data.
func setupLogger(w io.Writer, level string, jsonFormat bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var zLevel zerolog.Level
	switch level {
	case "debug":
		zLevel = zerolog.DebugLevel
	case "warn":
		zLevel = zerolog.WarnLevel
	case "error":
		zLevel = zerolog.ErrorLevel
	default:
		zLevel = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if jsonFormat {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		logger = zerolog.New(w)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w})
	}

	return logger.Level(zLevel).With().Timestamp().Logger()
}
