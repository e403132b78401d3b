// Package logging provides structured logging configuration for the digo tools.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level  string
	Pretty bool
}

// New builds a zerolog logger writing to out. Unknown levels fall back to info.
func New(out io.Writer, cfg Config) zerolog.Logger {
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
