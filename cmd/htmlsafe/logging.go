package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the process logger. format is "console" for human
// readable output or "json" for one JSON object per line.
func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console", "":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "json":
	default:
		return zerolog.Logger{}, fmt.Errorf("%w: log format %q, want console or json", ErrInvalidFormat, format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
