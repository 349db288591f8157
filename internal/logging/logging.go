// Package logging wraps a single process-wide zerolog.Logger. The core has
// exactly one kind of log-worthy event below the argument-validation
// boundary: a soft ephemeris error (§7), logged at Warn with structured
// fields so operators can correlate it to a julian day and body without
// parsing a message string.
package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// L returns the process-wide logger, constructing it on first use.
// Console-writer formatting is used when stderr is a terminal; otherwise
// output is newline-delimited JSON, suitable for log aggregation.
func L() *zerolog.Logger {
	once.Do(func() {
		if isTerminal(os.Stderr) {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		} else {
			logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		}
	})
	return &logger
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
