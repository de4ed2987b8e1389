// Package logging builds the slog logger used by the phonebook CLI and its
// stores.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects level, destination, and format. Invalid values fall back
// to defaults and the returned logger reports the fallback as a warning.
type Options struct {
	Level  string    // debug, info, warn or error; empty means info
	File   string    // append to this file; empty or "-" writes to Output
	Format string    // text or json; empty means text
	Output io.Writer // destination when File is empty; nil means stderr
}

func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		return nil, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

// New returns a logger for options. A log file opened for options.File
// stays open until the process exits; use Open to close it earlier.
func New(options Options) *slog.Logger {
	logger, _ := Open(options)
	return logger
}

// Open returns a logger for options and a func that closes the log file,
// if one was opened. The close func is never nil.
func Open(options Options) (*slog.Logger, func() error) {
	level, ok := level(options.Level)
	if !ok {
		bad := options.Level
		options.Level = ""
		logger, closeFn := Open(options)
		logger.Warn("could not parse logger level", "level", bad)
		return logger, closeFn
	}
	opts := slog.HandlerOptions{Level: level}

	closeFn := func() error { return nil }
	var output io.Writer
	switch options.File {
	case "", "-":
		output = options.Output
		if output == nil {
			output = os.Stderr
		}
	case os.DevNull:
		return slog.New(slog.DiscardHandler), closeFn
	default:
		f, err := os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			options.File = ""
			logger, closeFn := Open(options)
			logger.Warn("could not open logger file", "err", err)
			return logger, closeFn
		}
		output = f
		closeFn = f.Close
	}

	switch strings.ToLower(options.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(output, &opts)), closeFn
	case "", "text":
		return slog.New(slog.NewTextHandler(output, &opts)), closeFn
	default:
		bad := options.Format
		options.Format = "text"
		_ = closeFn()
		logger, closeFn := Open(options)
		logger.Warn("could not parse logger format", "format", bad)
		return logger, closeFn
	}
}
