// Package common contains the logger setup and build variables shared by all
// shardwallet packages.
package common

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// LoggingOpts configures the process logger.
type LoggingOpts struct {
	// Debug enables debug level messages.
	Debug bool
	// JSON switches from text to JSON output.
	JSON bool
	// Service, when set, is attached to every record.
	Service string
	// Version, when set, is attached to every record.
	Version string
	// UID attaches a random per-process "uid" attribute.
	UID bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// SetupLogger builds a slog.Logger from the options.
func SetupLogger(opts *LoggingOpts) *slog.Logger {
	if opts == nil {
		opts = &LoggingOpts{}
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.Service != "" {
		logger = logger.With("service", opts.Service)
	}
	if opts.Version != "" {
		logger = logger.With("version", opts.Version)
	}
	if opts.UID {
		logger = logger.With("uid", uuid.Must(uuid.NewRandom()).String())
	}
	return logger
}

// DiscardLogger returns a logger that drops every record. Components use it
// when no logger is configured.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
