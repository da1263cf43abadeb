// Package log provides structured logging (slog) construction for the bridge
// host. Connections tag every record with their channel identity so calls on
// independent connections can be told apart in interleaved output.
package log

import (
	"io"
	"log/slog"
	"math"
	"os"
)

type handlerConfig struct {
	writer    io.Writer
	level     slog.Level
	addSource bool
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		writer: os.Stderr,
		level:  slog.LevelInfo,
	}
}

// Option configures the logger built by New.
type Option func(*handlerConfig)

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Level) Option {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) Option {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithWriter redirects log output. Default is stderr.
func WithWriter(w io.Writer) Option {
	return func(c *handlerConfig) {
		c.writer = w
	}
}

// New builds a text-format slog.Logger with the given options.
func New(opts ...Option) *slog.Logger {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return slog.New(slog.NewTextHandler(cfg.writer, &slog.HandlerOptions{
		Level:     cfg.level,
		AddSource: cfg.addSource,
	}))
}

// Discard returns a logger that drops every record. Used as the default for
// library callers that do not opt into logging.
func Discard() *slog.Logger {
	// slog.DiscardHandler requires Go 1.24; emulate it by discarding output
	// and setting the minimum level above any reachable record level so
	// Enabled reports false for everything.
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(math.MaxInt),
	}))
}
