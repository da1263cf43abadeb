package host

import (
	"log/slog"

	"github.com/akzaidi/sparkapi/host/registry"
	"github.com/akzaidi/sparkapi/log"
)

// viewRegistry is the slice of registry.Registry the Connection needs: a way
// to ask whether a classification tag is known to the host.
type viewRegistry interface {
	Known(classification string) bool
}

type config struct {
	logger *slog.Logger
	views  viewRegistry
}

func defaultConfig() config {
	return config{
		logger: log.Discard(),
		views:  registry.Default(),
	}
}

// Option configures a Connection at Open time.
type Option func(*config)

// WithLogger sets the structured logger for the Connection. Default discards
// all records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithViewRegistry sets the classification registry consulted when reference
// results arrive. Default is registry.Default(), which knows the built-in
// view classifications.
func WithViewRegistry(views viewRegistry) Option {
	return func(c *config) {
		if views != nil {
			c.views = views
		}
	}
}
