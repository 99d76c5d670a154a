package extension

import (
	"log/slog"

	"github.com/xraph/depot"
	"github.com/xraph/depot/plugin"
	"github.com/xraph/depot/store"
)

// ExtOption configures the Depot Forge extension.
type ExtOption func(*Extension)

// WithStore sets the persistence backend.
func WithStore(s store.Store) ExtOption {
	return func(e *Extension) {
		e.depotOpts = append(e.depotOpts, depot.WithStore(s))
	}
}

// WithCache sets the shared scope and paging cache.
func WithCache(c depot.Cache) ExtOption {
	return func(e *Extension) {
		e.depotOpts = append(e.depotOpts, depot.WithCache(c))
	}
}

// WithConfig sets the extension configuration.
func WithConfig(cfg Config) ExtOption {
	return func(e *Extension) {
		e.config = cfg
	}
}

// WithEngineOptions adds engine-level options.
func WithEngineOptions(opts ...depot.Option) ExtOption {
	return func(e *Extension) {
		e.depotOpts = append(e.depotOpts, opts...)
	}
}

// WithPlugin registers a lifecycle hook plugin.
func WithPlugin(x plugin.Plugin) ExtOption {
	return func(e *Extension) {
		e.plugins = append(e.plugins, x)
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ExtOption {
	return func(e *Extension) {
		e.logger = l
	}
}

// WithDisableMigrate disables auto-migration on start.
func WithDisableMigrate() ExtOption {
	return func(e *Extension) {
		e.config.DisableMigrate = true
	}
}
