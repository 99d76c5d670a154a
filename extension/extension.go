// Package extension provides a Forge extension entry point for Depot.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/depot"
	"github.com/xraph/depot/plugin"
	"github.com/xraph/depot/store"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "depot"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Role-scoped asset inventory search and paging engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Depot as a Forge extension.
type Extension struct {
	config    Config
	eng       *depot.Engine
	logger    *slog.Logger
	depotOpts []depot.Option
	plugins   []plugin.Plugin
}

// New creates a Depot Forge extension with the given options.
func New(opts ...ExtOption) *Extension {
	e := &Extension{config: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extension name.
func (e *Extension) Name() string { return ExtensionName }

// Description returns the extension description.
func (e *Extension) Description() string { return ExtensionDescription }

// Version returns the extension version.
func (e *Extension) Version() string { return ExtensionVersion }

// Dependencies returns the list of extension names this extension depends on.
func (e *Extension) Dependencies() []string { return []string{} }

// Engine returns the underlying Depot engine.
func (e *Extension) Engine() *depot.Engine { return e.eng }

// Register implements [forge.Extension]. It initializes the engine and
// registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.init(fapp); err != nil {
		return err
	}

	if err := vessel.Provide(fapp.Container(), func() (*depot.Engine, error) {
		return e.eng, nil
	}); err != nil {
		return fmt.Errorf("depot: register engine in container: %w", err)
	}

	return nil
}

func (e *Extension) init(fapp forge.App) error {
	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}

	// Build depot options.
	opts := make([]depot.Option, 0, len(e.depotOpts)+len(e.plugins)+2)
	opts = append(opts, depot.WithLogger(logger))
	opts = append(opts, depot.WithConfig(depot.Config{
		ScopeTTL: e.config.ScopeTTL,
		PageTTL:  e.config.PageTTL,
	}))

	// Try to resolve store from DI container, fall back to option-provided store.
	if s, err := forge.Inject[store.Store](fapp.Container()); err == nil {
		opts = append(opts, depot.WithStore(s))
	}

	// Append user-provided options (may override store).
	opts = append(opts, e.depotOpts...)

	// Register extension hooks.
	for _, x := range e.plugins {
		opts = append(opts, depot.WithPlugin(x))
	}

	eng, err := depot.NewEngine(opts...)
	if err != nil {
		return fmt.Errorf("depot: create engine: %w", err)
	}
	e.eng = eng
	return nil
}

// Start begins the depot engine and runs migrations if enabled.
func (e *Extension) Start(ctx context.Context) error {
	if e.eng == nil {
		return errors.New("depot: extension not initialized")
	}

	// Run migrations unless disabled.
	if !e.config.DisableMigrate {
		s := e.eng.Store()
		if s != nil {
			if err := s.Migrate(ctx); err != nil {
				return fmt.Errorf("depot: migration failed: %w", err)
			}
		}
	}

	return e.eng.Start(ctx)
}

// Stop gracefully shuts down the depot engine.
func (e *Extension) Stop(ctx context.Context) error {
	if e.eng == nil {
		return nil
	}
	return e.eng.Stop(ctx)
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.eng == nil {
		return errors.New("depot: extension not initialized")
	}
	s := e.eng.Store()
	if s == nil {
		return errors.New("depot: no store configured")
	}
	return s.Ping(ctx)
}
