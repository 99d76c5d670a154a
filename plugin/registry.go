package plugin

import (
	"context"
	"log/slog"

	"github.com/xraph/depot/assignment"
	"github.com/xraph/depot/id"
)

// Named entry types pair a hook with the plugin name for logging.

type beforeSearchEntry struct {
	name string
	hook BeforeSearch
}
type afterSearchEntry struct {
	name string
	hook AfterSearch
}
type scopeResolvedEntry struct {
	name string
	hook ScopeResolved
}
type assetAssignedEntry struct {
	name string
	hook AssetAssigned
}
type assetUnassignedEntry struct {
	name string
	hook AssetUnassigned
}
type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered plugins and dispatches lifecycle events.
// It type-caches plugins at registration time so emit calls iterate
// only over plugins implementing the relevant hook.
type Registry struct {
	plugins []Plugin
	logger  *slog.Logger

	beforeSearch    []beforeSearchEntry
	afterSearch     []afterSearchEntry
	scopeResolved   []scopeResolvedEntry
	assetAssigned   []assetAssignedEntry
	assetUnassigned []assetUnassignedEntry
	shutdown        []shutdownEntry
}

// NewRegistry creates a plugin registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a plugin and type-asserts it into all applicable
// hook caches. Plugins are notified in registration order.
func (r *Registry) Register(p Plugin) {
	r.plugins = append(r.plugins, p)
	name := p.Name()

	if h, ok := p.(BeforeSearch); ok {
		r.beforeSearch = append(r.beforeSearch, beforeSearchEntry{name, h})
	}
	if h, ok := p.(AfterSearch); ok {
		r.afterSearch = append(r.afterSearch, afterSearchEntry{name, h})
	}
	if h, ok := p.(ScopeResolved); ok {
		r.scopeResolved = append(r.scopeResolved, scopeResolvedEntry{name, h})
	}
	if h, ok := p.(AssetAssigned); ok {
		r.assetAssigned = append(r.assetAssigned, assetAssignedEntry{name, h})
	}
	if h, ok := p.(AssetUnassigned); ok {
		r.assetUnassigned = append(r.assetUnassigned, assetUnassignedEntry{name, h})
	}
	if h, ok := p.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, h})
	}
}

// Plugins returns all registered plugins.
func (r *Registry) Plugins() []Plugin { return r.plugins }

// ──────────────────────────────────────────────────
// Search event emitters
// ──────────────────────────────────────────────────

// EmitBeforeSearch notifies all plugins that implement BeforeSearch.
func (r *Registry) EmitBeforeSearch(ctx context.Context, req any) {
	for _, e := range r.beforeSearch {
		if err := e.hook.OnBeforeSearch(ctx, req); err != nil {
			r.logHookError("OnBeforeSearch", e.name, err)
		}
	}
}

// EmitAfterSearch notifies all plugins that implement AfterSearch.
func (r *Registry) EmitAfterSearch(ctx context.Context, req, result any) {
	for _, e := range r.afterSearch {
		if err := e.hook.OnAfterSearch(ctx, req, result); err != nil {
			r.logHookError("OnAfterSearch", e.name, err)
		}
	}
}

// EmitScopeResolved notifies all plugins that implement ScopeResolved.
func (r *Registry) EmitScopeResolved(ctx context.Context, scope any) {
	for _, e := range r.scopeResolved {
		if err := e.hook.OnScopeResolved(ctx, scope); err != nil {
			r.logHookError("OnScopeResolved", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Assignment event emitters
// ──────────────────────────────────────────────────

// EmitAssetAssigned notifies all plugins that implement AssetAssigned.
func (r *Registry) EmitAssetAssigned(ctx context.Context, a *assignment.Assignment) {
	for _, e := range r.assetAssigned {
		if err := e.hook.OnAssetAssigned(ctx, a); err != nil {
			r.logHookError("OnAssetAssigned", e.name, err)
		}
	}
}

// EmitAssetUnassigned notifies all plugins that implement AssetUnassigned.
func (r *Registry) EmitAssetUnassigned(ctx context.Context, assignmentID id.AssignmentID) {
	for _, e := range r.assetUnassigned {
		if err := e.hook.OnAssetUnassigned(ctx, assignmentID); err != nil {
			r.logHookError("OnAssetUnassigned", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Shutdown emitter
// ──────────────────────────────────────────────────

// EmitShutdown notifies all plugins that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block the pipeline.
func (r *Registry) logHookError(hook, pluginName string, err error) {
	r.logger.Warn("plugin hook error",
		slog.String("hook", hook),
		slog.String("plugin", pluginName),
		slog.String("error", err.Error()),
	)
}
