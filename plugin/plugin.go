// Package plugin defines the plugin system for Depot.
// Plugins are notified of lifecycle events (search performed, scope
// resolved, asset assigned, etc.) and can react — logging, metrics,
// tracing, etc.
//
// Each lifecycle hook is a separate interface so plugins opt in only
// to the events they care about.
package plugin

import (
	"context"

	"github.com/xraph/depot/assignment"
	"github.com/xraph/depot/id"
)

// Plugin is the base interface all plugins must implement.
type Plugin interface {
	// Name returns a unique human-readable name for the plugin.
	Name() string
}

// ──────────────────────────────────────────────────
// Search lifecycle hooks
// ──────────────────────────────────────────────────

// BeforeSearch is called before an asset search is executed.
// The req parameter is *depot.SearchRequest (passed as any to avoid import cycle).
type BeforeSearch interface {
	OnBeforeSearch(ctx context.Context, req any) error
}

// AfterSearch is called after an asset search completes.
// The req parameter is *depot.SearchRequest; result is the paged result.
type AfterSearch interface {
	OnAfterSearch(ctx context.Context, req, result any) error
}

// ScopeResolved is called after a caller's visibility scope is resolved.
// The scope parameter is *depot.RoleScope (passed as any to avoid import cycle).
type ScopeResolved interface {
	OnScopeResolved(ctx context.Context, scope any) error
}

// ──────────────────────────────────────────────────
// Assignment lifecycle hooks
// ──────────────────────────────────────────────────

// AssetAssigned is called after an asset is assigned to a user.
type AssetAssigned interface {
	OnAssetAssigned(ctx context.Context, a *assignment.Assignment) error
}

// AssetUnassigned is called after an assignment is closed.
type AssetUnassigned interface {
	OnAssetUnassigned(ctx context.Context, assignmentID id.AssignmentID) error
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// Shutdown is called when the engine is shutting down.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
