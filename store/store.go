// Package store defines the aggregate persistence interface. Each subsystem
// (hardware, software, user, role, assignment) defines its own store
// interface; the asset search projection is the asset.Source interface.
// The composite Store composes them all.
// Backends: Postgres, SQLite, and Memory.
package store

import (
	"context"

	"github.com/xraph/depot/asset"
	"github.com/xraph/depot/assignment"
	"github.com/xraph/depot/hardware"
	"github.com/xraph/depot/role"
	"github.com/xraph/depot/software"
	"github.com/xraph/depot/user"
)

// Store is the aggregate persistence interface.
// Each subsystem store is a composable interface; a single backend
// (postgres, sqlite, memory) implements all of them plus the asset
// projection.
type Store interface {
	hardware.Store
	software.Store
	user.Store
	role.Store
	assignment.Store
	asset.Source

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
