package role

import (
	"context"

	"github.com/xraph/depot/id"
)

// Store defines persistence operations for roles.
// Lookups return (nil, nil) when no matching role exists.
type Store interface {
	// CreateRole persists a new role.
	CreateRole(ctx context.Context, r *Role) error

	// GetRole retrieves a role by ID.
	GetRole(ctx context.Context, roleID id.RoleID) (*Role, error)

	// GetRoleByName retrieves a role by its exact name.
	GetRoleByName(ctx context.Context, name string) (*Role, error)

	// ListRoles returns roles matching the filter.
	ListRoles(ctx context.Context, filter *ListFilter) ([]*Role, error)

	// DeleteRole removes a role by ID.
	DeleteRole(ctx context.Context, roleID id.RoleID) error
}
