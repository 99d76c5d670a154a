package user

import (
	"context"

	"github.com/xraph/depot/id"
)

// Store defines persistence operations for users.
// Lookups return (nil, nil) when no matching user exists; an unknown
// caller is a degraded scope, not an error.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, u *User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID id.UserID) (*User, error)

	// GetUserByObjectID retrieves a user by external identity object ID.
	GetUserByObjectID(ctx context.Context, objectID string) (*User, error)

	// GetUserByEmail retrieves a user by email, case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByUsername retrieves a user by username, case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// GetUserByName retrieves a user by display name, case-insensitively.
	GetUserByName(ctx context.Context, name string) (*User, error)

	// GetUserByEmployeeNumber retrieves a user by employee number.
	GetUserByEmployeeNumber(ctx context.Context, employeeNumber string) (*User, error)

	// ListUsers returns users matching the filter.
	ListUsers(ctx context.Context, filter *ListFilter) ([]*User, error)

	// ListReportIDs returns the IDs of users whose supervisor is the given
	// user. The supervisor itself is not included.
	ListReportIDs(ctx context.Context, supervisorID id.UserID) ([]id.UserID, error)

	// DeleteUser removes a user by ID.
	DeleteUser(ctx context.Context, userID id.UserID) error
}
