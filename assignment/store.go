package assignment

import (
	"context"
	"time"

	"github.com/xraph/depot/id"
)

// Store defines persistence operations for asset assignments.
type Store interface {
	// CreateAssignment persists a new assignment.
	CreateAssignment(ctx context.Context, a *Assignment) error

	// GetAssignment retrieves an assignment by ID.
	GetAssignment(ctx context.Context, asgnID id.AssignmentID) (*Assignment, error)

	// Unassign stamps an active assignment's UnassignedAt, ending it.
	// Unassigning an already-closed assignment returns ErrAlreadyClosed.
	Unassign(ctx context.Context, asgnID id.AssignmentID, at time.Time) error

	// ListAssignments returns assignments matching the filter.
	ListAssignments(ctx context.Context, filter *ListFilter) ([]*Assignment, error)

	// CountAssignments returns the number of assignments matching the filter.
	CountAssignments(ctx context.Context, filter *ListFilter) (int64, error)

	// ListActiveSeatHolders returns, for the given software assets, one
	// SeatHolder per active assignment joined with the holding user.
	ListActiveSeatHolders(ctx context.Context, softwareIDs []id.SoftwareID) ([]*SeatHolder, error)

	// DeleteAssignment removes an assignment by ID.
	DeleteAssignment(ctx context.Context, asgnID id.AssignmentID) error
}
