package software

import (
	"context"

	"github.com/xraph/depot/id"
)

// Store defines persistence operations for software assets.
type Store interface {
	// CreateSoftware persists a new software asset.
	CreateSoftware(ctx context.Context, s *Software) error

	// GetSoftware retrieves a software asset by ID.
	GetSoftware(ctx context.Context, swID id.SoftwareID) (*Software, error)

	// UpdateSoftware persists changes to a software asset.
	UpdateSoftware(ctx context.Context, s *Software) error

	// ListSoftware returns software matching the filter.
	ListSoftware(ctx context.Context, filter *ListFilter) ([]*Software, error)

	// CountSoftware returns the number of software assets matching the filter.
	CountSoftware(ctx context.Context, filter *ListFilter) (int64, error)

	// DeleteSoftware removes a software asset by ID.
	DeleteSoftware(ctx context.Context, swID id.SoftwareID) error
}
