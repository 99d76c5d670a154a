package hardware

import (
	"context"

	"github.com/xraph/depot/id"
)

// Store defines persistence operations for hardware assets.
type Store interface {
	// CreateHardware persists a new hardware asset.
	CreateHardware(ctx context.Context, h *Hardware) error

	// GetHardware retrieves a hardware asset by ID.
	GetHardware(ctx context.Context, hwID id.HardwareID) (*Hardware, error)

	// UpdateHardware persists changes to a hardware asset.
	UpdateHardware(ctx context.Context, h *Hardware) error

	// ListHardware returns hardware matching the filter.
	ListHardware(ctx context.Context, filter *ListFilter) ([]*Hardware, error)

	// CountHardware returns the number of hardware assets matching the filter.
	CountHardware(ctx context.Context, filter *ListFilter) (int64, error)

	// DeleteHardware removes a hardware asset by ID.
	DeleteHardware(ctx context.Context, hwID id.HardwareID) error
}
