// Package hardware defines the physical asset entity and its store interface.
package hardware

import (
	"time"

	"github.com/xraph/depot/id"
)

// Hardware is a physical asset (laptop, monitor, phone, ...).
// Status may be stored explicitly; when empty it is derived from whether
// an active assignment exists.
type Hardware struct {
	ID           id.HardwareID `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	Type         string        `json:"type" db:"type"`
	SerialNumber string        `json:"serial_number,omitempty" db:"serial_number"`
	Status       string        `json:"status,omitempty" db:"status"`
	Archived     bool          `json:"archived" db:"archived"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// ListFilter contains filters for listing hardware.
type ListFilter struct {
	Type     string `json:"type,omitempty"`
	Archived *bool  `json:"archived,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}
