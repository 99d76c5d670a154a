// Package asset defines the unified search row projected over the hardware
// and software families, the query specification backends accept, and the
// match/sort helpers shared by the Go-side backends.
package asset

import (
	"fmt"
	"time"

	"github.com/xraph/depot/id"
	"github.com/xraph/depot/software"
)

// Derived status labels.
const (
	StatusAssigned  = "Assigned"
	StatusAvailable = "Available"
	StatusArchived  = "Archived"
	StatusExpired   = "Expired"
)

// Row is the unified search result unit: one per hardware asset and one
// per software asset. Exactly one of HardwareID or SoftwareID is set.
type Row struct {
	HardwareID id.HardwareID `json:"hardware_id,omitempty"`
	SoftwareID id.SoftwareID `json:"software_id,omitempty"`

	Name   string `json:"name"`
	Type   string `json:"type"`
	Tag    string `json:"tag,omitempty"` // serial number or license key
	Status string `json:"status"`

	// Assignee is the current holder of a hardware asset, nil when
	// unassigned and always nil for software.
	Assignee *Assignee `json:"assignee,omitempty"`

	// Seats lists the active seat holders of a software asset. Populated
	// by the seat hydrator for rendered pages only; the base projection
	// leaves it nil.
	Seats []SeatAssignment `json:"seats,omitempty"`
}

// IsSoftware reports whether the row projects a software asset.
func (r *Row) IsSoftware() bool { return !r.SoftwareID.IsNil() }

// Assignee is the user currently holding a hardware asset.
type Assignee struct {
	UserID         id.UserID `json:"user_id"`
	Name           string    `json:"name"`
	EmployeeNumber string    `json:"employee_number,omitempty"`
	AssignedAt     time.Time `json:"assigned_at"`
}

// SeatAssignment is one active seat holder chip on a software row.
type SeatAssignment struct {
	UserID         id.UserID `json:"user_id"`
	Name           string    `json:"name"`
	EmployeeNumber string    `json:"employee_number,omitempty"`
}

// HardwareStatus derives the status label for a hardware asset. A stored
// status wins; otherwise assignment presence decides.
func HardwareStatus(stored string, archived, assigned bool) string {
	if archived {
		return StatusArchived
	}
	if stored != "" {
		return stored
	}
	if assigned {
		return StatusAssigned
	}
	return StatusAvailable
}

// SoftwareStatus derives the status label for a software asset from its
// archived/expiry state and active seat count. Archived beats Expired
// beats seat state.
func SoftwareStatus(s *software.Software, activeSeats int, now time.Time) string {
	switch {
	case s.Archived:
		return StatusArchived
	case s.Expired(now):
		return StatusExpired
	case activeSeats == 0:
		return StatusAvailable
	case s.Seats > 1 && activeSeats < s.Seats:
		return fmt.Sprintf("%s (%d/%d)", StatusAssigned, activeSeats, s.Seats)
	default:
		return StatusAssigned
	}
}
