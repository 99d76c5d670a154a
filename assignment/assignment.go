// Package assignment defines the Assignment entity (asset→user binding).
package assignment

import (
	"errors"
	"time"

	"github.com/xraph/depot/id"
)

// ErrAlreadyClosed is returned by Unassign when the assignment already
// carries an unassignment timestamp.
var ErrAlreadyClosed = errors.New("assignment: already closed")

// Assignment binds one asset to one user. Exactly one of HardwareID or
// SoftwareID is set. For software, each assignment consumes one seat.
// An assignment is active while UnassignedAt is nil.
type Assignment struct {
	ID           id.AssignmentID `json:"id" db:"id"`
	HardwareID   id.HardwareID   `json:"hardware_id,omitempty" db:"hardware_id"`
	SoftwareID   id.SoftwareID   `json:"software_id,omitempty" db:"software_id"`
	UserID       id.UserID       `json:"user_id" db:"user_id"`
	AssignedAt   time.Time       `json:"assigned_at" db:"assigned_at"`
	UnassignedAt *time.Time      `json:"unassigned_at,omitempty" db:"unassigned_at"`
}

// Active reports whether the assignment is currently in effect.
func (a *Assignment) Active() bool { return a.UnassignedAt == nil }

// SeatHolder is one active seat on a software asset, joined with the
// holding user's display fields.
type SeatHolder struct {
	SoftwareID     id.SoftwareID `json:"software_id"`
	UserID         id.UserID     `json:"user_id"`
	Name           string        `json:"name"`
	EmployeeNumber string        `json:"employee_number,omitempty"`
	AssignedAt     time.Time     `json:"assigned_at"`
}

// ListFilter contains filters for listing assignments.
type ListFilter struct {
	HardwareID *id.HardwareID `json:"hardware_id,omitempty"`
	SoftwareID *id.SoftwareID `json:"software_id,omitempty"`
	UserID     *id.UserID     `json:"user_id,omitempty"`
	ActiveOnly bool           `json:"active_only,omitempty"`
	Limit      int            `json:"limit,omitempty"`
	Offset     int            `json:"offset,omitempty"`
}
