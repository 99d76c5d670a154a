// Package user defines the User entity and its store interface.
package user

import (
	"time"

	"github.com/xraph/depot/id"
)

// User is an operator or employee known to the user store. Identity
// resolution matches incoming token claims against ObjectID, Email,
// Username, Name, or EmployeeNumber, in that order.
type User struct {
	ID             id.UserID  `json:"id" db:"id"`
	ObjectID       string     `json:"object_id,omitempty" db:"object_id"`
	Username       string     `json:"username,omitempty" db:"username"`
	Email          string     `json:"email,omitempty" db:"email"`
	Name           string     `json:"name" db:"name"`
	EmployeeNumber string     `json:"employee_number,omitempty" db:"employee_number"`
	SupervisorID   *id.UserID `json:"supervisor_id,omitempty" db:"supervisor_id"`
	RoleID         *id.RoleID `json:"role_id,omitempty" db:"role_id"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// ListFilter contains filters for listing users.
type ListFilter struct {
	SupervisorID *id.UserID `json:"supervisor_id,omitempty"`
	RoleID       *id.RoleID `json:"role_id,omitempty"`
	Search       string     `json:"search,omitempty"`
	Limit        int        `json:"limit,omitempty"`
	Offset       int        `json:"offset,omitempty"`
}
