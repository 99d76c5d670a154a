// Package role defines the Role entity and its store interface.
package role

import (
	"time"

	"github.com/xraph/depot/id"
)

// Well-known role names. Visibility rules key off these: Admin and
// IT Help Desk see every asset, Supervisor sees self plus direct reports.
const (
	NameAdmin      = "Admin"
	NameHelpDesk   = "IT Help Desk"
	NameSupervisor = "Supervisor"
	NameEmployee   = "Employee"
)

// Role represents a named access role that can be held by users.
type Role struct {
	ID          id.RoleID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Privileged reports whether the role name grants unrestricted asset
// visibility.
func Privileged(name string) bool {
	return name == NameAdmin || name == NameHelpDesk
}

// Recognized reports whether the role name is one of the well-known
// names. Users holding any other name are treated as having no role.
func Recognized(name string) bool {
	return Privileged(name) || name == NameSupervisor || name == NameEmployee
}

// ListFilter contains filters for listing roles.
type ListFilter struct {
	Name   string `json:"name,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}
