// Package software defines the licensed asset entity and its store interface.
package software

import (
	"time"

	"github.com/xraph/depot/id"
)

// Software is a licensed asset with one or more seats. Seats counts the
// license capacity; the number of active assignments against the asset is
// the seat fill. Status is always derived: Archived beats Expired beats
// seat state.
type Software struct {
	ID         id.SoftwareID `json:"id" db:"id"`
	Name       string        `json:"name" db:"name"`
	Type       string        `json:"type" db:"type"`
	LicenseKey string        `json:"license_key,omitempty" db:"license_key"`
	Seats      int           `json:"seats" db:"seats"`
	Archived   bool          `json:"archived" db:"archived"`
	ExpiresAt  *time.Time    `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

// Expired reports whether the license has an expiry in the past.
func (s *Software) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// ListFilter contains filters for listing software.
type ListFilter struct {
	Type     string `json:"type,omitempty"`
	Archived *bool  `json:"archived,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}
