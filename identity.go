package depot

import (
	"strings"

	"github.com/xraph/depot/role"
)

// Claim names accepted on a caller identity. Employee number is accepted
// in both the current camelCase spelling and the legacy snake_case one.
const (
	ClaimObjectID             = "oid"
	ClaimPreferredUsername    = "preferred_username"
	ClaimEmail                = "email"
	ClaimName                 = "name"
	ClaimEmployeeNumber       = "employeeNumber"
	ClaimEmployeeNumberLegacy = "employee_number"
	ClaimRoles                = "roles"
)

// ClaimResolver resolves claims by name from an authenticated token.
// Implementations wrap whatever the transport provides (JWT claims, forge
// auth context, a fake in tests).
type ClaimResolver interface {
	// Claim returns the first value for the named claim.
	Claim(name string) (string, bool)

	// ClaimValues returns all values for a multi-valued claim such as
	// "roles". A single-valued claim yields a one-element slice.
	ClaimValues(name string) []string
}

// MapClaims is a ClaimResolver backed by a plain map. Primarily for tests
// and for adapters that already hold decoded claims.
type MapClaims map[string][]string

// Claim implements ClaimResolver.
func (m MapClaims) Claim(name string) (string, bool) {
	vs, ok := m[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// ClaimValues implements ClaimResolver.
func (m MapClaims) ClaimValues(name string) []string { return m[name] }

// CallerIdentity is the explicit, passed-in identity of the caller. A nil
// CallerIdentity (or one with nil Claims) is an anonymous caller.
type CallerIdentity struct {
	Claims ClaimResolver
}

// Anonymous reports whether the identity carries no claims at all.
func (c *CallerIdentity) Anonymous() bool {
	return c == nil || c.Claims == nil
}

func (c *CallerIdentity) claim(name string) string {
	if c.Anonymous() {
		return ""
	}
	v, _ := c.Claims.Claim(name)
	return strings.TrimSpace(v)
}

// ObjectID returns the external identity object-identifier claim.
func (c *CallerIdentity) ObjectID() string { return c.claim(ClaimObjectID) }

// PreferredUsername returns the preferred-username/email claim.
func (c *CallerIdentity) PreferredUsername() string { return c.claim(ClaimPreferredUsername) }

// Email returns the legacy email claim.
func (c *CallerIdentity) Email() string { return c.claim(ClaimEmail) }

// Name returns the identity display-name claim.
func (c *CallerIdentity) Name() string { return c.claim(ClaimName) }

// EmployeeNumber returns the employee-number claim, preferring the
// camelCase spelling over the legacy snake_case one.
func (c *CallerIdentity) EmployeeNumber() string {
	if v := c.claim(ClaimEmployeeNumber); v != "" {
		return v
	}
	return c.claim(ClaimEmployeeNumberLegacy)
}

// RoleClaims returns the role claim values.
func (c *CallerIdentity) RoleClaims() []string {
	if c.Anonymous() {
		return nil
	}
	return c.Claims.ClaimValues(ClaimRoles)
}

// HasAdminClaim reports whether a role claim grants Admin/Helpdesk
// visibility, independent of any store lookup.
func (c *CallerIdentity) HasAdminClaim() bool {
	for _, r := range c.RoleClaims() {
		if role.Privileged(strings.TrimSpace(r)) {
			return true
		}
	}
	return false
}

// HasSupervisorClaim reports whether a role claim marks the caller as a
// supervisor.
func (c *CallerIdentity) HasSupervisorClaim() bool {
	for _, r := range c.RoleClaims() {
		if strings.TrimSpace(r) == role.NameSupervisor {
			return true
		}
	}
	return false
}
