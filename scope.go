package depot

import (
	"context"
	"fmt"

	"github.com/xraph/depot/id"
	"github.com/xraph/depot/role"
	"github.com/xraph/depot/user"
)

// ScopeKind is the tagged outcome of identity resolution. Keeping the
// three cases explicit prevents "anonymous" and "resolved but
// unprivileged" from collapsing into each other.
type ScopeKind int

const (
	// ScopeAnonymous means no claim resolved to a known user.
	ScopeAnonymous ScopeKind = iota

	// ScopeResolvedNoRole means a user resolved but holds no recognized
	// role and no privileged claim.
	ScopeResolvedNoRole

	// ScopeResolvedWithRole means a user resolved with a recognized role
	// or a privileged claim.
	ScopeResolvedWithRole
)

// RoleScope is the caller's resolved visibility, computed per request.
type RoleScope struct {
	Kind   ScopeKind
	UserID id.UserID

	// AdminOrHelpDesk callers see every asset, unfiltered.
	AdminOrHelpDesk bool

	// Supervisor callers see assets held by themselves and their direct
	// reports. ScopeIDs holds that user set; it is only populated when a
	// store user resolved (a claim-only supervisor has no chain to walk).
	Supervisor bool
	ScopeIDs   []id.UserID
}

// HasUser reports whether the caller resolved to a known user.
func (s RoleScope) HasUser() bool { return s.Kind != ScopeAnonymous }

// Visibility returns the asset-query scope for this role scope. A nil
// slice means unrestricted; empty means nothing is visible.
func (s RoleScope) Visibility() []id.UserID {
	if s.AdminOrHelpDesk {
		return nil
	}
	if s.Supervisor && len(s.ScopeIDs) > 0 {
		return s.ScopeIDs
	}
	return []id.UserID{}
}

// SeesNothing reports whether no asset can be visible to this scope, so
// callers can skip the store entirely.
func (s RoleScope) SeesNothing() bool {
	return !s.AdminOrHelpDesk && (!s.Supervisor || len(s.ScopeIDs) == 0)
}

// ScopeCacheKey is the cache key for a supervisor's resolved user-ID set.
// The key format is contract surface other layers may reuse.
func ScopeCacheKey(supervisorID id.UserID) string {
	return fmt.Sprintf("scopeIds:supervisor:%s", supervisorID)
}

// ResolveScope resolves the caller's identity and role into a RoleScope.
//
// Identity resolution tries claims in priority order — object identifier,
// preferred username (as username, then as an email-shaped UPN), legacy
// email, display name, employee number — and the first claim that matches
// a stored user wins. Role flags OR the stored
// role with the caller's role claims, so a token-privileged caller is
// honored even before the user syncs to the store. Supervisor scopes are
// served from the scope cache within its TTL.
//
// An unresolvable identity is not an error; it degrades to an anonymous
// scope. Store failures propagate.
func (e *Engine) ResolveScope(ctx context.Context, caller *CallerIdentity) (RoleScope, error) {
	var scope RoleScope
	if caller.Anonymous() {
		return scope, nil
	}

	u, err := e.resolveUser(ctx, caller)
	if err != nil {
		return scope, err
	}

	claimAdmin := caller.HasAdminClaim()
	claimSupervisor := caller.HasSupervisorClaim()

	if u == nil {
		// Authenticated via token but not yet synced to the store: honor
		// privileged claims rather than failing closed.
		scope.AdminOrHelpDesk = claimAdmin
		scope.Supervisor = claimSupervisor
		return scope, nil
	}

	scope.UserID = u.ID

	roleName, err := e.userRoleName(ctx, u)
	if err != nil {
		return RoleScope{}, err
	}

	scope.AdminOrHelpDesk = role.Privileged(roleName) || claimAdmin
	scope.Supervisor = roleName == role.NameSupervisor || claimSupervisor

	if role.Recognized(roleName) || claimAdmin || claimSupervisor {
		scope.Kind = ScopeResolvedWithRole
	} else {
		scope.Kind = ScopeResolvedNoRole
	}

	if scope.Supervisor {
		ids, err := e.supervisorScopeIDs(ctx, u.ID)
		if err != nil {
			return RoleScope{}, err
		}
		scope.ScopeIDs = ids
	}

	return scope, nil
}

// resolveUser walks the claim ladder against the user store. The first
// lookup that returns a user wins; a miss on every rung means anonymous.
func (e *Engine) resolveUser(ctx context.Context, caller *CallerIdentity) (*user.User, error) {
	lookups := []struct {
		value string
		fn    func(context.Context, string) (*user.User, error)
	}{
		{caller.ObjectID(), e.store.GetUserByObjectID},
		{caller.PreferredUsername(), e.store.GetUserByUsername},
		{caller.PreferredUsername(), e.store.GetUserByEmail},
		{caller.Email(), e.store.GetUserByEmail},
		{caller.Name(), e.store.GetUserByName},
		{caller.EmployeeNumber(), e.store.GetUserByEmployeeNumber},
	}

	for _, l := range lookups {
		if l.value == "" {
			continue
		}
		u, err := l.fn(ctx, l.value)
		if err != nil {
			return nil, fmt.Errorf("depot: resolve user: %w", err)
		}
		if u != nil {
			return u, nil
		}
	}
	return nil, nil
}

func (e *Engine) userRoleName(ctx context.Context, u *user.User) (string, error) {
	if u.RoleID == nil {
		return "", nil
	}
	r, err := e.store.GetRole(ctx, *u.RoleID)
	if err != nil {
		return "", fmt.Errorf("depot: resolve role: %w", err)
	}
	if r == nil {
		return "", nil
	}
	return r.Name, nil
}

// supervisorScopeIDs computes {self} ∪ {direct reports}, memoized in the
// scope cache under ScopeCacheKey for the configured TTL.
func (e *Engine) supervisorScopeIDs(ctx context.Context, userID id.UserID) ([]id.UserID, error) {
	key := ScopeCacheKey(userID)
	ids, err := getOrCompute(ctx, e.cache, key, e.config.scopeTTL(), func(ctx context.Context) ([]id.UserID, error) {
		reports, err := e.store.ListReportIDs(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("depot: list reports: %w", err)
		}
		out := make([]id.UserID, 0, len(reports)+1)
		out = append(out, userID)
		out = append(out, reports...)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
