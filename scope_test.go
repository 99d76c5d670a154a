package depot

import (
	"context"
	"testing"

	"github.com/xraph/depot/id"
	"github.com/xraph/depot/role"
	"github.com/xraph/depot/store/memory"
	"github.com/xraph/depot/user"
)

// reportCountingStore counts reporting-chain reads to observe the scope
// cache.
type reportCountingStore struct {
	*memory.Store
	reportCalls int
}

func (s *reportCountingStore) ListReportIDs(ctx context.Context, supervisorID id.UserID) ([]id.UserID, error) {
	s.reportCalls++
	return s.Store.ListReportIDs(ctx, supervisorID)
}

func seedRoles(t *testing.T, s *memory.Store) (admin, supervisor, employee id.RoleID) {
	t.Helper()
	ctx := context.Background()
	roles := []*role.Role{
		{ID: id.NewRoleID(), Name: role.NameAdmin},
		{ID: id.NewRoleID(), Name: role.NameSupervisor},
		{ID: id.NewRoleID(), Name: role.NameEmployee},
	}
	for _, r := range roles {
		if err := s.CreateRole(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	return roles[0].ID, roles[1].ID, roles[2].ID
}

func seedUser(t *testing.T, s *memory.Store, u *user.User) *user.User {
	t.Helper()
	if u.ID.IsNil() {
		u.ID = id.NewUserID()
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u
}

func callerWith(claims MapClaims) *CallerIdentity {
	return &CallerIdentity{Claims: claims}
}

func TestResolveScopeAnonymous(t *testing.T) {
	eng, _ := newTestEngine(t)

	scope, err := eng.ResolveScope(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if scope.Kind != ScopeAnonymous || scope.HasUser() {
		t.Fatalf("expected anonymous scope, got %+v", scope)
	}
	if !scope.SeesNothing() {
		t.Fatal("anonymous callers must see nothing")
	}
	if v := scope.Visibility(); v == nil || len(v) != 0 {
		t.Fatalf("expected empty visibility, got %v", v)
	}
}

func TestResolveScopeAdminRole(t *testing.T) {
	eng, s := newTestEngine(t)
	adminRole, _, _ := seedRoles(t, s)
	u := seedUser(t, s, &user.User{Name: "Ada Admin", ObjectID: "obj-ada", RoleID: &adminRole})

	scope, err := eng.ResolveScope(context.Background(), callerWith(MapClaims{
		ClaimObjectID: {"obj-ada"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if scope.Kind != ScopeResolvedWithRole || scope.UserID != u.ID {
		t.Fatalf("expected resolved admin, got %+v", scope)
	}
	if !scope.AdminOrHelpDesk {
		t.Fatal("admin role must grant full visibility")
	}
	if scope.Visibility() != nil {
		t.Fatal("admin visibility must be unrestricted")
	}
	if scope.SeesNothing() {
		t.Fatal("admin must not be scoped out")
	}
}

func TestResolveScopeClaimLadderOrder(t *testing.T) {
	eng, s := newTestEngine(t)
	byObject := seedUser(t, s, &user.User{Name: "First Rung", ObjectID: "obj-1"})
	byName := seedUser(t, s, &user.User{Name: "Second Rung"})

	// Both the object-ID and the display-name claims match stored users;
	// the object ID is the higher rung and must win.
	scope, err := eng.ResolveScope(context.Background(), callerWith(MapClaims{
		ClaimObjectID: {"obj-1"},
		ClaimName:     {"Second Rung"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if scope.UserID != byObject.ID {
		t.Fatalf("expected object-ID rung to win, got %s (name rung is %s)", scope.UserID, byName.ID)
	}
}

func TestResolveScopeEmployeeNumberRung(t *testing.T) {
	eng, s := newTestEngine(t)
	u := seedUser(t, s, &user.User{Name: "Norm Number", EmployeeNumber: "E-42"})

	scope, err := eng.ResolveScope(context.Background(), callerWith(MapClaims{
		ClaimEmployeeNumberLegacy: {"E-42"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if scope.UserID != u.ID {
		t.Fatalf("expected legacy employee-number resolution, got %+v", scope)
	}
	if scope.Kind != ScopeResolvedNoRole {
		t.Fatalf("user without role must resolve as no-role, got %v", scope.Kind)
	}
	if !scope.SeesNothing() {
		t.Fatal("unprivileged users see nothing")
	}
}

func TestResolveScopeUnrecognizedRole(t *testing.T) {
	eng, s := newTestEngine(t)
	contractor := &role.Role{ID: id.NewRoleID(), Name: "Contractor"}
	if err := s.CreateRole(context.Background(), contractor); err != nil {
		t.Fatal(err)
	}
	u := seedUser(t, s, &user.User{Name: "Connie", ObjectID: "obj-connie", RoleID: &contractor.ID})

	scope, err := eng.ResolveScope(context.Background(), callerWith(MapClaims{
		ClaimObjectID: {"obj-connie"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if scope.UserID != u.ID {
		t.Fatalf("expected user to resolve, got %+v", scope)
	}
	if scope.Kind != ScopeResolvedNoRole {
		t.Fatalf("unrecognized role must tag as no-role, got %v", scope.Kind)
	}
	if !scope.SeesNothing() {
		t.Fatal("unrecognized role grants no visibility")
	}
}

func TestResolveScopeUsernameRung(t *testing.T) {
	eng, s := newTestEngine(t)
	u := seedUser(t, s, &user.User{Name: "Uma User", Username: "uuser"})

	scope, err := eng.ResolveScope(context.Background(), callerWith(MapClaims{
		ClaimPreferredUsername: {"UUSER"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if scope.UserID != u.ID {
		t.Fatalf("expected username resolution, got %+v", scope)
	}

	// The same claim still matches email-shaped UPNs.
	byUPN := seedUser(t, s, &user.User{Name: "Pat Principal", Email: "pat@example.com"})
	scope, err = eng.ResolveScope(context.Background(), callerWith(MapClaims{
		ClaimPreferredUsername: {"pat@example.com"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if scope.UserID != byUPN.ID {
		t.Fatalf("expected UPN fallback resolution, got %+v", scope)
	}
}

func TestResolveScopeClaimOnlyPrivilege(t *testing.T) {
	eng, _ := newTestEngine(t)

	// Token-privileged caller that has not synced to the store yet.
	scope, err := eng.ResolveScope(context.Background(), callerWith(MapClaims{
		ClaimObjectID: {"obj-unsynced"},
		ClaimRoles:    {role.NameHelpDesk},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if scope.HasUser() {
		t.Fatal("no store user should resolve")
	}
	if !scope.AdminOrHelpDesk {
		t.Fatal("privileged claim must be honored before sync")
	}
	if scope.Visibility() != nil {
		t.Fatal("claim-privileged visibility must be unrestricted")
	}
}

func TestResolveScopeSupervisor(t *testing.T) {
	base := memory.New()
	s := &reportCountingStore{Store: base}
	eng, err := NewEngine(WithStore(s), WithCache(newTestCache()))
	if err != nil {
		t.Fatal(err)
	}

	_, supRole, _ := seedRoles(t, base)
	sup := seedUser(t, base, &user.User{Name: "Sue Pervisor", ObjectID: "obj-sue", RoleID: &supRole})
	r1 := seedUser(t, base, &user.User{Name: "Report One", SupervisorID: &sup.ID})
	r2 := seedUser(t, base, &user.User{Name: "Report Two", SupervisorID: &sup.ID})
	seedUser(t, base, &user.User{Name: "Outsider"})

	caller := callerWith(MapClaims{ClaimObjectID: {"obj-sue"}})
	scope, err := eng.ResolveScope(context.Background(), caller)
	if err != nil {
		t.Fatal(err)
	}
	if !scope.Supervisor || scope.AdminOrHelpDesk {
		t.Fatalf("expected supervisor scope, got %+v", scope)
	}
	if len(scope.ScopeIDs) != 3 {
		t.Fatalf("expected self plus 2 reports, got %v", scope.ScopeIDs)
	}
	want := map[id.UserID]bool{sup.ID: true, r1.ID: true, r2.ID: true}
	for _, uid := range scope.ScopeIDs {
		if !want[uid] {
			t.Fatalf("unexpected scope member %s", uid)
		}
	}
	if scope.SeesNothing() {
		t.Fatal("supervisor with reports must see assets")
	}

	// Second resolution within the TTL is served from the scope cache.
	if _, err := eng.ResolveScope(context.Background(), caller); err != nil {
		t.Fatal(err)
	}
	if s.reportCalls != 1 {
		t.Fatalf("expected 1 reporting-chain read, got %d", s.reportCalls)
	}
}

func TestScopeCacheKey(t *testing.T) {
	uid := id.NewUserID()
	key := ScopeCacheKey(uid)
	if key != "scopeIds:supervisor:"+uid.String() {
		t.Fatalf("unexpected key %q", key)
	}
}
