package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/depot/asset"
	"github.com/xraph/depot/assignment"
	"github.com/xraph/depot/hardware"
	"github.com/xraph/depot/id"
	"github.com/xraph/depot/role"
	"github.com/xraph/depot/software"
	"github.com/xraph/depot/store"
	"github.com/xraph/depot/user"
)

// Compile-time check that *Store implements store.Store.
var _ store.Store = (*Store)(nil)

func TestHardwareCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	h := &hardware.Hardware{
		ID:           id.NewHardwareID(),
		Name:         "ThinkPad X1",
		Type:         "Laptop",
		SerialNumber: "SN-1001",
	}

	// Create
	if err := s.CreateHardware(ctx, h); err != nil {
		t.Fatal(err)
	}

	// Get
	got, err := s.GetHardware(ctx, h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "ThinkPad X1" {
		t.Fatalf("expected ThinkPad X1, got %s", got.Name)
	}

	// Get miss is (nil, nil)
	got, err = s.GetHardware(ctx, id.NewHardwareID())
	if err != nil || got != nil {
		t.Fatalf("expected nil,nil miss, got %v, %v", got, err)
	}

	// Update
	h.Name = "ThinkPad X1 Carbon"
	if err := s.UpdateHardware(ctx, h); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetHardware(ctx, h.ID)
	if got.Name != "ThinkPad X1 Carbon" {
		t.Fatal("update failed")
	}

	// List
	list, _ := s.ListHardware(ctx, &hardware.ListFilter{Type: "laptop"})
	if len(list) != 1 {
		t.Fatalf("expected 1 hardware, got %d", len(list))
	}

	// Count
	count, _ := s.CountHardware(ctx, &hardware.ListFilter{})
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	// Delete
	if err := s.DeleteHardware(ctx, h.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteHardware(ctx, h.ID); err == nil {
		t.Fatal("expected error deleting missing hardware")
	}
}

func TestSoftwareCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	past := time.Now().Add(-24 * time.Hour)
	sw := &software.Software{
		ID:         id.NewSoftwareID(),
		Name:       "Acrobat Pro",
		Type:       "License",
		LicenseKey: "KEY-42",
		Seats:      3,
		ExpiresAt:  &past,
	}

	if err := s.CreateSoftware(ctx, sw); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetSoftware(ctx, sw.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LicenseKey != "KEY-42" || got.Seats != 3 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	// Copies, not shared pointers.
	if got.ExpiresAt == sw.ExpiresAt {
		t.Fatal("ExpiresAt pointer was shared with the caller")
	}

	sw.Seats = 5
	if err := s.UpdateSoftware(ctx, sw); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetSoftware(ctx, sw.ID)
	if got.Seats != 5 {
		t.Fatal("update failed")
	}

	list, _ := s.ListSoftware(ctx, &software.ListFilter{Type: "license"})
	if len(list) != 1 {
		t.Fatalf("expected 1 software, got %d", len(list))
	}

	if err := s.DeleteSoftware(ctx, sw.ID); err != nil {
		t.Fatal(err)
	}
}

func TestUserLookups(t *testing.T) {
	ctx := context.Background()
	s := New()

	boss := &user.User{ID: id.NewUserID(), Name: "Dana Boss", Email: "dana@corp.example"}
	if err := s.CreateUser(ctx, boss); err != nil {
		t.Fatal(err)
	}

	u := &user.User{
		ID:             id.NewUserID(),
		ObjectID:       "oid-123",
		Username:       "jdoe",
		Email:          "JDoe@corp.example",
		Name:           "Jane Doe",
		EmployeeNumber: "E-77",
		SupervisorID:   &boss.ID,
	}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}

	byObj, _ := s.GetUserByObjectID(ctx, "oid-123")
	if byObj == nil || byObj.ID != u.ID {
		t.Fatal("object ID lookup failed")
	}

	// Email lookups fold case.
	byEmail, _ := s.GetUserByEmail(ctx, "jdoe@CORP.example")
	if byEmail == nil || byEmail.ID != u.ID {
		t.Fatal("email lookup failed")
	}

	byName, _ := s.GetUserByName(ctx, "jane doe")
	if byName == nil || byName.ID != u.ID {
		t.Fatal("name lookup failed")
	}

	byEmp, _ := s.GetUserByEmployeeNumber(ctx, "E-77")
	if byEmp == nil || byEmp.ID != u.ID {
		t.Fatal("employee number lookup failed")
	}

	// Employee numbers are exact.
	byEmp, _ = s.GetUserByEmployeeNumber(ctx, "e-77")
	if byEmp != nil {
		t.Fatal("employee number lookup should be case-sensitive")
	}

	reports, _ := s.ListReportIDs(ctx, boss.ID)
	if len(reports) != 1 || reports[0] != u.ID {
		t.Fatalf("expected one report, got %v", reports)
	}
	if reports, _ = s.ListReportIDs(ctx, u.ID); len(reports) != 0 {
		t.Fatal("leaf user should have no reports")
	}
}

func TestRoleCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	r := &role.Role{ID: id.NewRoleID(), Name: role.NameSupervisor}
	if err := s.CreateRole(ctx, r); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetRoleByName(ctx, role.NameSupervisor)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ID != r.ID {
		t.Fatal("name lookup mismatch")
	}

	list, _ := s.ListRoles(ctx, &role.ListFilter{})
	if len(list) != 1 {
		t.Fatalf("expected 1 role, got %d", len(list))
	}

	if err := s.DeleteRole(ctx, r.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetRole(ctx, r.ID)
	if got != nil {
		t.Fatal("expected nil after delete")
	}
}

func TestAssignmentLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	uid := id.NewUserID()
	a := &assignment.Assignment{
		ID:         id.NewAssignmentID(),
		HardwareID: id.NewHardwareID(),
		UserID:     uid,
		AssignedAt: time.Now(),
	}
	if err := s.CreateAssignment(ctx, a); err != nil {
		t.Fatal(err)
	}

	active, _ := s.ListAssignments(ctx, &assignment.ListFilter{UserID: &uid, ActiveOnly: true})
	if len(active) != 1 {
		t.Fatalf("expected 1 active assignment, got %d", len(active))
	}

	if err := s.Unassign(ctx, a.ID, time.Now()); err != nil {
		t.Fatal(err)
	}
	active, _ = s.ListAssignments(ctx, &assignment.ListFilter{UserID: &uid, ActiveOnly: true})
	if len(active) != 0 {
		t.Fatal("assignment still active after unassign")
	}

	// Second unassign reports the closed state.
	err := s.Unassign(ctx, a.ID, time.Now())
	if !errors.Is(err, assignment.ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed, got %v", err)
	}

	count, _ := s.CountAssignments(ctx, &assignment.ListFilter{UserID: &uid})
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
}

func TestListActiveSeatHolders(t *testing.T) {
	ctx := context.Background()
	s := New()

	u := &user.User{ID: id.NewUserID(), Name: "Jane Doe", EmployeeNumber: "E-77"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}

	swID := id.NewSoftwareID()
	if err := s.CreateAssignment(ctx, &assignment.Assignment{
		ID:         id.NewAssignmentID(),
		SoftwareID: swID,
		UserID:     u.ID,
		AssignedAt: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}
	// Closed seats do not count.
	closed := time.Now()
	if err := s.CreateAssignment(ctx, &assignment.Assignment{
		ID:           id.NewAssignmentID(),
		SoftwareID:   swID,
		UserID:       id.NewUserID(),
		AssignedAt:   time.Now().Add(-time.Hour),
		UnassignedAt: &closed,
	}); err != nil {
		t.Fatal(err)
	}

	holders, err := s.ListActiveSeatHolders(ctx, []id.SoftwareID{swID})
	if err != nil {
		t.Fatal(err)
	}
	if len(holders) != 1 {
		t.Fatalf("expected 1 holder, got %d", len(holders))
	}
	if holders[0].Name != "Jane Doe" || holders[0].EmployeeNumber != "E-77" {
		t.Fatalf("holder not joined with user fields: %+v", holders[0])
	}
}

func seedAssets(t *testing.T, s *Store) (holder id.UserID) {
	t.Helper()
	ctx := context.Background()

	u := &user.User{ID: id.NewUserID(), Name: "Jane Doe", EmployeeNumber: "E-77"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}

	assigned := &hardware.Hardware{ID: id.NewHardwareID(), Name: "ThinkPad X1", Type: "Laptop", SerialNumber: "SN-1001"}
	free := &hardware.Hardware{ID: id.NewHardwareID(), Name: "Aeron Chair", Type: "Furniture", SerialNumber: "SN-2002"}
	gone := &hardware.Hardware{ID: id.NewHardwareID(), Name: "Old Dock", Type: "Dock", Archived: true}
	for _, h := range []*hardware.Hardware{assigned, free, gone} {
		if err := s.CreateHardware(ctx, h); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.CreateAssignment(ctx, &assignment.Assignment{
		ID:         id.NewAssignmentID(),
		HardwareID: assigned.ID,
		UserID:     u.ID,
		AssignedAt: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	sw := &software.Software{ID: id.NewSoftwareID(), Name: "Acrobat Pro", Type: "License", LicenseKey: "KEY-42", Seats: 3}
	if err := s.CreateSoftware(ctx, sw); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateAssignment(ctx, &assignment.Assignment{
		ID:         id.NewAssignmentID(),
		SoftwareID: sw.ID,
		UserID:     u.ID,
		AssignedAt: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}
	return u.ID
}

func TestSearchAssetsProjection(t *testing.T) {
	ctx := context.Background()
	s := New()
	holder := seedAssets(t, s)

	// Unscoped, unfiltered: archived hidden.
	rows, err := s.SearchAssets(ctx, &asset.Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Canonical order is name-first.
	if rows[0].Name != "Acrobat Pro" || rows[1].Name != "Aeron Chair" {
		t.Fatalf("unexpected order: %s, %s", rows[0].Name, rows[1].Name)
	}

	// Archived shown on request.
	rows, _ = s.SearchAssets(ctx, &asset.Query{ShowArchived: true})
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows with archived, got %d", len(rows))
	}

	// Status derivation.
	byName := map[string]*asset.Row{}
	for _, r := range rows {
		byName[r.Name] = r
	}
	if got := byName["ThinkPad X1"].Status; got != asset.StatusAssigned {
		t.Fatalf("assigned hardware status = %q", got)
	}
	if got := byName["Aeron Chair"].Status; got != asset.StatusAvailable {
		t.Fatalf("free hardware status = %q", got)
	}
	if got := byName["Old Dock"].Status; got != asset.StatusArchived {
		t.Fatalf("archived hardware status = %q", got)
	}
	// Multi-seat software partially assigned.
	if got := byName["Acrobat Pro"].Status; got != "Assigned (1/3)" {
		t.Fatalf("software status = %q", got)
	}

	// Assignee joined on hardware only.
	if byName["ThinkPad X1"].Assignee == nil || byName["ThinkPad X1"].Assignee.Name != "Jane Doe" {
		t.Fatal("assignee not joined")
	}
	if byName["Acrobat Pro"].Assignee != nil {
		t.Fatal("software rows must not carry an assignee")
	}

	// Scoped to the holder: only held assets.
	rows, _ = s.SearchAssets(ctx, &asset.Query{Scope: []id.UserID{holder}})
	if len(rows) != 2 {
		t.Fatalf("expected 2 scoped rows, got %d", len(rows))
	}
	// Empty non-nil scope sees nothing.
	rows, _ = s.SearchAssets(ctx, &asset.Query{Scope: []id.UserID{}})
	if len(rows) != 0 {
		t.Fatalf("expected 0 rows for empty scope, got %d", len(rows))
	}
}

func TestSearchAssetsFilters(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedAssets(t, s)

	// Type facet folds case.
	rows, _ := s.SearchAssets(ctx, &asset.Query{Type: "laptop"})
	if len(rows) != 1 || rows[0].Name != "ThinkPad X1" {
		t.Fatalf("type facet: %v", rows)
	}

	// Status facet accepts the partial seat form for "Assigned".
	rows, _ = s.SearchAssets(ctx, &asset.Query{Status: "assigned"})
	if len(rows) != 2 {
		t.Fatalf("expected 2 assigned rows, got %d", len(rows))
	}

	// Text tiers: exact on tag, contains on name.
	rows, _ = s.SearchAssets(ctx, &asset.Query{Terms: []string{"sn-1001"}, Match: asset.MatchExact})
	if len(rows) != 1 || rows[0].Tag != "SN-1001" {
		t.Fatalf("exact tag match: %v", rows)
	}
	rows, _ = s.SearchAssets(ctx, &asset.Query{Terms: []string{"acro"}, Match: asset.MatchContains})
	if len(rows) != 1 || rows[0].Name != "Acrobat Pro" {
		t.Fatalf("contains match: %v", rows)
	}
	// Assignee fields are searchable.
	rows, _ = s.SearchAssets(ctx, &asset.Query{Terms: []string{"jane"}, Match: asset.MatchPrefix})
	if len(rows) != 1 || rows[0].Name != "ThinkPad X1" {
		t.Fatalf("assignee match: %v", rows)
	}

	// Count ignores limit/offset.
	n, _ := s.CountAssets(ctx, &asset.Query{Limit: 1})
	if n != 3 {
		t.Fatalf("expected count 3, got %d", n)
	}
	rows, _ = s.SearchAssets(ctx, &asset.Query{Limit: 2, Offset: 2})
	if len(rows) != 1 {
		t.Fatalf("expected windowed tail of 1, got %d", len(rows))
	}
}
