// Package memory provides an in-memory implementation of the Depot composite
// store. It is intended for testing and development.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/xraph/depot/asset"
	"github.com/xraph/depot/assignment"
	"github.com/xraph/depot/hardware"
	"github.com/xraph/depot/id"
	"github.com/xraph/depot/role"
	"github.com/xraph/depot/software"
	"github.com/xraph/depot/user"
)

// Compile-time interface checks.
var (
	_ hardware.Store   = (*Store)(nil)
	_ software.Store   = (*Store)(nil)
	_ user.Store       = (*Store)(nil)
	_ role.Store       = (*Store)(nil)
	_ assignment.Store = (*Store)(nil)
	_ asset.Source     = (*Store)(nil)
)

var errNotFound = fmt.Errorf("not found")

// Store is a thread-safe in-memory store for all Depot entities.
type Store struct {
	mu sync.RWMutex

	hardwareAssets map[string]*hardware.Hardware
	softwareAssets map[string]*software.Software
	users          map[string]*user.User
	roles          map[string]*role.Role
	assignments    map[string]*assignment.Assignment

	// now is the status-derivation clock, overridable in tests.
	now func() time.Time
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		hardwareAssets: make(map[string]*hardware.Hardware),
		softwareAssets: make(map[string]*software.Software),
		users:          make(map[string]*user.User),
		roles:          make(map[string]*role.Role),
		assignments:    make(map[string]*assignment.Assignment),
		now:            time.Now,
	}
}

// Migrate is a no-op for the memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping is a no-op for the memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }

// ──────────────────────────────────────────────────
// Hardware Store
// ──────────────────────────────────────────────────

func (s *Store) CreateHardware(_ context.Context, h *hardware.Hardware) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hardwareAssets[h.ID.String()] = copyHardware(h)
	return nil
}

func (s *Store) GetHardware(_ context.Context, hwID id.HardwareID) (*hardware.Hardware, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hardwareAssets[hwID.String()]
	if !ok {
		return nil, nil
	}
	return copyHardware(h), nil
}

func (s *Store) UpdateHardware(_ context.Context, h *hardware.Hardware) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hardwareAssets[h.ID.String()]; !ok {
		return fmt.Errorf("hardware %s: %w", h.ID, errNotFound)
	}
	s.hardwareAssets[h.ID.String()] = copyHardware(h)
	return nil
}

func (s *Store) ListHardware(_ context.Context, filter *hardware.ListFilter) ([]*hardware.Hardware, error) {
	if filter == nil {
		filter = &hardware.ListFilter{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*hardware.Hardware
	for _, h := range s.hardwareAssets {
		if hardwareMatches(h, filter) {
			out = append(out, copyHardware(h))
		}
	}
	sortByName(out, func(h *hardware.Hardware) (string, string) { return h.Name, h.ID.String() })
	return window(out, filter.Offset, filter.Limit), nil
}

func (s *Store) CountHardware(_ context.Context, filter *hardware.ListFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, h := range s.hardwareAssets {
		if hardwareMatches(h, filter) {
			n++
		}
	}
	return n, nil
}

func (s *Store) DeleteHardware(_ context.Context, hwID id.HardwareID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hardwareAssets[hwID.String()]; !ok {
		return fmt.Errorf("hardware %s: %w", hwID, errNotFound)
	}
	delete(s.hardwareAssets, hwID.String())
	return nil
}

func hardwareMatches(h *hardware.Hardware, filter *hardware.ListFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Type != "" && !strings.EqualFold(h.Type, filter.Type) {
		return false
	}
	if filter.Archived != nil && h.Archived != *filter.Archived {
		return false
	}
	return true
}

// ──────────────────────────────────────────────────
// Software Store
// ──────────────────────────────────────────────────

func (s *Store) CreateSoftware(_ context.Context, sw *software.Software) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.softwareAssets[sw.ID.String()] = copySoftware(sw)
	return nil
}

func (s *Store) GetSoftware(_ context.Context, swID id.SoftwareID) (*software.Software, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sw, ok := s.softwareAssets[swID.String()]
	if !ok {
		return nil, nil
	}
	return copySoftware(sw), nil
}

func (s *Store) UpdateSoftware(_ context.Context, sw *software.Software) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.softwareAssets[sw.ID.String()]; !ok {
		return fmt.Errorf("software %s: %w", sw.ID, errNotFound)
	}
	s.softwareAssets[sw.ID.String()] = copySoftware(sw)
	return nil
}

func (s *Store) ListSoftware(_ context.Context, filter *software.ListFilter) ([]*software.Software, error) {
	if filter == nil {
		filter = &software.ListFilter{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*software.Software
	for _, sw := range s.softwareAssets {
		if softwareMatches(sw, filter) {
			out = append(out, copySoftware(sw))
		}
	}
	sortByName(out, func(sw *software.Software) (string, string) { return sw.Name, sw.ID.String() })
	return window(out, filter.Offset, filter.Limit), nil
}

func (s *Store) CountSoftware(_ context.Context, filter *software.ListFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, sw := range s.softwareAssets {
		if softwareMatches(sw, filter) {
			n++
		}
	}
	return n, nil
}

func (s *Store) DeleteSoftware(_ context.Context, swID id.SoftwareID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.softwareAssets[swID.String()]; !ok {
		return fmt.Errorf("software %s: %w", swID, errNotFound)
	}
	delete(s.softwareAssets, swID.String())
	return nil
}

func softwareMatches(sw *software.Software, filter *software.ListFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Type != "" && !strings.EqualFold(sw.Type, filter.Type) {
		return false
	}
	if filter.Archived != nil && sw.Archived != *filter.Archived {
		return false
	}
	return true
}

// ──────────────────────────────────────────────────
// User Store
// ──────────────────────────────────────────────────

func (s *Store) CreateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID.String()] = copyUser(u)
	return nil
}

func (s *Store) GetUser(_ context.Context, userID id.UserID) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID.String()]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (s *Store) GetUserByObjectID(_ context.Context, objectID string) (*user.User, error) {
	return s.findUser(func(u *user.User) bool { return u.ObjectID == objectID })
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	return s.findUser(func(u *user.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*user.User, error) {
	return s.findUser(func(u *user.User) bool { return strings.EqualFold(u.Username, username) })
}

func (s *Store) GetUserByName(_ context.Context, name string) (*user.User, error) {
	return s.findUser(func(u *user.User) bool { return strings.EqualFold(u.Name, name) })
}

func (s *Store) GetUserByEmployeeNumber(_ context.Context, employeeNumber string) (*user.User, error) {
	return s.findUser(func(u *user.User) bool { return u.EmployeeNumber == employeeNumber })
}

func (s *Store) findUser(match func(*user.User) bool) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(u) {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *Store) ListUsers(_ context.Context, filter *user.ListFilter) ([]*user.User, error) {
	if filter == nil {
		filter = &user.ListFilter{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*user.User
	for _, u := range s.users {
		if userMatches(u, filter) {
			out = append(out, copyUser(u))
		}
	}
	sortByName(out, func(u *user.User) (string, string) { return u.Name, u.ID.String() })
	return window(out, filter.Offset, filter.Limit), nil
}

func (s *Store) ListReportIDs(_ context.Context, supervisorID id.UserID) ([]id.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []id.UserID{}
	for _, u := range s.users {
		if u.SupervisorID != nil && *u.SupervisorID == supervisorID {
			out = append(out, u.ID)
		}
	}
	sortIDs(out)
	return out, nil
}

func (s *Store) DeleteUser(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID.String()]; !ok {
		return fmt.Errorf("user %s: %w", userID, errNotFound)
	}
	delete(s.users, userID.String())
	return nil
}

func userMatches(u *user.User, filter *user.ListFilter) bool {
	if filter == nil {
		return true
	}
	if filter.SupervisorID != nil && (u.SupervisorID == nil || *u.SupervisorID != *filter.SupervisorID) {
		return false
	}
	if filter.RoleID != nil && (u.RoleID == nil || *u.RoleID != *filter.RoleID) {
		return false
	}
	if filter.Search != "" {
		q := strings.ToLower(filter.Search)
		hit := strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.EmployeeNumber), q)
		if !hit {
			return false
		}
	}
	return true
}

// ──────────────────────────────────────────────────
// Role Store
// ──────────────────────────────────────────────────

func (s *Store) CreateRole(_ context.Context, r *role.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[r.ID.String()] = copyRole(r)
	return nil
}

func (s *Store) GetRole(_ context.Context, roleID id.RoleID) (*role.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.roles[roleID.String()]
	if !ok {
		return nil, nil
	}
	return copyRole(r), nil
}

func (s *Store) GetRoleByName(_ context.Context, name string) (*role.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.roles {
		if r.Name == name {
			return copyRole(r), nil
		}
	}
	return nil, nil
}

func (s *Store) ListRoles(_ context.Context, filter *role.ListFilter) ([]*role.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*role.Role
	for _, r := range s.roles {
		if filter != nil && filter.Name != "" && r.Name != filter.Name {
			continue
		}
		out = append(out, copyRole(r))
	}
	sortByName(out, func(r *role.Role) (string, string) { return r.Name, r.ID.String() })
	if filter == nil {
		return out, nil
	}
	return window(out, filter.Offset, filter.Limit), nil
}

func (s *Store) DeleteRole(_ context.Context, roleID id.RoleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[roleID.String()]; !ok {
		return fmt.Errorf("role %s: %w", roleID, errNotFound)
	}
	delete(s.roles, roleID.String())
	return nil
}

// ──────────────────────────────────────────────────
// Assignment Store
// ──────────────────────────────────────────────────

func (s *Store) CreateAssignment(_ context.Context, a *assignment.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[a.ID.String()] = copyAssignment(a)
	return nil
}

func (s *Store) GetAssignment(_ context.Context, asgnID id.AssignmentID) (*assignment.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assignments[asgnID.String()]
	if !ok {
		return nil, nil
	}
	return copyAssignment(a), nil
}

func (s *Store) Unassign(_ context.Context, asgnID id.AssignmentID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[asgnID.String()]
	if !ok {
		return fmt.Errorf("assignment %s: %w", asgnID, errNotFound)
	}
	if a.UnassignedAt != nil {
		return fmt.Errorf("assignment %s: %w", asgnID, assignment.ErrAlreadyClosed)
	}
	end := at
	a.UnassignedAt = &end
	return nil
}

func (s *Store) ListAssignments(_ context.Context, filter *assignment.ListFilter) ([]*assignment.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*assignment.Assignment
	for _, a := range s.assignments {
		if assignmentMatches(a, filter) {
			out = append(out, copyAssignment(a))
		}
	}
	sortByName(out, func(a *assignment.Assignment) (string, string) {
		return a.AssignedAt.UTC().Format(time.RFC3339Nano), a.ID.String()
	})
	if filter == nil {
		return out, nil
	}
	return window(out, filter.Offset, filter.Limit), nil
}

func (s *Store) CountAssignments(_ context.Context, filter *assignment.ListFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, a := range s.assignments {
		if assignmentMatches(a, filter) {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListActiveSeatHolders(_ context.Context, softwareIDs []id.SoftwareID) ([]*assignment.SeatHolder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := make(map[string]bool, len(softwareIDs))
	for _, swID := range softwareIDs {
		want[swID.String()] = true
	}
	var out []*assignment.SeatHolder
	for _, a := range s.assignments {
		if !a.Active() || a.SoftwareID.IsNil() || !want[a.SoftwareID.String()] {
			continue
		}
		h := &assignment.SeatHolder{
			SoftwareID: a.SoftwareID,
			UserID:     a.UserID,
			AssignedAt: a.AssignedAt,
		}
		if u, ok := s.users[a.UserID.String()]; ok {
			h.Name = u.Name
			h.EmployeeNumber = u.EmployeeNumber
		}
		out = append(out, h)
	}
	sortByName(out, func(h *assignment.SeatHolder) (string, string) {
		return h.SoftwareID.String(), h.UserID.String()
	})
	return out, nil
}

func (s *Store) DeleteAssignment(_ context.Context, asgnID id.AssignmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assignments[asgnID.String()]; !ok {
		return fmt.Errorf("assignment %s: %w", asgnID, errNotFound)
	}
	delete(s.assignments, asgnID.String())
	return nil
}

func assignmentMatches(a *assignment.Assignment, filter *assignment.ListFilter) bool {
	if filter == nil {
		return true
	}
	if filter.HardwareID != nil && a.HardwareID != *filter.HardwareID {
		return false
	}
	if filter.SoftwareID != nil && a.SoftwareID != *filter.SoftwareID {
		return false
	}
	if filter.UserID != nil && a.UserID != *filter.UserID {
		return false
	}
	if filter.ActiveOnly && !a.Active() {
		return false
	}
	return true
}

// ──────────────────────────────────────────────────
// Copy helpers — the store never shares pointers with callers.
// ──────────────────────────────────────────────────

func copyHardware(h *hardware.Hardware) *hardware.Hardware {
	c := *h
	return &c
}

func copySoftware(sw *software.Software) *software.Software {
	c := *sw
	if sw.ExpiresAt != nil {
		t := *sw.ExpiresAt
		c.ExpiresAt = &t
	}
	return &c
}

func copyUser(u *user.User) *user.User {
	c := *u
	if u.SupervisorID != nil {
		v := *u.SupervisorID
		c.SupervisorID = &v
	}
	if u.RoleID != nil {
		v := *u.RoleID
		c.RoleID = &v
	}
	return &c
}

func copyRole(r *role.Role) *role.Role {
	c := *r
	return &c
}

func copyAssignment(a *assignment.Assignment) *assignment.Assignment {
	c := *a
	if a.UnassignedAt != nil {
		t := *a.UnassignedAt
		c.UnassignedAt = &t
	}
	return &c
}
