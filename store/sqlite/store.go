// Package sqlite provides a SQLite implementation of the Depot composite
// store using grove ORM with Go-based migrations. Entity CRUD runs through
// the query builder; the asset projection is assembled Go-side from the
// faceted entity sets.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/depot/assignment"
	"github.com/xraph/depot/hardware"
	"github.com/xraph/depot/id"
	"github.com/xraph/depot/role"
	"github.com/xraph/depot/software"
	"github.com/xraph/depot/store"
	"github.com/xraph/depot/user"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// errNotFound is the sentinel for missing entities.
var errNotFound = fmt.Errorf("not found")

// Store is a SQLite implementation of the composite Depot store.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// Migrate runs programmatic migrations via the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("depot/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("depot/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ──────────────────────────────────────────────────
// Hardware operations
// ──────────────────────────────────────────────────

func (s *Store) CreateHardware(ctx context.Context, h *hardware.Hardware) error {
	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now
	if _, err := s.sdb.NewInsert(hardwareToModel(h)).Exec(ctx); err != nil {
		return fmt.Errorf("depot: create hardware: %w", err)
	}
	return nil
}

func (s *Store) GetHardware(ctx context.Context, hwID id.HardwareID) (*hardware.Hardware, error) {
	m := new(hardwareModel)
	err := s.sdb.NewSelect(m).Where("id = ?", hwID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("depot: get hardware: %w", err)
	}
	return hardwareFromModel(m)
}

func (s *Store) UpdateHardware(ctx context.Context, h *hardware.Hardware) error {
	h.UpdatedAt = time.Now().UTC()
	res, err := s.sdb.NewUpdate(hardwareToModel(h)).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("depot: update hardware: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("hardware %s: %w", h.ID, errNotFound)
	}
	return nil
}

func (s *Store) ListHardware(ctx context.Context, filter *hardware.ListFilter) ([]*hardware.Hardware, error) {
	var models []hardwareModel
	q := s.sdb.NewSelect(&models).OrderExpr("name COLLATE NOCASE ASC, id ASC")
	if filter != nil {
		if filter.Type != "" {
			q = q.Where("lower(type) = ?", strings.ToLower(filter.Type))
		}
		if filter.Archived != nil {
			q = q.Where("archived = ?", *filter.Archived)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("depot: list hardware: %w", err)
	}
	out := make([]*hardware.Hardware, 0, len(models))
	for i := range models {
		h, err := hardwareFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("depot: list hardware: %w", err)
		}
		out = append(out, h)
	}
	return out, nil
}

func (s *Store) CountHardware(ctx context.Context, filter *hardware.ListFilter) (int64, error) {
	var models []hardwareModel
	q := s.sdb.NewSelect(&models)
	if filter != nil {
		if filter.Type != "" {
			q = q.Where("lower(type) = ?", strings.ToLower(filter.Type))
		}
		if filter.Archived != nil {
			q = q.Where("archived = ?", *filter.Archived)
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("depot: count hardware: %w", err)
	}
	return int64(count), nil
}

func (s *Store) DeleteHardware(ctx context.Context, hwID id.HardwareID) error {
	res, err := s.sdb.NewDelete((*hardwareModel)(nil)).
		Where("id = ?", hwID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("depot: delete hardware: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("hardware %s: %w", hwID, errNotFound)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Software operations
// ──────────────────────────────────────────────────

func (s *Store) CreateSoftware(ctx context.Context, sw *software.Software) error {
	now := time.Now().UTC()
	sw.CreatedAt = now
	sw.UpdatedAt = now
	if _, err := s.sdb.NewInsert(softwareToModel(sw)).Exec(ctx); err != nil {
		return fmt.Errorf("depot: create software: %w", err)
	}
	return nil
}

func (s *Store) GetSoftware(ctx context.Context, swID id.SoftwareID) (*software.Software, error) {
	m := new(softwareModel)
	err := s.sdb.NewSelect(m).Where("id = ?", swID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("depot: get software: %w", err)
	}
	return softwareFromModel(m)
}

func (s *Store) UpdateSoftware(ctx context.Context, sw *software.Software) error {
	sw.UpdatedAt = time.Now().UTC()
	res, err := s.sdb.NewUpdate(softwareToModel(sw)).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("depot: update software: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("software %s: %w", sw.ID, errNotFound)
	}
	return nil
}

func (s *Store) ListSoftware(ctx context.Context, filter *software.ListFilter) ([]*software.Software, error) {
	var models []softwareModel
	q := s.sdb.NewSelect(&models).OrderExpr("name COLLATE NOCASE ASC, id ASC")
	if filter != nil {
		if filter.Type != "" {
			q = q.Where("lower(type) = ?", strings.ToLower(filter.Type))
		}
		if filter.Archived != nil {
			q = q.Where("archived = ?", *filter.Archived)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("depot: list software: %w", err)
	}
	out := make([]*software.Software, 0, len(models))
	for i := range models {
		sw, err := softwareFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("depot: list software: %w", err)
		}
		out = append(out, sw)
	}
	return out, nil
}

func (s *Store) CountSoftware(ctx context.Context, filter *software.ListFilter) (int64, error) {
	var models []softwareModel
	q := s.sdb.NewSelect(&models)
	if filter != nil {
		if filter.Type != "" {
			q = q.Where("lower(type) = ?", strings.ToLower(filter.Type))
		}
		if filter.Archived != nil {
			q = q.Where("archived = ?", *filter.Archived)
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("depot: count software: %w", err)
	}
	return int64(count), nil
}

func (s *Store) DeleteSoftware(ctx context.Context, swID id.SoftwareID) error {
	res, err := s.sdb.NewDelete((*softwareModel)(nil)).
		Where("id = ?", swID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("depot: delete software: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("software %s: %w", swID, errNotFound)
	}
	return nil
}

// ──────────────────────────────────────────────────
// User operations
// ──────────────────────────────────────────────────

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.sdb.NewInsert(userToModel(u)).Exec(ctx); err != nil {
		return fmt.Errorf("depot: create user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, userID id.UserID) (*user.User, error) {
	return s.getUserWhere(ctx, "id = ?", userID.String())
}

func (s *Store) GetUserByObjectID(ctx context.Context, objectID string) (*user.User, error) {
	if objectID == "" {
		return nil, nil
	}
	return s.getUserWhere(ctx, "object_id = ?", objectID)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	if email == "" {
		return nil, nil
	}
	return s.getUserWhere(ctx, "lower(email) = ?", strings.ToLower(email))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	if username == "" {
		return nil, nil
	}
	return s.getUserWhere(ctx, "lower(username) = ?", strings.ToLower(username))
}

func (s *Store) GetUserByName(ctx context.Context, name string) (*user.User, error) {
	if name == "" {
		return nil, nil
	}
	return s.getUserWhere(ctx, "lower(name) = ?", strings.ToLower(name))
}

func (s *Store) GetUserByEmployeeNumber(ctx context.Context, employeeNumber string) (*user.User, error) {
	if employeeNumber == "" {
		return nil, nil
	}
	return s.getUserWhere(ctx, "employee_number = ?", employeeNumber)
}

func (s *Store) getUserWhere(ctx context.Context, cond string, arg any) (*user.User, error) {
	m := new(userModel)
	err := s.sdb.NewSelect(m).Where(cond, arg).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("depot: get user: %w", err)
	}
	return userFromModel(m)
}

func (s *Store) ListUsers(ctx context.Context, filter *user.ListFilter) ([]*user.User, error) {
	var models []userModel
	q := s.sdb.NewSelect(&models).OrderExpr("name COLLATE NOCASE ASC, id ASC")
	searching := filter != nil && filter.Search != ""
	if filter != nil {
		if filter.SupervisorID != nil {
			q = q.Where("supervisor_id = ?", filter.SupervisorID.String())
		}
		if filter.RoleID != nil {
			q = q.Where("role_id = ?", filter.RoleID.String())
		}
		// The free-text filter is applied Go-side, so the window must
		// wait for it.
		if !searching {
			if filter.Limit > 0 {
				q = q.Limit(filter.Limit)
			}
			if filter.Offset > 0 {
				q = q.Offset(filter.Offset)
			}
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("depot: list users: %w", err)
	}
	out := make([]*user.User, 0, len(models))
	for i := range models {
		u, err := userFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("depot: list users: %w", err)
		}
		if searching && !userSearchHit(u, filter.Search) {
			continue
		}
		out = append(out, u)
	}
	if searching {
		out = windowUsers(out, filter.Offset, filter.Limit)
	}
	return out, nil
}

// windowUsers applies offset/limit to an already-sorted slice. Limit
// zero means unbounded.
func windowUsers(users []*user.User, offset, limit int) []*user.User {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(users) {
		return []*user.User{}
	}
	users = users[offset:]
	if limit > 0 && limit < len(users) {
		users = users[:limit]
	}
	return users
}

// userSearchHit applies the free-text user filter Go-side.
func userSearchHit(u *user.User, search string) bool {
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Email), q) ||
		strings.Contains(strings.ToLower(u.Username), q) ||
		strings.Contains(strings.ToLower(u.EmployeeNumber), q)
}

func (s *Store) ListReportIDs(ctx context.Context, supervisorID id.UserID) ([]id.UserID, error) {
	var models []userModel
	err := s.sdb.NewSelect(&models).
		Where("supervisor_id = ?", supervisorID.String()).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("depot: list reports: %w", err)
	}
	out := []id.UserID{}
	for i := range models {
		uid, err := id.ParseUserID(models[i].ID)
		if err != nil {
			return nil, fmt.Errorf("depot: list reports: %w", err)
		}
		out = append(out, uid)
	}
	return out, nil
}

func (s *Store) DeleteUser(ctx context.Context, userID id.UserID) error {
	res, err := s.sdb.NewDelete((*userModel)(nil)).
		Where("id = ?", userID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("depot: delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user %s: %w", userID, errNotFound)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Role operations
// ──────────────────────────────────────────────────

func (s *Store) CreateRole(ctx context.Context, r *role.Role) error {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if _, err := s.sdb.NewInsert(roleToModel(r)).Exec(ctx); err != nil {
		return fmt.Errorf("depot: create role: %w", err)
	}
	return nil
}

func (s *Store) GetRole(ctx context.Context, roleID id.RoleID) (*role.Role, error) {
	m := new(roleModel)
	err := s.sdb.NewSelect(m).Where("id = ?", roleID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("depot: get role: %w", err)
	}
	return roleFromModel(m)
}

func (s *Store) GetRoleByName(ctx context.Context, name string) (*role.Role, error) {
	m := new(roleModel)
	err := s.sdb.NewSelect(m).Where("name = ?", name).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("depot: get role by name: %w", err)
	}
	return roleFromModel(m)
}

func (s *Store) ListRoles(ctx context.Context, filter *role.ListFilter) ([]*role.Role, error) {
	var models []roleModel
	q := s.sdb.NewSelect(&models).OrderExpr("name COLLATE NOCASE ASC, id ASC")
	if filter != nil {
		if filter.Name != "" {
			q = q.Where("name = ?", filter.Name)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("depot: list roles: %w", err)
	}
	out := make([]*role.Role, 0, len(models))
	for i := range models {
		r, err := roleFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("depot: list roles: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) DeleteRole(ctx context.Context, roleID id.RoleID) error {
	res, err := s.sdb.NewDelete((*roleModel)(nil)).
		Where("id = ?", roleID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("depot: delete role: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("role %s: %w", roleID, errNotFound)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Assignment operations
// ──────────────────────────────────────────────────

func (s *Store) CreateAssignment(ctx context.Context, a *assignment.Assignment) error {
	if _, err := s.sdb.NewInsert(assignmentToModel(a)).Exec(ctx); err != nil {
		return fmt.Errorf("depot: create assignment: %w", err)
	}
	return nil
}

func (s *Store) GetAssignment(ctx context.Context, asgnID id.AssignmentID) (*assignment.Assignment, error) {
	m := new(assignmentModel)
	err := s.sdb.NewSelect(m).Where("id = ?", asgnID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("depot: get assignment: %w", err)
	}
	return assignmentFromModel(m)
}

func (s *Store) Unassign(ctx context.Context, asgnID id.AssignmentID, at time.Time) error {
	m := new(assignmentModel)
	err := s.sdb.NewSelect(m).Where("id = ?", asgnID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return fmt.Errorf("assignment %s: %w", asgnID, errNotFound)
		}
		return fmt.Errorf("depot: unassign: %w", err)
	}
	if m.UnassignedAt != nil {
		return fmt.Errorf("assignment %s: %w", asgnID, assignment.ErrAlreadyClosed)
	}
	end := at
	m.UnassignedAt = &end
	if _, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("depot: unassign: %w", err)
	}
	return nil
}

func (s *Store) ListAssignments(ctx context.Context, filter *assignment.ListFilter) ([]*assignment.Assignment, error) {
	var models []assignmentModel
	q := s.sdb.NewSelect(&models).OrderExpr("assigned_at ASC, id ASC")
	if filter != nil {
		if filter.HardwareID != nil {
			q = q.Where("hardware_id = ?", filter.HardwareID.String())
		}
		if filter.SoftwareID != nil {
			q = q.Where("software_id = ?", filter.SoftwareID.String())
		}
		if filter.UserID != nil {
			q = q.Where("user_id = ?", filter.UserID.String())
		}
		if filter.ActiveOnly {
			q = q.Where("unassigned_at IS NULL")
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("depot: list assignments: %w", err)
	}
	out := make([]*assignment.Assignment, 0, len(models))
	for i := range models {
		a, err := assignmentFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("depot: list assignments: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) CountAssignments(ctx context.Context, filter *assignment.ListFilter) (int64, error) {
	var models []assignmentModel
	q := s.sdb.NewSelect(&models)
	if filter != nil {
		if filter.HardwareID != nil {
			q = q.Where("hardware_id = ?", filter.HardwareID.String())
		}
		if filter.SoftwareID != nil {
			q = q.Where("software_id = ?", filter.SoftwareID.String())
		}
		if filter.UserID != nil {
			q = q.Where("user_id = ?", filter.UserID.String())
		}
		if filter.ActiveOnly {
			q = q.Where("unassigned_at IS NULL")
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("depot: count assignments: %w", err)
	}
	return int64(count), nil
}

func (s *Store) ListActiveSeatHolders(ctx context.Context, softwareIDs []id.SoftwareID) ([]*assignment.SeatHolder, error) {
	if len(softwareIDs) == 0 {
		return nil, nil
	}
	want := make(map[string]bool, len(softwareIDs))
	for _, swID := range softwareIDs {
		want[swID.String()] = true
	}

	var models []assignmentModel
	err := s.sdb.NewSelect(&models).
		Where("software_id IS NOT NULL").
		Where("unassigned_at IS NULL").
		OrderExpr("software_id ASC, user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("depot: list seat holders: %w", err)
	}

	var out []*assignment.SeatHolder
	for i := range models {
		m := &models[i]
		if m.SoftwareID == nil || !want[*m.SoftwareID] {
			continue
		}
		swID, err := id.ParseSoftwareID(*m.SoftwareID)
		if err != nil {
			return nil, fmt.Errorf("depot: list seat holders: %w", err)
		}
		uid, err := id.ParseUserID(m.UserID)
		if err != nil {
			return nil, fmt.Errorf("depot: list seat holders: %w", err)
		}
		h := &assignment.SeatHolder{
			SoftwareID: swID,
			UserID:     uid,
			AssignedAt: m.AssignedAt,
		}
		if u, err := s.GetUser(ctx, uid); err == nil && u != nil {
			h.Name = u.Name
			h.EmployeeNumber = u.EmployeeNumber
		}
		out = append(out, h)
	}
	return out, nil
}

func (s *Store) DeleteAssignment(ctx context.Context, asgnID id.AssignmentID) error {
	res, err := s.sdb.NewDelete((*assignmentModel)(nil)).
		Where("id = ?", asgnID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("depot: delete assignment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("assignment %s: %w", asgnID, errNotFound)
	}
	return nil
}
