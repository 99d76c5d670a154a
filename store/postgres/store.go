// Package postgres provides a PostgreSQL implementation of the Depot
// composite store on pgx. The asset projection runs fully in SQL; entity
// CRUD is plain parameterized statements.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xraph/depot/asset"
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

// Store is a PostgreSQL implementation of the composite Depot store.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a store over an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect opens a pool for the DSN and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("depot: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("depot: ping postgres: %w", err)
	}
	return New(pool), nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// nullID converts an ID to its TEXT column value, NULL when unset.
func nullID(v id.ID) any {
	if v.IsNil() {
		return nil
	}
	return v.String()
}

func nullIDPtr(v *id.ID) any {
	if v == nil {
		return nil
	}
	return v.String()
}

func parseIDPtr(raw *string, parse func(string) (id.ID, error)) (*id.ID, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := parse(*raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ──────────────────────────────────────────────────
// Hardware operations
// ──────────────────────────────────────────────────

func (s *Store) CreateHardware(ctx context.Context, h *hardware.Hardware) error {
	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now
	_, err := s.pool.Exec(ctx, `
INSERT INTO depot_hardware (id, name, type, serial_number, status, archived, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, h.ID.String(), h.Name, h.Type, h.SerialNumber, h.Status, h.Archived, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("depot: create hardware: %w", err)
	}
	return nil
}

func (s *Store) GetHardware(ctx context.Context, hwID id.HardwareID) (*hardware.Hardware, error) {
	row := s.pool.QueryRow(ctx, `
SELECT id, name, type, serial_number, status, archived, created_at, updated_at
FROM depot_hardware WHERE id = $1
`, hwID.String())
	h, err := scanHardware(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("depot: get hardware: %w", err)
	}
	return h, nil
}

func (s *Store) UpdateHardware(ctx context.Context, h *hardware.Hardware) error {
	h.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
UPDATE depot_hardware
SET name = $2, type = $3, serial_number = $4, status = $5, archived = $6, updated_at = $7
WHERE id = $1
`, h.ID.String(), h.Name, h.Type, h.SerialNumber, h.Status, h.Archived, h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("depot: update hardware: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("hardware %s: %w", h.ID, errNotFound)
	}
	return nil
}

func (s *Store) ListHardware(ctx context.Context, filter *hardware.ListFilter) ([]*hardware.Hardware, error) {
	if filter == nil {
		filter = &hardware.ListFilter{}
	}
	q := newQueryBuilder(`
SELECT id, name, type, serial_number, status, archived, created_at, updated_at
FROM depot_hardware
`)
	if filter.Type != "" {
		q.where("lower(type) = lower(%s)", filter.Type)
	}
	if filter.Archived != nil {
		q.where("archived = %s", *filter.Archived)
	}
	q.orderBy("lower(name), id")
	q.window(filter.Offset, filter.Limit)

	rows, err := s.pool.Query(ctx, q.sql(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("depot: list hardware: %w", err)
	}
	defer rows.Close()

	var out []*hardware.Hardware
	for rows.Next() {
		h, err := scanHardware(rows)
		if err != nil {
			return nil, fmt.Errorf("depot: list hardware: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) CountHardware(ctx context.Context, filter *hardware.ListFilter) (int64, error) {
	if filter == nil {
		filter = &hardware.ListFilter{}
	}
	q := newQueryBuilder(`SELECT count(*) FROM depot_hardware`)
	if filter.Type != "" {
		q.where("lower(type) = lower(%s)", filter.Type)
	}
	if filter.Archived != nil {
		q.where("archived = %s", *filter.Archived)
	}
	var n int64
	if err := s.pool.QueryRow(ctx, q.sql(), q.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("depot: count hardware: %w", err)
	}
	return n, nil
}

func (s *Store) DeleteHardware(ctx context.Context, hwID id.HardwareID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM depot_hardware WHERE id = $1`, hwID.String())
	if err != nil {
		return fmt.Errorf("depot: delete hardware: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("hardware %s: %w", hwID, errNotFound)
	}
	return nil
}

func scanHardware(row pgx.Row) (*hardware.Hardware, error) {
	var h hardware.Hardware
	var rawID string
	if err := row.Scan(&rawID, &h.Name, &h.Type, &h.SerialNumber, &h.Status, &h.Archived, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	hwID, err := id.ParseHardwareID(rawID)
	if err != nil {
		return nil, err
	}
	h.ID = hwID
	return &h, nil
}

// ──────────────────────────────────────────────────
// Software operations
// ──────────────────────────────────────────────────

func (s *Store) CreateSoftware(ctx context.Context, sw *software.Software) error {
	now := time.Now().UTC()
	sw.CreatedAt = now
	sw.UpdatedAt = now
	_, err := s.pool.Exec(ctx, `
INSERT INTO depot_software (id, name, type, license_key, seats, archived, expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, sw.ID.String(), sw.Name, sw.Type, sw.LicenseKey, sw.Seats, sw.Archived, sw.ExpiresAt, sw.CreatedAt, sw.UpdatedAt)
	if err != nil {
		return fmt.Errorf("depot: create software: %w", err)
	}
	return nil
}

func (s *Store) GetSoftware(ctx context.Context, swID id.SoftwareID) (*software.Software, error) {
	row := s.pool.QueryRow(ctx, `
SELECT id, name, type, license_key, seats, archived, expires_at, created_at, updated_at
FROM depot_software WHERE id = $1
`, swID.String())
	sw, err := scanSoftware(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("depot: get software: %w", err)
	}
	return sw, nil
}

func (s *Store) UpdateSoftware(ctx context.Context, sw *software.Software) error {
	sw.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
UPDATE depot_software
SET name = $2, type = $3, license_key = $4, seats = $5, archived = $6, expires_at = $7, updated_at = $8
WHERE id = $1
`, sw.ID.String(), sw.Name, sw.Type, sw.LicenseKey, sw.Seats, sw.Archived, sw.ExpiresAt, sw.UpdatedAt)
	if err != nil {
		return fmt.Errorf("depot: update software: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("software %s: %w", sw.ID, errNotFound)
	}
	return nil
}

func (s *Store) ListSoftware(ctx context.Context, filter *software.ListFilter) ([]*software.Software, error) {
	if filter == nil {
		filter = &software.ListFilter{}
	}
	q := newQueryBuilder(`
SELECT id, name, type, license_key, seats, archived, expires_at, created_at, updated_at
FROM depot_software
`)
	if filter.Type != "" {
		q.where("lower(type) = lower(%s)", filter.Type)
	}
	if filter.Archived != nil {
		q.where("archived = %s", *filter.Archived)
	}
	q.orderBy("lower(name), id")
	q.window(filter.Offset, filter.Limit)

	rows, err := s.pool.Query(ctx, q.sql(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("depot: list software: %w", err)
	}
	defer rows.Close()

	var out []*software.Software
	for rows.Next() {
		sw, err := scanSoftware(rows)
		if err != nil {
			return nil, fmt.Errorf("depot: list software: %w", err)
		}
		out = append(out, sw)
	}
	return out, rows.Err()
}

func (s *Store) CountSoftware(ctx context.Context, filter *software.ListFilter) (int64, error) {
	if filter == nil {
		filter = &software.ListFilter{}
	}
	q := newQueryBuilder(`SELECT count(*) FROM depot_software`)
	if filter.Type != "" {
		q.where("lower(type) = lower(%s)", filter.Type)
	}
	if filter.Archived != nil {
		q.where("archived = %s", *filter.Archived)
	}
	var n int64
	if err := s.pool.QueryRow(ctx, q.sql(), q.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("depot: count software: %w", err)
	}
	return n, nil
}

func (s *Store) DeleteSoftware(ctx context.Context, swID id.SoftwareID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM depot_software WHERE id = $1`, swID.String())
	if err != nil {
		return fmt.Errorf("depot: delete software: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("software %s: %w", swID, errNotFound)
	}
	return nil
}

func scanSoftware(row pgx.Row) (*software.Software, error) {
	var sw software.Software
	var rawID string
	if err := row.Scan(&rawID, &sw.Name, &sw.Type, &sw.LicenseKey, &sw.Seats, &sw.Archived, &sw.ExpiresAt, &sw.CreatedAt, &sw.UpdatedAt); err != nil {
		return nil, err
	}
	swID, err := id.ParseSoftwareID(rawID)
	if err != nil {
		return nil, err
	}
	sw.ID = swID
	return &sw, nil
}

// ──────────────────────────────────────────────────
// User operations
// ──────────────────────────────────────────────────

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.pool.Exec(ctx, `
INSERT INTO depot_users (id, object_id, username, email, name, employee_number, supervisor_id, role_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`, u.ID.String(), u.ObjectID, u.Username, u.Email, u.Name, u.EmployeeNumber,
		nullIDPtr(u.SupervisorID), nullIDPtr(u.RoleID), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("depot: create user: %w", err)
	}
	return nil
}

const userCols = `id, object_id, username, email, name, employee_number, supervisor_id, role_id, created_at, updated_at`

func (s *Store) GetUser(ctx context.Context, userID id.UserID) (*user.User, error) {
	return s.getUserWhere(ctx, `id = $1`, userID.String())
}

func (s *Store) GetUserByObjectID(ctx context.Context, objectID string) (*user.User, error) {
	return s.getUserWhere(ctx, `object_id = $1 AND object_id <> ''`, objectID)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.getUserWhere(ctx, `lower(email) = lower($1) AND email <> ''`, email)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	return s.getUserWhere(ctx, `lower(username) = lower($1) AND username <> ''`, username)
}

func (s *Store) GetUserByName(ctx context.Context, name string) (*user.User, error) {
	return s.getUserWhere(ctx, `lower(name) = lower($1) AND name <> ''`, name)
}

func (s *Store) GetUserByEmployeeNumber(ctx context.Context, employeeNumber string) (*user.User, error) {
	return s.getUserWhere(ctx, `employee_number = $1 AND employee_number <> ''`, employeeNumber)
}

func (s *Store) getUserWhere(ctx context.Context, cond string, arg any) (*user.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userCols+` FROM depot_users WHERE `+cond, arg)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("depot: get user: %w", err)
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context, filter *user.ListFilter) ([]*user.User, error) {
	if filter == nil {
		filter = &user.ListFilter{}
	}
	q := newQueryBuilder(`SELECT ` + userCols + ` FROM depot_users`)
	if filter.SupervisorID != nil {
		q.where("supervisor_id = %s", filter.SupervisorID.String())
	}
	if filter.RoleID != nil {
		q.where("role_id = %s", filter.RoleID.String())
	}
	if filter.Search != "" {
		p := "%" + asset.EscapeLike(filter.Search) + "%"
		q.whereArgs(`(name ILIKE %s ESCAPE '\' OR email ILIKE %s ESCAPE '\' OR username ILIKE %s ESCAPE '\' OR employee_number ILIKE %s ESCAPE '\')`,
			p, p, p, p)
	}
	q.orderBy("lower(name), id")
	q.window(filter.Offset, filter.Limit)

	rows, err := s.pool.Query(ctx, q.sql(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("depot: list users: %w", err)
	}
	defer rows.Close()

	var out []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("depot: list users: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) ListReportIDs(ctx context.Context, supervisorID id.UserID) ([]id.UserID, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id FROM depot_users WHERE supervisor_id = $1 ORDER BY id
`, supervisorID.String())
	if err != nil {
		return nil, fmt.Errorf("depot: list reports: %w", err)
	}
	defer rows.Close()

	out := []id.UserID{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("depot: list reports: %w", err)
		}
		uid, err := id.ParseUserID(raw)
		if err != nil {
			return nil, fmt.Errorf("depot: list reports: %w", err)
		}
		out = append(out, uid)
	}
	return out, rows.Err()
}

func (s *Store) DeleteUser(ctx context.Context, userID id.UserID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM depot_users WHERE id = $1`, userID.String())
	if err != nil {
		return fmt.Errorf("depot: delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, errNotFound)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	var rawID string
	var rawSupervisor, rawRole *string
	if err := row.Scan(&rawID, &u.ObjectID, &u.Username, &u.Email, &u.Name, &u.EmployeeNumber,
		&rawSupervisor, &rawRole, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	uid, err := id.ParseUserID(rawID)
	if err != nil {
		return nil, err
	}
	u.ID = uid
	if u.SupervisorID, err = parseIDPtr(rawSupervisor, id.ParseUserID); err != nil {
		return nil, err
	}
	if u.RoleID, err = parseIDPtr(rawRole, id.ParseRoleID); err != nil {
		return nil, err
	}
	return &u, nil
}

// ──────────────────────────────────────────────────
// Role operations
// ──────────────────────────────────────────────────

func (s *Store) CreateRole(ctx context.Context, r *role.Role) error {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	_, err := s.pool.Exec(ctx, `
INSERT INTO depot_roles (id, name, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
`, r.ID.String(), r.Name, r.Description, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("depot: create role: %w", err)
	}
	return nil
}

func (s *Store) GetRole(ctx context.Context, roleID id.RoleID) (*role.Role, error) {
	row := s.pool.QueryRow(ctx, `
SELECT id, name, description, created_at, updated_at FROM depot_roles WHERE id = $1
`, roleID.String())
	r, err := scanRole(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("depot: get role: %w", err)
	}
	return r, nil
}

func (s *Store) GetRoleByName(ctx context.Context, name string) (*role.Role, error) {
	row := s.pool.QueryRow(ctx, `
SELECT id, name, description, created_at, updated_at FROM depot_roles WHERE name = $1
`, name)
	r, err := scanRole(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("depot: get role by name: %w", err)
	}
	return r, nil
}

func (s *Store) ListRoles(ctx context.Context, filter *role.ListFilter) ([]*role.Role, error) {
	if filter == nil {
		filter = &role.ListFilter{}
	}
	q := newQueryBuilder(`SELECT id, name, description, created_at, updated_at FROM depot_roles`)
	if filter.Name != "" {
		q.where("name = %s", filter.Name)
	}
	q.orderBy("lower(name), id")
	q.window(filter.Offset, filter.Limit)

	rows, err := s.pool.Query(ctx, q.sql(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("depot: list roles: %w", err)
	}
	defer rows.Close()

	var out []*role.Role
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("depot: list roles: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) DeleteRole(ctx context.Context, roleID id.RoleID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM depot_roles WHERE id = $1`, roleID.String())
	if err != nil {
		return fmt.Errorf("depot: delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("role %s: %w", roleID, errNotFound)
	}
	return nil
}

func scanRole(row pgx.Row) (*role.Role, error) {
	var r role.Role
	var rawID string
	if err := row.Scan(&rawID, &r.Name, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	roleID, err := id.ParseRoleID(rawID)
	if err != nil {
		return nil, err
	}
	r.ID = roleID
	return &r, nil
}

// ──────────────────────────────────────────────────
// Assignment operations
// ──────────────────────────────────────────────────

func (s *Store) CreateAssignment(ctx context.Context, a *assignment.Assignment) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO depot_assignments (id, hardware_id, software_id, user_id, assigned_at, unassigned_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, a.ID.String(), nullID(a.HardwareID), nullID(a.SoftwareID), a.UserID.String(), a.AssignedAt, a.UnassignedAt)
	if err != nil {
		return fmt.Errorf("depot: create assignment: %w", err)
	}
	return nil
}

func (s *Store) GetAssignment(ctx context.Context, asgnID id.AssignmentID) (*assignment.Assignment, error) {
	row := s.pool.QueryRow(ctx, `
SELECT id, hardware_id, software_id, user_id, assigned_at, unassigned_at
FROM depot_assignments WHERE id = $1
`, asgnID.String())
	a, err := scanAssignment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("depot: get assignment: %w", err)
	}
	return a, nil
}

func (s *Store) Unassign(ctx context.Context, asgnID id.AssignmentID, at time.Time) error {
	tag, err := s.pool.Exec(ctx, `
UPDATE depot_assignments SET unassigned_at = $2 WHERE id = $1 AND unassigned_at IS NULL
`, asgnID.String(), at)
	if err != nil {
		return fmt.Errorf("depot: unassign: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Missing row or already closed?
	var exists bool
	if err := s.pool.QueryRow(ctx, `
SELECT EXISTS(SELECT 1 FROM depot_assignments WHERE id = $1)
`, asgnID.String()).Scan(&exists); err != nil {
		return fmt.Errorf("depot: unassign: %w", err)
	}
	if exists {
		return fmt.Errorf("assignment %s: %w", asgnID, assignment.ErrAlreadyClosed)
	}
	return fmt.Errorf("assignment %s: %w", asgnID, errNotFound)
}

func (s *Store) ListAssignments(ctx context.Context, filter *assignment.ListFilter) ([]*assignment.Assignment, error) {
	if filter == nil {
		filter = &assignment.ListFilter{}
	}
	q := newQueryBuilder(`
SELECT id, hardware_id, software_id, user_id, assigned_at, unassigned_at
FROM depot_assignments
`)
	applyAssignmentFilter(q, filter)
	q.orderBy("assigned_at, id")
	q.window(filter.Offset, filter.Limit)

	rows, err := s.pool.Query(ctx, q.sql(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("depot: list assignments: %w", err)
	}
	defer rows.Close()

	var out []*assignment.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("depot: list assignments: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) CountAssignments(ctx context.Context, filter *assignment.ListFilter) (int64, error) {
	if filter == nil {
		filter = &assignment.ListFilter{}
	}
	q := newQueryBuilder(`SELECT count(*) FROM depot_assignments`)
	applyAssignmentFilter(q, filter)
	var n int64
	if err := s.pool.QueryRow(ctx, q.sql(), q.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("depot: count assignments: %w", err)
	}
	return n, nil
}

func applyAssignmentFilter(q *queryBuilder, filter *assignment.ListFilter) {
	if filter.HardwareID != nil {
		q.where("hardware_id = %s", filter.HardwareID.String())
	}
	if filter.SoftwareID != nil {
		q.where("software_id = %s", filter.SoftwareID.String())
	}
	if filter.UserID != nil {
		q.where("user_id = %s", filter.UserID.String())
	}
	if filter.ActiveOnly {
		q.whereRaw("unassigned_at IS NULL")
	}
}

func (s *Store) ListActiveSeatHolders(ctx context.Context, softwareIDs []id.SoftwareID) ([]*assignment.SeatHolder, error) {
	if len(softwareIDs) == 0 {
		return nil, nil
	}
	raw := make([]string, len(softwareIDs))
	for i, swID := range softwareIDs {
		raw[i] = swID.String()
	}

	rows, err := s.pool.Query(ctx, `
SELECT a.software_id, a.user_id, COALESCE(u.name, ''), COALESCE(u.employee_number, ''), a.assigned_at
FROM depot_assignments a
LEFT JOIN depot_users u ON u.id = a.user_id
WHERE a.software_id = ANY($1) AND a.unassigned_at IS NULL
ORDER BY a.software_id, a.user_id
`, raw)
	if err != nil {
		return nil, fmt.Errorf("depot: list seat holders: %w", err)
	}
	defer rows.Close()

	var out []*assignment.SeatHolder
	for rows.Next() {
		var h assignment.SeatHolder
		var rawSW, rawUser string
		if err := rows.Scan(&rawSW, &rawUser, &h.Name, &h.EmployeeNumber, &h.AssignedAt); err != nil {
			return nil, fmt.Errorf("depot: list seat holders: %w", err)
		}
		if h.SoftwareID, err = id.ParseSoftwareID(rawSW); err != nil {
			return nil, fmt.Errorf("depot: list seat holders: %w", err)
		}
		if h.UserID, err = id.ParseUserID(rawUser); err != nil {
			return nil, fmt.Errorf("depot: list seat holders: %w", err)
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}

func (s *Store) DeleteAssignment(ctx context.Context, asgnID id.AssignmentID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM depot_assignments WHERE id = $1`, asgnID.String())
	if err != nil {
		return fmt.Errorf("depot: delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s: %w", asgnID, errNotFound)
	}
	return nil
}

func scanAssignment(row pgx.Row) (*assignment.Assignment, error) {
	var a assignment.Assignment
	var rawID, rawUser string
	var rawHW, rawSW *string
	if err := row.Scan(&rawID, &rawHW, &rawSW, &rawUser, &a.AssignedAt, &a.UnassignedAt); err != nil {
		return nil, err
	}
	asgnID, err := id.ParseAssignmentID(rawID)
	if err != nil {
		return nil, err
	}
	a.ID = asgnID
	if a.UserID, err = id.ParseUserID(rawUser); err != nil {
		return nil, err
	}
	if rawHW != nil {
		if a.HardwareID, err = id.ParseHardwareID(*rawHW); err != nil {
			return nil, err
		}
	}
	if rawSW != nil {
		if a.SoftwareID, err = id.ParseSoftwareID(*rawSW); err != nil {
			return nil, err
		}
	}
	return &a, nil
}
