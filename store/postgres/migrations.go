package postgres

import (
	"context"
	"fmt"
)

// schema is applied statement by statement; every statement is
// idempotent so Migrate can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS depot_roles (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS depot_users (
		id              TEXT PRIMARY KEY,
		object_id       TEXT NOT NULL DEFAULT '',
		username        TEXT NOT NULL DEFAULT '',
		email           TEXT NOT NULL DEFAULT '',
		name            TEXT NOT NULL DEFAULT '',
		employee_number TEXT NOT NULL DEFAULT '',
		supervisor_id   TEXT REFERENCES depot_users(id) ON DELETE SET NULL,
		role_id         TEXT REFERENCES depot_roles(id) ON DELETE SET NULL,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_depot_users_supervisor ON depot_users (supervisor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_depot_users_email ON depot_users (lower(email))`,
	`CREATE INDEX IF NOT EXISTS idx_depot_users_object_id ON depot_users (object_id)`,
	`CREATE TABLE IF NOT EXISTS depot_hardware (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		type          TEXT NOT NULL DEFAULT '',
		serial_number TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT '',
		archived      BOOLEAN NOT NULL DEFAULT false,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_depot_hardware_type ON depot_hardware (lower(type))`,
	`CREATE TABLE IF NOT EXISTS depot_software (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		type        TEXT NOT NULL DEFAULT '',
		license_key TEXT NOT NULL DEFAULT '',
		seats       INTEGER NOT NULL DEFAULT 1,
		archived    BOOLEAN NOT NULL DEFAULT false,
		expires_at  TIMESTAMPTZ,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_depot_software_type ON depot_software (lower(type))`,
	`CREATE TABLE IF NOT EXISTS depot_assignments (
		id            TEXT PRIMARY KEY,
		hardware_id   TEXT REFERENCES depot_hardware(id) ON DELETE CASCADE,
		software_id   TEXT REFERENCES depot_software(id) ON DELETE CASCADE,
		user_id       TEXT NOT NULL REFERENCES depot_users(id) ON DELETE CASCADE,
		assigned_at   TIMESTAMPTZ NOT NULL,
		unassigned_at TIMESTAMPTZ,
		CHECK ((hardware_id IS NULL) <> (software_id IS NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_depot_assignments_hw_active
		ON depot_assignments (hardware_id) WHERE unassigned_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_depot_assignments_sw_active
		ON depot_assignments (software_id) WHERE unassigned_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_depot_assignments_user ON depot_assignments (user_id)`,
}

// Migrate applies the schema.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("depot: migrate: %w", err)
		}
	}
	return nil
}
