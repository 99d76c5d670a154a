package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Depot store (SQLite).
var Migrations = migrate.NewGroup("depot")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_roles",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS depot_roles (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS depot_roles`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_users",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS depot_users (
    id              TEXT PRIMARY KEY,
    object_id       TEXT NOT NULL DEFAULT '',
    username        TEXT NOT NULL DEFAULT '',
    email           TEXT NOT NULL DEFAULT '',
    name            TEXT NOT NULL DEFAULT '',
    employee_number TEXT NOT NULL DEFAULT '',
    supervisor_id   TEXT REFERENCES depot_users(id),
    role_id         TEXT REFERENCES depot_roles(id),
    created_at      TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at      TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_depot_users_supervisor ON depot_users (supervisor_id);
CREATE INDEX IF NOT EXISTS idx_depot_users_object_id ON depot_users (object_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS depot_users`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_hardware",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS depot_hardware (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    type          TEXT NOT NULL DEFAULT '',
    serial_number TEXT NOT NULL DEFAULT '',
    status        TEXT NOT NULL DEFAULT '',
    archived      INTEGER NOT NULL DEFAULT 0,
    created_at    TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at    TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_depot_hardware_type ON depot_hardware (type);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS depot_hardware`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_software",
			Version: "20250101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS depot_software (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    type        TEXT NOT NULL DEFAULT '',
    license_key TEXT NOT NULL DEFAULT '',
    seats       INTEGER NOT NULL DEFAULT 1,
    archived    INTEGER NOT NULL DEFAULT 0,
    expires_at  TEXT,
    created_at  TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_depot_software_type ON depot_software (type);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS depot_software`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_assignments",
			Version: "20250101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS depot_assignments (
    id            TEXT PRIMARY KEY,
    hardware_id   TEXT REFERENCES depot_hardware(id),
    software_id   TEXT REFERENCES depot_software(id),
    user_id       TEXT NOT NULL REFERENCES depot_users(id),
    assigned_at   TEXT NOT NULL,
    unassigned_at TEXT,

    CHECK ((hardware_id IS NULL) <> (software_id IS NULL))
);

CREATE INDEX IF NOT EXISTS idx_depot_assignments_hardware ON depot_assignments (hardware_id);
CREATE INDEX IF NOT EXISTS idx_depot_assignments_software ON depot_assignments (software_id);
CREATE INDEX IF NOT EXISTS idx_depot_assignments_user ON depot_assignments (user_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS depot_assignments`)
				return err
			},
		},
	)
}
