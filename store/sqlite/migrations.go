package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Pyebwa store (SQLite).
var Migrations = migrate.NewGroup("pyebwa")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_pyebwa_pool",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS pyebwa_pool (
    singleton          TEXT PRIMARY KEY,
    id                 TEXT NOT NULL DEFAULT '',
    authority          TEXT NOT NULL DEFAULT '',
    total_supply       INTEGER NOT NULL DEFAULT 0,
    trees_funded       INTEGER NOT NULL DEFAULT 0,
    heritage_preserved INTEGER NOT NULL DEFAULT 0,
    credit_price       INTEGER NOT NULL DEFAULT 0,
    tree_fund_rate     INTEGER NOT NULL DEFAULT 0,
    tree_payment_rate  INTEGER NOT NULL DEFAULT 0,
    created_at         TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at         TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS pyebwa_pool`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_pyebwa_participants",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS pyebwa_participants (
    owner          TEXT PRIMARY KEY,
    id             TEXT NOT NULL DEFAULT '',
    credit_balance INTEGER NOT NULL DEFAULT 0,
    heritage_items INTEGER NOT NULL DEFAULT 0,
    trees_funded   INTEGER NOT NULL DEFAULT 0,
    total_spent    INTEGER NOT NULL DEFAULT 0,
    created_at     TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at     TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS pyebwa_participants`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_pyebwa_planters",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS pyebwa_planters (
    owner            TEXT PRIMARY KEY,
    id               TEXT NOT NULL DEFAULT '',
    verified         INTEGER NOT NULL DEFAULT 0,
    trees_planted    INTEGER NOT NULL DEFAULT 0,
    trees_verified   INTEGER NOT NULL DEFAULT 0,
    earnings         INTEGER NOT NULL DEFAULT 0,
    reputation_score INTEGER NOT NULL DEFAULT 0,
    gps_lat          REAL NOT NULL DEFAULT 0,
    gps_lon          REAL NOT NULL DEFAULT 0,
    created_at       TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at       TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_pyebwa_planters_verified ON pyebwa_planters (verified);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS pyebwa_planters`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_pyebwa_evidence",
			Version: "20250101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS pyebwa_evidence (
    id               TEXT PRIMARY KEY,
    planter          TEXT NOT NULL DEFAULT '',
    sequence         INTEGER NOT NULL DEFAULT 0,
    tree_count       INTEGER NOT NULL DEFAULT 0,
    gps_lat          REAL NOT NULL DEFAULT 0,
    gps_lon          REAL NOT NULL DEFAULT 0,
    evidence_hash    TEXT NOT NULL DEFAULT '',
    submitted_at     TEXT NOT NULL DEFAULT (datetime('now')),
    verified         INTEGER NOT NULL DEFAULT 0,
    verified_by      TEXT NOT NULL DEFAULT '',
    verified_at      TEXT,
    payment_released INTEGER NOT NULL DEFAULT 0,
    created_at       TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at       TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_pyebwa_evidence_planter_seq ON pyebwa_evidence (planter, sequence);
CREATE INDEX IF NOT EXISTS idx_pyebwa_evidence_unverified ON pyebwa_evidence (planter, verified);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS pyebwa_evidence`)
				return err
			},
		},
	)
}
