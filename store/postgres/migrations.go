package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Pyebwa store.
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
    total_supply       BIGINT NOT NULL DEFAULT 0,
    trees_funded       BIGINT NOT NULL DEFAULT 0,
    heritage_preserved BIGINT NOT NULL DEFAULT 0,
    credit_price       BIGINT NOT NULL DEFAULT 0,
    tree_fund_rate     INT NOT NULL DEFAULT 0,
    tree_payment_rate  BIGINT NOT NULL DEFAULT 0,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
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
    credit_balance BIGINT NOT NULL DEFAULT 0,
    heritage_items INT NOT NULL DEFAULT 0,
    trees_funded   INT NOT NULL DEFAULT 0,
    total_spent    BIGINT NOT NULL DEFAULT 0,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
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
    verified         BOOLEAN NOT NULL DEFAULT FALSE,
    trees_planted    INT NOT NULL DEFAULT 0,
    trees_verified   INT NOT NULL DEFAULT 0,
    earnings         BIGINT NOT NULL DEFAULT 0,
    reputation_score INT NOT NULL DEFAULT 0,
    gps_lat          DOUBLE PRECISION NOT NULL DEFAULT 0,
    gps_lon          DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
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
    sequence         BIGINT NOT NULL DEFAULT 0,
    tree_count       INT NOT NULL DEFAULT 0,
    gps_lat          DOUBLE PRECISION NOT NULL DEFAULT 0,
    gps_lon          DOUBLE PRECISION NOT NULL DEFAULT 0,
    evidence_hash    TEXT NOT NULL DEFAULT '',
    submitted_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    verified         BOOLEAN NOT NULL DEFAULT FALSE,
    verified_by      TEXT NOT NULL DEFAULT '',
    verified_at      TIMESTAMPTZ,
    payment_released BOOLEAN NOT NULL DEFAULT FALSE,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
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
