package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY,
  username      TEXT        NOT NULL UNIQUE,
  email         TEXT        NOT NULL,
  name          TEXT        NOT NULL DEFAULT '',
  plan          TEXT        NOT NULL DEFAULT 'free' CHECK (plan IN ('free', 'basic', 'premium')),
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_users_email",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (lower(email));`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id              UUID        PRIMARY KEY,
  user_id         TEXT        NOT NULL,
  name            TEXT        NOT NULL,
  filename        TEXT        NOT NULL,
  storage_path    TEXT        NOT NULL UNIQUE,
  file_type       TEXT        NOT NULL,
  content_type    TEXT        NOT NULL,
  size            BIGINT      NOT NULL CHECK (size >= 0),
  estimated_pages INTEGER     NOT NULL CHECK (estimated_pages >= 1),
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  last_printed_at TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_documents_user_created",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_user_created ON documents (user_id, created_at DESC);`,
	},
	{
		Name: "create_table_printers",
		SQL: `CREATE TABLE IF NOT EXISTS printers (
  id         UUID             PRIMARY KEY,
  name       TEXT             NOT NULL,
  address    TEXT             NOT NULL,
  latitude   DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
  longitude  DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180),
  is_open    BOOLEAN          NOT NULL DEFAULT true,
  features   JSONB            NOT NULL DEFAULT '{}'::jsonb,
  created_at TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_print_jobs",
		SQL: `CREATE TABLE IF NOT EXISTS print_jobs (
  id             UUID          PRIMARY KEY,
  user_id        TEXT          NOT NULL,
  document_id    UUID          NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  printer_id     UUID          REFERENCES printers (id) ON DELETE SET NULL,
  token_type     TEXT          NOT NULL CHECK (token_type IN ('normal', 'priority')),
  status         TEXT          NOT NULL,
  copies         INTEGER       NOT NULL CHECK (copies >= 1),
  color_mode     TEXT          NOT NULL,
  paper_size     TEXT          NOT NULL,
  orientation    TEXT          NOT NULL,
  sides          TEXT          NOT NULL,
  quality        TEXT          NOT NULL,
  print_cost     NUMERIC(12,2) NOT NULL,
  token_fee      NUMERIC(12,2) NOT NULL,
  cost           NUMERIC(12,2) NOT NULL,
  payment_id     UUID,
  payment_status TEXT,
  created_at     TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ   NOT NULL DEFAULT now(),
  completed_at   TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_print_jobs_user_created",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_print_jobs_user_created ON print_jobs (user_id, created_at DESC);`,
	},
	{
		Name: "create_table_payments",
		SQL: `CREATE TABLE IF NOT EXISTS payments (
  id           UUID          PRIMARY KEY,
  user_id      TEXT          NOT NULL,
  print_job_id UUID          REFERENCES print_jobs (id) ON DELETE SET NULL,
  amount       NUMERIC(12,2) NOT NULL CHECK (amount > 0),
  currency     TEXT          NOT NULL DEFAULT 'INR',
  external_id  TEXT          NOT NULL DEFAULT '',
  status       TEXT          NOT NULL CHECK (status IN ('pending', 'completed', 'cancelled')),
  created_at   TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_payments_user_created",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_payments_user_created ON payments (user_id, created_at DESC);`,
	},
	{
		Name: "create_table_contact_forms",
		SQL: `CREATE TABLE IF NOT EXISTS contact_forms (
  id         UUID        PRIMARY KEY,
  name       TEXT        NOT NULL,
  email      TEXT        NOT NULL,
  subject    TEXT        NOT NULL,
  message    TEXT        NOT NULL,
  resolved   BOOLEAN     NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

// EnsureMigrated checks for the print_jobs sentinel table and creates the
// schema when it is missing. Steps are idempotent, so a partially applied
// schema is completed on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *slog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass('public.print_jobs') IS NOT NULL").Scan(&exists)
	if err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"detail", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress", "steps", len(steps))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success", "status", "success", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
