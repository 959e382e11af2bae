package postgres

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the users table if it does not exist. Production runs
// migrations; this keeps local development and integration environments
// working without them. Idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS users (
  id BIGSERIAL PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,

  role TEXT NOT NULL DEFAULT 'user',

  last_signed_in TIMESTAMPTZ NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`)
	return err
}
