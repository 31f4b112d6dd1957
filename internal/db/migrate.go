package db

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaMigration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS users (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    email text NOT NULL,
    username text NOT NULL,
    display_name text,
    avatar_url text,
    provider text NOT NULL,
    external_id text,
    password_hash text,
    active boolean NOT NULL DEFAULT true,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_unique
ON users (LOWER(email));

CREATE UNIQUE INDEX IF NOT EXISTS users_username_unique
ON users (username);

CREATE UNIQUE INDEX IF NOT EXISTS users_provider_external_unique
ON users (provider, external_id)
WHERE external_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS workouts (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    exercise_type text NOT NULL,
    reps_count integer NOT NULL DEFAULT 0,
    duration_seconds integer NOT NULL DEFAULT 0,
    calories_burned double precision,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS workouts_user_id_idx
ON workouts (user_id, created_at DESC);
`

// Migrate applies the idempotent schema. Every statement uses IF NOT
// EXISTS so repeated startups are safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaMigration); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
