package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// schema is idempotent bootstrap DDL. Participation.event_id deliberately has
// no foreign key; the service checks existence and cascades deletes.
const schema = `
CREATE TABLE IF NOT EXISTS events (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	title         TEXT NOT NULL,
	description   TEXT,
	date          TIMESTAMPTZ NOT NULL,
	start_time    TEXT NOT NULL,
	end_time      TEXT NOT NULL,
	location      TEXT NOT NULL,
	category      TEXT NOT NULL,
	sub_category  TEXT,
	is_admin_only BOOLEAN NOT NULL DEFAULT FALSE,
	created_by    TEXT NOT NULL,
	notified      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS events_date_idx ON events (date);

CREATE TABLE IF NOT EXISTS participations (
	id                   TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	event_id             TEXT NOT NULL,
	user_id              TEXT NOT NULL,
	participant_name     TEXT,
	participant_category TEXT,
	participant_count    INTEGER NOT NULL DEFAULT 0,
	category_counts      JSONB,
	total_count          INTEGER NOT NULL DEFAULT 0,
	dedupe_key           TEXT UNIQUE,
	created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS participations_event_id_idx ON participations (event_id);
`

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
