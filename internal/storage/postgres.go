// Package storage owns the database connection and schema for the service.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and verifies the connection before returning it.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// schema is applied idempotently at startup. The UNIQUE constraint on
// (activity_type_id, year, number) is the last line of defense against a
// duplicate code: even a buggy writer cannot commit one.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS activity_types (
		id    BIGINT PRIMARY KEY,
		name  TEXT NOT NULL,
		sigla TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS correlative_counters (
		activity_type_id BIGINT NOT NULL,
		year             INT NOT NULL,
		last_number      INT NOT NULL CHECK (last_number >= 0),
		sigla            TEXT NOT NULL,
		PRIMARY KEY (activity_type_id, year)
	)`,
	`CREATE TABLE IF NOT EXISTS issuance_records (
		id               UUID PRIMARY KEY,
		activity_type_id BIGINT NOT NULL,
		year             INT NOT NULL,
		number           INT NOT NULL CHECK (number > 0),
		sigla            TEXT NOT NULL,
		code             TEXT NOT NULL,
		issued_by        BIGINT NOT NULL,
		issued_at        TIMESTAMPTZ NOT NULL,
		UNIQUE (activity_type_id, year, number)
	)`,
	`CREATE INDEX IF NOT EXISTS issuance_records_key_idx
		ON issuance_records (activity_type_id, year, number)`,
}

// Migrate applies the schema. Each statement is idempotent, so running it on
// every startup is safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
