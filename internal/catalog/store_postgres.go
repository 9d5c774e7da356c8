package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"correlativos/pkg/platform/sentinel"
	txcontext "correlativos/pkg/platform/tx"
)

// PostgresStore reads activity types from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed catalog store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*ActivityType, error) {
	query := `
		SELECT id, name, sigla
		FROM activity_types
		WHERE id = $1
	`
	var at ActivityType
	err := txcontext.ExecutorFor(ctx, s.db).QueryRowContext(ctx, query, id).
		Scan(&at.ID, &at.Name, &at.Sigla)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("activity type %d: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("get activity type: %w", err)
	}
	return &at, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*ActivityType, error) {
	query := `
		SELECT id, name, sigla
		FROM activity_types
		ORDER BY id
	`
	rows, err := txcontext.ExecutorFor(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list activity types: %w", err)
	}
	defer rows.Close()

	var out []*ActivityType
	for rows.Next() {
		var at ActivityType
		if err := rows.Scan(&at.ID, &at.Name, &at.Sigla); err != nil {
			return nil, fmt.Errorf("scan activity type: %w", err)
		}
		out = append(out, &at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activity types: %w", err)
	}
	return out, nil
}

// Put upserts an activity type. Used by seeding and integration tests; the
// service layer never mutates the catalog.
func (s *PostgresStore) Put(ctx context.Context, at ActivityType) error {
	query := `
		INSERT INTO activity_types (id, name, sigla)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			sigla = EXCLUDED.sigla
	`
	if _, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, query, at.ID, at.Name, at.Sigla); err != nil {
		return fmt.Errorf("put activity type: %w", err)
	}
	return nil
}
