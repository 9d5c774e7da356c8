package issuance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"correlativos/internal/correlative/models"
	"correlativos/pkg/platform/sentinel"
	txcontext "correlativos/pkg/platform/tx"
)

// PostgresStore persists the append-only issuance log in PostgreSQL.
// Rows are never updated or deleted; the unique (activity_type_id, year,
// number) constraint is the last line of defense against a duplicated number.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed issuance log.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts one issuance record. It picks up the allocation transaction
// from context so the insert commits together with the counter increment.
func (s *PostgresStore) Append(ctx context.Context, rec *models.IssuanceRecord) error {
	if rec == nil {
		return fmt.Errorf("issuance record is required")
	}
	query := `
		INSERT INTO issuance_records
			(id, activity_type_id, year, number, sigla, code, issued_by, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, query,
		rec.ID,
		rec.ActivityTypeID,
		rec.Year,
		rec.Number,
		rec.Sigla,
		rec.Code,
		rec.IssuedBy,
		rec.IssuedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("append issuance record: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("append issuance record: %w", err)
	}
	return nil
}

// ListByKey returns the records for a key ordered by number.
func (s *PostgresStore) ListByKey(ctx context.Context, key models.CounterKey) ([]*models.IssuanceRecord, error) {
	query := `
		SELECT id, activity_type_id, year, number, sigla, code, issued_by, issued_at
		FROM issuance_records
		WHERE activity_type_id = $1 AND year = $2
		ORDER BY number
	`
	rows, err := txcontext.ExecutorFor(ctx, s.db).QueryContext(ctx, query, key.ActivityTypeID, key.Year)
	if err != nil {
		return nil, fmt.Errorf("list issuance records: %w", err)
	}
	defer rows.Close()

	var out []*models.IssuanceRecord
	for rows.Next() {
		var rec models.IssuanceRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.ActivityTypeID,
			&rec.Year,
			&rec.Number,
			&rec.Sigla,
			&rec.Code,
			&rec.IssuedBy,
			&rec.IssuedAt,
		); err != nil {
			return nil, fmt.Errorf("scan issuance record: %w", err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list issuance records: %w", err)
	}
	return out, nil
}

// CountByKey returns the number of records for a key.
func (s *PostgresStore) CountByKey(ctx context.Context, key models.CounterKey) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM issuance_records
		WHERE activity_type_id = $1 AND year = $2
	`
	var count int
	err := txcontext.ExecutorFor(ctx, s.db).
		QueryRowContext(ctx, query, key.ActivityTypeID, key.Year).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count issuance records: %w", err)
	}
	return count, nil
}
