package counter

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

// PostgresStore persists sequence counters in PostgreSQL.
// This store is pure I/O: retry policy and code formatting belong in the service.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed counter store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// IncrementAndGet atomically advances the counter and returns the new number.
// The upsert is a single conditional write: concurrent callers on the same key
// serialize on the row lock, so no two of them can observe the same value.
// The sigla column is only written on first creation, keeping the prefix that
// was current at first issuance even if the catalog entry changes later.
func (s *PostgresStore) IncrementAndGet(ctx context.Context, key models.CounterKey, sigla string) (int, string, error) {
	query := `
		INSERT INTO correlative_counters (activity_type_id, year, last_number, sigla)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (activity_type_id, year) DO UPDATE SET
			last_number = correlative_counters.last_number + 1
		RETURNING last_number, sigla
	`
	var number int
	var storedSigla string
	err := txcontext.ExecutorFor(ctx, s.db).
		QueryRowContext(ctx, query, key.ActivityTypeID, key.Year, sigla).
		Scan(&number, &storedSigla)
	if err != nil {
		if isSerializationFailure(err) {
			return 0, "", fmt.Errorf("increment counter: %w", sentinel.ErrConflict)
		}
		return 0, "", fmt.Errorf("increment counter: %w", err)
	}
	return number, storedSigla, nil
}

// Get reads the counter row for the exact key. A missing row is reported as
// sentinel.ErrNotFound; callers must treat that as "sequence starts at 1" and
// never widen the lookup to other years.
func (s *PostgresStore) Get(ctx context.Context, key models.CounterKey) (*models.Counter, error) {
	query := `
		SELECT activity_type_id, year, last_number, sigla
		FROM correlative_counters
		WHERE activity_type_id = $1 AND year = $2
	`
	var c models.Counter
	err := txcontext.ExecutorFor(ctx, s.db).
		QueryRowContext(ctx, query, key.ActivityTypeID, key.Year).
		Scan(&c.ActivityTypeID, &c.Year, &c.LastNumber, &c.Sigla)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("counter %d/%d: %w", key.ActivityTypeID, key.Year, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("get counter: %w", err)
	}
	return &c, nil
}

// isSerializationFailure reports whether the error is a transient transaction
// conflict worth retrying: SQLSTATE 40001 (serialization_failure) or 40P01
// (deadlock_detected).
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
