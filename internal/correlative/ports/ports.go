// Package ports defines shared interfaces for the correlative module.
// Interfaces are placed here when consumed by multiple packages to avoid
// duplication.
package ports

import (
	"context"

	"correlativos/internal/catalog"
	"correlativos/internal/correlative/models"
)

// CounterStore manages per-(activity type, year) sequence counters.
type CounterStore interface {
	// IncrementAndGet atomically advances the counter for key and returns the
	// newly allocated number plus the stored sigla. A missing row is created
	// with last number 1 and the provided sigla; the sigla of an existing row
	// is never overwritten. The read-modify-write must be a single conditional
	// write in the store: a separate read followed by a write would let two
	// concurrent callers allocate the same number.
	IncrementAndGet(ctx context.Context, key models.CounterKey, sigla string) (number int, storedSigla string, err error)

	// Get returns the counter row for the exact key, or sentinel.ErrNotFound
	// (wrapped) when the key has never allocated. There is no cross-year
	// fallback: an absent row means the sequence starts at 1.
	Get(ctx context.Context, key models.CounterKey) (*models.Counter, error)
}

// IssuanceLog is the append-only audit trail of allocated numbers.
type IssuanceLog interface {
	// Append records one successful allocation. Called only inside the same
	// transaction as the counter increment.
	Append(ctx context.Context, rec *models.IssuanceRecord) error

	// ListByKey returns the records for a key ordered by number.
	ListByKey(ctx context.Context, key models.CounterKey) ([]*models.IssuanceRecord, error)

	// CountByKey returns the number of records for a key.
	CountByKey(ctx context.Context, key models.CounterKey) (int, error)
}

// Catalog resolves activity types to their display name and sigla.
type Catalog interface {
	GetByID(ctx context.Context, id int64) (*catalog.ActivityType, error)
}

// StoreTx provides the transactional boundary for an allocation: counter
// increment and log append commit together or not at all. Implementations
// wrap a database transaction or, in-memory, a coarse lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
