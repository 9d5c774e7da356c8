package models

import (
	"time"

	"github.com/google/uuid"
)

// CounterKey identifies one numbering sequence. Year is part of the key, not a
// filter: the first allocation of a new year creates a fresh row at 1, so the
// per-year reset is structural rather than scheduled.
type CounterKey struct {
	ActivityTypeID int64
	Year           int
}

// Counter is the persisted state of one sequence.
//
// Invariants:
//   - LastNumber is monotonically non-decreasing, +1 per successful allocation
//   - LastNumber is never decremented and numbers are never reused
//   - Sigla is denormalized at first issuance and never follows later catalog
//     edits, so historical codes stay attributable
//   - exactly LastNumber issuance records exist for the key
type Counter struct {
	ActivityTypeID int64  `json:"activityTypeId"`
	Year           int    `json:"año"`
	LastNumber     int    `json:"lastNumber"`
	Sigla          string `json:"sigla"`
}

// Key returns the counter's sequence key.
func (c *Counter) Key() CounterKey {
	return CounterKey{ActivityTypeID: c.ActivityTypeID, Year: c.Year}
}

// IssuanceRecord is the append-only audit entry for one allocated number.
// Records are created atomically with the counter increment and never mutated
// or deleted.
type IssuanceRecord struct {
	ID             uuid.UUID `json:"id"`
	ActivityTypeID int64     `json:"activityTypeId"`
	Year           int       `json:"año"`
	Number         int       `json:"numero"`
	Sigla          string    `json:"sigla"`
	Code           string    `json:"correlativoCompleto"`
	IssuedBy       int64     `json:"usuarioId"`
	IssuedAt       time.Time `json:"fechaGeneracion"`
}

// Key returns the sequence key the record belongs to.
func (r *IssuanceRecord) Key() CounterKey {
	return CounterKey{ActivityTypeID: r.ActivityTypeID, Year: r.Year}
}
