// Package store provides the transactional boundary implementations for
// correlative allocation. Concern-specific stores live in the counter and
// issuance subpackages and pick up an open transaction from context.
package store

import (
	"context"
	"database/sql"
	"time"

	dErrors "correlativos/pkg/domain-errors"
	txcontext "correlativos/pkg/platform/tx"
)

// defaultTxTimeout bounds how long an allocation transaction may hold its row lock.
const defaultTxTimeout = 5 * time.Second

// PostgresTx runs a function inside one database transaction. The transaction
// is carried through context so the counter and issuance stores join it
// without referencing each other.
type PostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

// NewPostgresTx constructs a transaction runner on the given database.
func NewPostgresTx(db *sql.DB) *PostgresTx {
	return &PostgresTx{db: db}
}

func (t *PostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}

	return tx.Commit()
}
