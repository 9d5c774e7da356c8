package store

import (
	"context"
	"sync"
	"time"

	dErrors "correlativos/pkg/domain-errors"
)

// MemoryTx serializes allocations with a coarse lock. The in-memory stores
// cannot roll back, so the lock stands in for the database transaction; it is
// enough because the memory stores only fail on programmer error.
type MemoryTx struct {
	mu      sync.Mutex
	timeout time.Duration
}

// NewMemoryTx constructs an in-memory transaction runner.
func NewMemoryTx() *MemoryTx {
	return &MemoryTx{}
}

func (t *MemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
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

	t.mu.Lock()
	defer t.mu.Unlock()

	// Check again after acquiring the lock.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx)
}
