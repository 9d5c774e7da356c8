package counter

import (
	"context"
	"fmt"
	"sync"

	"correlativos/internal/correlative/models"
	"correlativos/pkg/platform/sentinel"
)

// InMemoryStore implements the counter store with a mutex-guarded map. The
// increment happens under the lock, so it has the same single-writer semantics
// as the PostgreSQL upsert within one process.
type InMemoryStore struct {
	mu       sync.RWMutex
	counters map[models.CounterKey]*models.Counter
}

// NewInMemory constructs an empty in-memory counter store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{counters: make(map[models.CounterKey]*models.Counter)}
}

func (s *InMemoryStore) IncrementAndGet(_ context.Context, key models.CounterKey, sigla string) (int, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok {
		c = &models.Counter{
			ActivityTypeID: key.ActivityTypeID,
			Year:           key.Year,
			Sigla:          sigla,
		}
		s.counters[key] = c
	}
	c.LastNumber++
	return c.LastNumber, c.Sigla, nil
}

func (s *InMemoryStore) Get(_ context.Context, key models.CounterKey) (*models.Counter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.counters[key]
	if !ok {
		return nil, fmt.Errorf("counter %d/%d: %w", key.ActivityTypeID, key.Year, sentinel.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}
