package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"correlativos/pkg/platform/sentinel"
)

// InMemoryStore holds activity types in a map. Used by unit tests and as a
// fixed catalog when running without a database.
type InMemoryStore struct {
	mu    sync.RWMutex
	types map[int64]ActivityType
}

// NewInMemory constructs an empty in-memory catalog.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{types: make(map[int64]ActivityType)}
}

func (s *InMemoryStore) GetByID(_ context.Context, id int64) (*ActivityType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, ok := s.types[id]
	if !ok {
		return nil, fmt.Errorf("activity type %d: %w", id, sentinel.ErrNotFound)
	}
	return &at, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*ActivityType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*ActivityType, 0, len(s.types))
	for _, at := range s.types {
		copied := at
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Put inserts or replaces an activity type.
func (s *InMemoryStore) Put(_ context.Context, at ActivityType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types[at.ID] = at
	return nil
}
