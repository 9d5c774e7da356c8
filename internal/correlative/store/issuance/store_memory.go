package issuance

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"correlativos/internal/correlative/models"
	"correlativos/pkg/platform/sentinel"
)

// InMemoryStore keeps the issuance log in a map of slices keyed by sequence.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[models.CounterKey][]*models.IssuanceRecord
	byNum   map[models.CounterKey]map[int]bool
}

// NewInMemory constructs an empty in-memory issuance log.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[models.CounterKey][]*models.IssuanceRecord),
		byNum:   make(map[models.CounterKey]map[int]bool),
	}
}

func (s *InMemoryStore) Append(_ context.Context, rec *models.IssuanceRecord) error {
	if rec == nil {
		return fmt.Errorf("issuance record is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rec.Key()
	if s.byNum[key] == nil {
		s.byNum[key] = make(map[int]bool)
	}
	if s.byNum[key][rec.Number] {
		return fmt.Errorf("append issuance record: number %d already logged: %w", rec.Number, sentinel.ErrConflict)
	}
	s.byNum[key][rec.Number] = true

	copied := *rec
	s.records[key] = append(s.records[key], &copied)
	return nil
}

func (s *InMemoryStore) ListByKey(_ context.Context, key models.CounterKey) ([]*models.IssuanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[key]
	out := make([]*models.IssuanceRecord, 0, len(recs))
	for _, rec := range recs {
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (s *InMemoryStore) CountByKey(_ context.Context, key models.CounterKey) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records[key]), nil
}
