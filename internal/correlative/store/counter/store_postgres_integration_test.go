//go:build integration

package counter_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"correlativos/internal/correlative/models"
	"correlativos/internal/correlative/store/counter"
	"correlativos/internal/storage"
	"correlativos/pkg/platform/sentinel"
	"correlativos/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *counter.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.Require().NoError(storage.Migrate(context.Background(), s.postgres.DB))
	s.store = counter.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "correlative_counters")
	s.Require().NoError(err)
}

// TestConcurrentIncrementIsGapless verifies the upsert hands out every number
// in 1..N exactly once under concurrent load.
func (s *PostgresStoreSuite) TestConcurrentIncrementIsGapless() {
	ctx := context.Background()
	key := models.CounterKey{ActivityTypeID: 3, Year: 2026}
	const goroutines = 100

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int]int)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			number, _, err := s.store.IncrementAndGet(ctx, key, "INF")
			s.Require().NoError(err)

			mu.Lock()
			seen[number]++
			mu.Unlock()
		}()
	}

	wg.Wait()

	s.Len(seen, goroutines)
	for n := 1; n <= goroutines; n++ {
		s.Equal(1, seen[n], "number %d should be issued exactly once", n)
	}

	c, err := s.store.Get(ctx, key)
	s.Require().NoError(err)
	s.Equal(goroutines, c.LastNumber)
}

func (s *PostgresStoreSuite) TestSiglaSticksAtFirstInsert() {
	ctx := context.Background()
	key := models.CounterKey{ActivityTypeID: 3, Year: 2026}

	number, sigla, err := s.store.IncrementAndGet(ctx, key, "INF")
	s.Require().NoError(err)
	s.Equal(1, number)
	s.Equal("INF", sigla)

	// A renamed sigla does not rewrite already-started sequences.
	number, sigla, err = s.store.IncrementAndGet(ctx, key, "REP")
	s.Require().NoError(err)
	s.Equal(2, number)
	s.Equal("INF", sigla)
}

func (s *PostgresStoreSuite) TestSequencesAreIndependentPerKey() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := s.store.IncrementAndGet(ctx, models.CounterKey{ActivityTypeID: 3, Year: 2026}, "INF")
		s.Require().NoError(err)
	}

	number, _, err := s.store.IncrementAndGet(ctx, models.CounterKey{ActivityTypeID: 3, Year: 2027}, "INF")
	s.Require().NoError(err)
	s.Equal(1, number, "new year starts at 1")

	number, _, err = s.store.IncrementAndGet(ctx, models.CounterKey{ActivityTypeID: 2, Year: 2026}, "VIG")
	s.Require().NoError(err)
	s.Equal(1, number, "other activity type starts at 1")
}

func (s *PostgresStoreSuite) TestGet_NotFoundForAbsentKey() {
	ctx := context.Background()

	_, err := s.store.Get(ctx, models.CounterKey{ActivityTypeID: 3, Year: 2026})
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}
