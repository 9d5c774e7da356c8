//go:build integration

package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"correlativos/internal/catalog"
	"correlativos/internal/correlative/models"
	"correlativos/internal/correlative/service"
	"correlativos/internal/correlative/store"
	counterstore "correlativos/internal/correlative/store/counter"
	issuancestore "correlativos/internal/correlative/store/issuance"
	"correlativos/internal/storage"
	"correlativos/pkg/testutil/containers"
)

// ServiceIntegrationSuite runs the full allocation path against a real
// Postgres: atomic upsert, issuance log append and transaction commit.
type ServiceIntegrationSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	svc      *service.Service
	counters *counterstore.PostgresStore
	log      *issuancestore.PostgresStore
}

func TestServiceIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ServiceIntegrationSuite))
}

func (s *ServiceIntegrationSuite) SetupSuite() {
	ctx := context.Background()

	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.Require().NoError(storage.Migrate(ctx, s.postgres.DB))

	s.counters = counterstore.NewPostgres(s.postgres.DB)
	s.log = issuancestore.NewPostgres(s.postgres.DB)
	catalogStore := catalog.NewPostgres(s.postgres.DB)
	s.Require().NoError(catalog.Seed(ctx, catalogStore, catalog.DefaultTypes()))

	svc, err := service.New(s.counters, s.log, catalogStore, store.NewPostgresTx(s.postgres.DB))
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ServiceIntegrationSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "correlative_counters", "issuance_records")
	s.Require().NoError(err)
}

// TestConcurrentAllocationIsGapless is the core guarantee: N concurrent
// allocations for one key produce exactly the codes 1..N, each once, and the
// audit trail matches the counter.
func (s *ServiceIntegrationSuite) TestConcurrentAllocationIsGapless() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int]int)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			rec, err := s.svc.Allocate(ctx, 3, 2026, 1)
			s.Require().NoError(err)

			mu.Lock()
			seen[rec.Number]++
			mu.Unlock()
		}()
	}

	wg.Wait()

	s.Len(seen, goroutines)
	for n := 1; n <= goroutines; n++ {
		s.Equal(1, seen[n], "number %d should be issued exactly once", n)
	}

	key := models.CounterKey{ActivityTypeID: 3, Year: 2026}
	count, err := s.log.CountByKey(ctx, key)
	s.Require().NoError(err)
	s.Equal(goroutines, count)

	c, err := s.counters.Get(ctx, key)
	s.Require().NoError(err)
	s.Equal(goroutines, c.LastNumber, "audit trail count equals counter position")
}

func (s *ServiceIntegrationSuite) TestAllocateThenPreviewAgree() {
	ctx := context.Background()

	rec, err := s.svc.Allocate(ctx, 3, 2026, 9)
	s.Require().NoError(err)
	s.Equal("INF-001", rec.Code)

	preview, err := s.svc.Preview(ctx, 3, 2026)
	s.Require().NoError(err)
	s.Equal(1, preview.NumeroActual)
	s.Equal(2, preview.SiguienteNumero)
	s.Equal("INF-002", preview.CorrelativoCompleto)
}

func (s *ServiceIntegrationSuite) TestHistoryRoundTrip() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.svc.Allocate(ctx, 1, 2026, int64(10+i))
		s.Require().NoError(err)
	}

	hist, err := s.svc.History(ctx, 1, 2026)
	s.Require().NoError(err)
	s.Equal(3, hist.Total)
	s.Require().Len(hist.Registros, 3)
	s.Equal("ALL-001", hist.Registros[0].CorrelativoCompleto)
	s.Equal(int64(12), hist.Registros[2].UsuarioID)
}
