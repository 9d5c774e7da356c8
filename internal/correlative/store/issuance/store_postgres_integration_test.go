//go:build integration

package issuance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"correlativos/internal/correlative/format"
	"correlativos/internal/correlative/models"
	"correlativos/internal/correlative/store/issuance"
	"correlativos/internal/storage"
	"correlativos/pkg/platform/sentinel"
	"correlativos/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *issuance.PostgresStore
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
	s.store = issuance.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "issuance_records")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) record(number int) *models.IssuanceRecord {
	return &models.IssuanceRecord{
		ID:             uuid.New(),
		ActivityTypeID: 3,
		Year:           2026,
		Number:         number,
		Sigla:          "INF",
		Code:           format.Format("INF", number),
		IssuedBy:       7,
		IssuedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresStoreSuite) TestAppendAndListRoundTrip() {
	ctx := context.Background()
	key := models.CounterKey{ActivityTypeID: 3, Year: 2026}

	// Insert out of order; ListByKey returns them by number.
	for _, n := range []int{2, 1, 3} {
		s.Require().NoError(s.store.Append(ctx, s.record(n)))
	}

	recs, err := s.store.ListByKey(ctx, key)
	s.Require().NoError(err)
	s.Require().Len(recs, 3)
	for i, rec := range recs {
		s.Equal(i+1, rec.Number)
		s.Equal(int64(7), rec.IssuedBy)
	}

	count, err := s.store.CountByKey(ctx, key)
	s.Require().NoError(err)
	s.Equal(3, count)
}

// TestDuplicateNumberRejected exercises the UNIQUE constraint backstop: no
// writer, however buggy, can commit the same number twice for one key.
func (s *PostgresStoreSuite) TestDuplicateNumberRejected() {
	ctx := context.Background()

	s.Require().NoError(s.store.Append(ctx, s.record(1)))

	err := s.store.Append(ctx, s.record(1))
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrConflict))
}

func (s *PostgresStoreSuite) TestKeysAreIsolated() {
	ctx := context.Background()

	rec := s.record(1)
	s.Require().NoError(s.store.Append(ctx, rec))

	other := s.record(1)
	other.ID = uuid.New()
	other.Year = 2027
	s.Require().NoError(s.store.Append(ctx, other), "same number in another year is a different code")

	recs, err := s.store.ListByKey(ctx, models.CounterKey{ActivityTypeID: 3, Year: 2027})
	s.Require().NoError(err)
	s.Len(recs, 1)
}
