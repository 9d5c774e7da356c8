package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"correlativos/internal/catalog"
	"correlativos/internal/correlative/format"
	"correlativos/internal/correlative/metrics"
	"correlativos/internal/correlative/models"
	"correlativos/internal/correlative/observability"
	"correlativos/internal/correlative/ports"
	dErrors "correlativos/pkg/domain-errors"
	"correlativos/pkg/platform/sentinel"
	"correlativos/pkg/requestcontext"
)

// Type aliases for shared interfaces.
type (
	CounterStore = ports.CounterStore
	IssuanceLog  = ports.IssuanceLog
	Catalog      = ports.Catalog
	StoreTx      = ports.StoreTx
)

const (
	defaultAttempts = 3
	defaultBackoff  = 25 * time.Millisecond
)

// Service allocates and previews correlative codes. Correctness under
// concurrency comes from the store's atomic increment and the transaction
// boundary, never from locks held here: multiple replicas of this service can
// run against the same database.
type Service struct {
	counters CounterStore
	log      IssuanceLog
	catalog  Catalog
	tx       StoreTx
	logger   *slog.Logger
	metrics  *metrics.Metrics
	attempts int
	backoff  time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRetry overrides the bounded retry policy applied to serialization
// conflicts. Attempts counts the first try.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(s *Service) {
		s.attempts = attempts
		s.backoff = backoff
	}
}

func New(counters CounterStore, log IssuanceLog, cat Catalog, tx StoreTx, opts ...Option) (*Service, error) {
	if counters == nil {
		return nil, fmt.Errorf("counter store is required")
	}
	if log == nil {
		return nil, fmt.Errorf("issuance log is required")
	}
	if cat == nil {
		return nil, fmt.Errorf("activity type catalog is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("store tx is required")
	}

	svc := &Service{
		counters: counters,
		log:      log,
		catalog:  cat,
		tx:       tx,
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Allocate consumes the next number for (activityTypeID, year) and records it
// in the issuance log, both in one transaction. On a serialization conflict
// the whole transaction is retried a bounded number of times; once committed,
// the number is permanently consumed even if the caller goes away.
func (s *Service) Allocate(ctx context.Context, activityTypeID int64, year int, issuedBy int64) (*models.IssuanceRecord, error) {
	at, err := s.resolveType(ctx, activityTypeID)
	if err != nil {
		return nil, err
	}

	key := models.CounterKey{ActivityTypeID: activityTypeID, Year: year}

	for attempt := 1; attempt <= s.attempts; attempt++ {
		var rec *models.IssuanceRecord
		err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
			number, sigla, err := s.counters.IncrementAndGet(ctx, key, at.Sigla)
			if err != nil {
				return err
			}
			r := &models.IssuanceRecord{
				ID:             uuid.New(),
				ActivityTypeID: activityTypeID,
				Year:           year,
				Number:         number,
				Sigla:          sigla,
				Code:           format.Format(sigla, number),
				IssuedBy:       issuedBy,
				IssuedAt:       requestcontext.Now(ctx).UTC(),
			}
			if err := s.log.Append(ctx, r); err != nil {
				return err
			}
			rec = r
			return nil
		})
		if err == nil {
			s.incrementIssued()
			observability.LogAudit(ctx, s.logger, "correlative_issued",
				"usuario_id", issuedBy,
				"tipo_actividad_id", activityTypeID,
				"correlativo", rec.Code,
				"numero", rec.Number,
				"año", year,
			)
			return rec, nil
		}

		if errors.Is(err, sentinel.ErrConflict) {
			s.incrementRetries()
			if s.logger != nil {
				s.logger.WarnContext(ctx, "allocation conflict, retrying",
					"tipo_actividad_id", activityTypeID,
					"año", year,
					"attempt", attempt,
				)
			}
			if attempt < s.attempts {
				if err := s.sleep(ctx, time.Duration(attempt)*s.backoff); err != nil {
					return nil, err
				}
			}
			continue
		}
		if dErrors.HasCode(err, dErrors.CodeTimeout) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate correlative")
	}

	s.incrementFailures()
	return nil, dErrors.New(dErrors.CodeConflict, "allocation retries exhausted under contention")
}

// Preview reports the current and next number for (activityTypeID, year)
// without consuming anything. An absent counter row means the sequence has
// not started: the answer is 0/1, never a number inherited from another year.
func (s *Service) Preview(ctx context.Context, activityTypeID int64, year int) (*models.PreviewResponse, error) {
	at, err := s.resolveType(ctx, activityTypeID)
	if err != nil {
		return nil, err
	}

	current := 0
	sigla := at.Sigla
	c, err := s.counters.Get(ctx, models.CounterKey{ActivityTypeID: activityTypeID, Year: year})
	switch {
	case err == nil:
		current = c.LastNumber
		sigla = c.Sigla
	case errors.Is(err, sentinel.ErrNotFound):
		// Sequence not started for this exact year; begins at 1.
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read counter")
	}

	next := current + 1
	s.incrementPreviews()

	return &models.PreviewResponse{
		NumeroActual:        current,
		SiguienteNumero:     next,
		Sigla:               sigla,
		CorrelativoCompleto: format.Format(sigla, next),
		Año:                 year,
	}, nil
}

// History lists every code issued for (activityTypeID, year), ordered by number.
func (s *Service) History(ctx context.Context, activityTypeID int64, year int) (*models.HistoryResponse, error) {
	if _, err := s.resolveType(ctx, activityTypeID); err != nil {
		return nil, err
	}

	key := models.CounterKey{ActivityTypeID: activityTypeID, Year: year}
	recs, err := s.log.ListByKey(ctx, key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list issuance records")
	}
	return models.HistoryFromRecords(key, recs), nil
}

// resolveType enforces the catalog preconditions shared by every operation.
// These run before any transaction is opened.
func (s *Service) resolveType(ctx context.Context, activityTypeID int64) (*catalog.ActivityType, error) {
	at, err := s.catalog.GetByID(ctx, activityTypeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "activity type not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve activity type")
	}
	if !at.HasSigla() {
		return nil, dErrors.New(dErrors.CodeInvalidConfig, "activity type has no sigla configured")
	}
	return at, nil
}

// sleep waits for the backoff duration, honoring cancellation.
func (s *Service) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "allocation aborted while backing off")
	}
}

func (s *Service) incrementIssued() {
	if s.metrics != nil {
		s.metrics.IncrementIssued()
	}
}

func (s *Service) incrementRetries() {
	if s.metrics != nil {
		s.metrics.IncrementRetries()
	}
}

func (s *Service) incrementFailures() {
	if s.metrics != nil {
		s.metrics.IncrementFailures()
	}
}

func (s *Service) incrementPreviews() {
	if s.metrics != nil {
		s.metrics.IncrementPreviews()
	}
}
