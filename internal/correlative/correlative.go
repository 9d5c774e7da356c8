// Package correlative issues unique, consecutive correlative codes per
// activity type and year, e.g. INF-003 for the third Informe of 2026.
package correlative

import (
	"log/slog"

	"correlativos/internal/correlative/handler"
	"correlativos/internal/correlative/metrics"
	"correlativos/internal/correlative/ports"
	"correlativos/internal/correlative/service"
	platformMetrics "correlativos/internal/platform/metrics"
)

// Service exposes correlative allocation, preview and history.
type Service = service.Service

// Handler wires HTTP endpoints to the correlative service.
type Handler = handler.Handler

// Metrics holds the issuance counters.
type Metrics = metrics.Metrics

// NewService constructs the correlative service with required dependencies.
func NewService(counters ports.CounterStore, log ports.IssuanceLog, cat ports.Catalog, tx ports.StoreTx, opts ...service.Option) (*Service, error) {
	return service.New(counters, log, cat, tx, opts...)
}

// NewHandler constructs an HTTP handler for the correlative routes.
func NewHandler(s *Service, logger *slog.Logger, httpMetrics *platformMetrics.Metrics) *Handler {
	return handler.New(s, logger, httpMetrics)
}

// NewMetrics registers the issuance counters with the default registry.
func NewMetrics() *Metrics {
	return metrics.New()
}

// Service options re-exported for callers wiring the module.
var (
	WithLogger  = service.WithLogger
	WithMetrics = service.WithMetrics
	WithRetry   = service.WithRetry
)
