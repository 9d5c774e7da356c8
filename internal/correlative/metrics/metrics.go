package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CorrelativesIssued prometheus.Counter
	AllocationRetries  prometheus.Counter
	AllocationFailures prometheus.Counter
	PreviewsServed     prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		CorrelativesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "correlativos_issued_total",
			Help: "Total number of correlative codes issued",
		}),
		AllocationRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "correlativos_allocation_retries_total",
			Help: "Total number of allocation transactions retried after a serialization conflict",
		}),
		AllocationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "correlativos_allocation_failures_total",
			Help: "Total number of allocations that exhausted their retry budget",
		}),
		PreviewsServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "correlativos_previews_served_total",
			Help: "Total number of non-mutating preview reads served",
		}),
	}
}

func (m *Metrics) IncrementIssued() {
	m.CorrelativesIssued.Inc()
}

func (m *Metrics) IncrementRetries() {
	m.AllocationRetries.Inc()
}

func (m *Metrics) IncrementFailures() {
	m.AllocationFailures.Inc()
}

func (m *Metrics) IncrementPreviews() {
	m.PreviewsServed.Inc()
}
