// Package observability holds the application's Prometheus metrics.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the vote workflow counters with their registry.
type Metrics struct {
	registry *prometheus.Registry

	VotesAccepted      prometheus.Counter
	DuplicatesRejected prometheus.Counter
	ValidationRejected prometheus.Counter
	StoreErrors        prometheus.Counter
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		VotesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voting_votes_accepted_total",
			Help: "Number of vote submissions accepted and appended.",
		}),
		DuplicatesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voting_votes_duplicate_total",
			Help: "Number of vote submissions rejected as duplicates.",
		}),
		ValidationRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voting_votes_invalid_total",
			Help: "Number of vote submissions rejected by validation.",
		}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voting_store_errors_total",
			Help: "Number of record store operations that failed.",
		}),
	}

	registry.MustRegister(
		m.VotesAccepted,
		m.DuplicatesRejected,
		m.ValidationRejected,
		m.StoreErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
