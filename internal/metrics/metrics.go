// Package metrics exposes Prometheus counters for default-account resolution.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atinyakov/ContactKeeper/internal/models"
)

// Metrics owns a private registry so tests can create independent instances.
type Metrics struct {
	registry *prometheus.Registry

	// Resolutions counts default-account decisions by outcome. A rising
	// fallback_unknown_name rate means stored defaults outlive their accounts.
	Resolutions *prometheus.CounterVec
}

// New creates a registry with the resolution counter and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "contactkeeper",
				Name:      "default_account_resolutions_total",
				Help:      "Default account resolutions by outcome.",
			},
			[]string{"outcome"},
		),
	}
	m.registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
		m.Resolutions,
	)
	return m
}

// Record implements service.OutcomeRecorder.
func (m *Metrics) Record(outcome models.Outcome) {
	m.Resolutions.WithLabelValues(string(outcome)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
