// Package metrics exposes Prometheus counters for heat-load calculations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	KindSimple   = "simple"
	KindDetailed = "detailed"

	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
)

type Metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	heatLoad     *prometheus.HistogramVec
}

// New registers the collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heizlast",
			Name:      "calculations_total",
			Help:      "Heat-load calculations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		heatLoad: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "heizlast",
			Name:      "heat_load_kw",
			Help:      "Computed heating load in kW.",
			Buckets:   []float64{1, 2, 5, 10, 15, 20, 30, 50, 100},
		}, []string{"kind"}),
	}
	m.registry.MustRegister(
		m.calculations,
		m.heatLoad,
		collectors.NewGoCollector(),
	)
	return m
}

// Observe records one successful calculation.
func (m *Metrics) Observe(kind string, kw float64) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(kind, OutcomeOK).Inc()
	m.heatLoad.WithLabelValues(kind).Observe(kw)
}

// Reject records one calculation refused by validation.
func (m *Metrics) Reject(kind string) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(kind, OutcomeInvalid).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
