// Package metrics exposes pipeline activity as Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for one process. It satisfies
// aggregator.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	SourceFetches  *prometheus.CounterVec
	ItemsTotal     *prometheus.CounterVec
	ItemDuration   prometheus.Histogram
	RunsInProgress prometheus.Gauge
}

// New creates and registers all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.SourceFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ytdigest_source_fetches_total",
			Help: "Source lookups, by source and outcome.",
		},
		[]string{"source", "outcome"},
	)

	m.ItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ytdigest_items_total",
			Help: "References processed, by result.",
		},
		[]string{"result"},
	)

	m.ItemDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ytdigest_item_duration_seconds",
			Help:    "Time spent collecting one reference.",
			Buckets: prometheus.DefBuckets,
		},
	)

	m.RunsInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ytdigest_runs_in_progress",
			Help: "Report runs currently executing.",
		},
	)

	m.registry.MustRegister(m.SourceFetches, m.ItemsTotal, m.ItemDuration, m.RunsInProgress)
	return m
}

// ObserveSource counts one source lookup.
func (m *Metrics) ObserveSource(source, outcome string) {
	m.SourceFetches.WithLabelValues(source, outcome).Inc()
}

// ObserveItem records how long a reference took and whether it produced a row.
func (m *Metrics) ObserveItem(d time.Duration, produced bool) {
	result := "skipped"
	if produced {
		result = "reported"
	}
	m.ItemsTotal.WithLabelValues(result).Inc()
	m.ItemDuration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
