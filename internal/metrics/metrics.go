// Package metrics exposes Prometheus instrumentation for badge rendering and
// selection edits.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors used across the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Badge renders by outcome ("rendered" or "empty")
	Renders *prometheus.CounterVec

	// Toggles by indicator slug and resulting value
	Toggles *prometheus.CounterVec

	// Catalog file reloads by result ("ok" or "error")
	CatalogReloads *prometheus.CounterVec

	RenderLatency prometheus.Histogram
}

// New registers all collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Renders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credind_badge_renders_total",
			Help: "Total badge renders by outcome",
		}, []string{"outcome"}),

		Toggles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credind_indicator_toggles_total",
			Help: "Total indicator toggles by slug and new value",
		}, []string{"slug", "value"}),

		CatalogReloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credind_catalog_reloads_total",
			Help: "Total catalog file reloads by result",
		}, []string{"result"}),

		RenderLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "credind_badge_render_duration_seconds",
			Help:    "Duration of badge composition",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
	}
}

// ObserveRender records a badge render.
func (m *Metrics) ObserveRender(empty bool, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "rendered"
	if empty {
		outcome = "empty"
	}
	m.Renders.WithLabelValues(outcome).Inc()
	m.RenderLatency.Observe(d.Seconds())
}

// IncrementToggle records one toggle of slug to value.
func (m *Metrics) IncrementToggle(slug string, value bool) {
	if m == nil {
		return
	}
	v := "false"
	if value {
		v = "true"
	}
	m.Toggles.WithLabelValues(slug, v).Inc()
}

// IncrementCatalogReload records a catalog reload attempt.
func (m *Metrics) IncrementCatalogReload(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CatalogReloads.WithLabelValues(result).Inc()
}
