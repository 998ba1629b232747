/*
Package observability provides Prometheus instrumentation for the arbor
engine, exposed by the HTTP adapter's /metrics endpoint.
*/
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the engine's Prometheus collectors.
type Metrics struct {
	RendersTotal   *prometheus.CounterVec
	RenderDuration prometheus.Histogram
	NodesEmitted   prometheus.Counter
	ResolveErrors  prometheus.Counter
}

// NewMetrics creates and registers the collectors on reg. Passing
// prometheus.DefaultRegisterer wires them into the default exposition.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arbor",
			Name:      "renders_total",
			Help:      "Completed render passes, by outcome.",
		}, []string{"outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "arbor",
			Name:      "render_duration_seconds",
			Help:      "Wall time of one render pass.",
			Buckets:   prometheus.DefBuckets,
		}),
		NodesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arbor",
			Name:      "nodes_emitted_total",
			Help:      "Traversal nodes emitted across all render passes.",
		}),
		ResolveErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arbor",
			Name:      "resolve_errors_total",
			Help:      "Targets that could not be resolved to a live entity.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.RendersTotal, m.RenderDuration, m.NodesEmitted, m.ResolveErrors)
	}
	return m
}

// ObserveRender records one completed render pass.
func (m *Metrics) ObserveRender(start time.Time, nodes int, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.RendersTotal.WithLabelValues(outcome).Inc()
	m.RenderDuration.Observe(time.Since(start).Seconds())
	m.NodesEmitted.Add(float64(nodes))
}
