// Package kmetrics exposes scheduler-internal counters as Prometheus
// instruments, grounded on perkeep-perkeep's use of
// github.com/prometheus/client_golang for its own server metrics.
// There is no network stack in scope for this kernel, so these are
// dumped via Snapshot rather than scraped over HTTP.
package kmetrics

import (
	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the counters/gauges the scheduler and dispatcher
// update on every tick and dispatch.
type Metrics struct {
	Ticks      prometheus.Counter
	Dispatches *prometheus.CounterVec
	LastScore  *prometheus.GaugeVec
	registry   *prometheus.Registry
}

// New registers a fresh set of scheduler metrics in their own
// registry (not the global DefaultRegisterer, since multiple kernel
// instances may coexist in tests).
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "armkernel_ticks_total",
			Help: "Total number of timer ticks observed.",
		}),
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "armkernel_dispatches_total",
			Help: "Total number of times a PID was dispatched onto the CPU.",
		}, []string{"pid"}),
		LastScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "armkernel_last_priority_score",
			Help: "Most recently computed scheduler priority score per PID.",
		}, []string{"pid"}),
	}

	reg.MustRegister(m.Ticks, m.Dispatches, m.LastScore)
	return m
}

// Registry returns the metrics registry, so a caller that does want to
// serve /metrics over HTTP can do so.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Snapshot gathers the current metric families for inspection without
// standing up an HTTP server.
func (m *Metrics) Snapshot() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}
