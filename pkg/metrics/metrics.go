// Package metrics holds the prometheus collectors for the catalog and API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "setforge"

// Metrics groups every collector on its own registry
type Metrics struct {
	registry *prometheus.Registry

	entityWrites    *prometheus.CounterVec
	reportsComputed prometheus.Counter
	reportDuration  prometheus.Histogram
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		entityWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_writes_total",
			Help:      "Successful create, update and delete operations by entity kind.",
		}, []string{"kind", "op"}),
		reportsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "number_crunch_reports_total",
			Help:      "Number crunch reports computed.",
		}),
		reportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "number_crunch_duration_seconds",
			Help:      "Time spent loading cards and computing a number crunch report.",
			Buckets:   prometheus.DefBuckets,
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request latency by route pattern and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.entityWrites,
		m.reportsComputed,
		m.reportDuration,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry exposes the registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// EntityWritten counts one successful write. kind is set, card or archetype.
func (m *Metrics) EntityWritten(kind, op string) {
	if m == nil {
		return
	}
	m.entityWrites.WithLabelValues(kind, op).Inc()
}

// ReportComputed records one number crunch run
func (m *Metrics) ReportComputed(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.reportsComputed.Inc()
	m.reportDuration.Observe(elapsed.Seconds())
}

// ObserveRequest records one API request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
