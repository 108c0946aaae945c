// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a registry and the counters recorded against it.
type Collector struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	queueEntriesCreated *prometheus.CounterVec
	queueTransitions    *prometheus.CounterVec
	authAttemptsTotal   *prometheus.CounterVec
}

// NewCollector creates a collector on a fresh registry that also carries the
// Go runtime and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		queueEntriesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "queue_entries_created_total",
				Help: "Total number of queue registrations",
			},
			[]string{"clinic_id"},
		),
		queueTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "queue_transitions_total",
				Help: "Total number of queue status transitions by target status",
			},
			[]string{"status"},
		),
		authAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"status"},
		),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.httpRequestsTotal,
		c.httpRequestDuration,
		c.queueEntriesCreated,
		c.queueTransitions,
		c.authAttemptsTotal,
	)
	return c
}

// RegisterDB adds connection pool gauges for db.
func (c *Collector) RegisterDB(db *sql.DB, name string) error {
	return c.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordHTTPRequest records one served request. path is the route template,
// not the raw URL.
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (c *Collector) RecordQueueCreated(clinicID string) {
	c.queueEntriesCreated.WithLabelValues(clinicID).Inc()
}

func (c *Collector) RecordQueueTransition(status string) {
	c.queueTransitions.WithLabelValues(status).Inc()
}

func (c *Collector) RecordAuthAttempt(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	c.authAttemptsTotal.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
