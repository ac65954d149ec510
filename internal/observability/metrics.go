package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported on /metrics.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errors          *prometheus.CounterVec
	pipeline        *prometheus.CounterVec
	macros          *prometheus.CounterVec
	usersCreated    prometheus.Counter
}

// NewMetrics registers collectors on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_bridge_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contact_bridge_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_bridge_http_errors_total",
			Help: "HTTP error responses by route, method and error code.",
		}, []string{"route", "method", "code"}),
		pipeline: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_bridge_tickets_processed_total",
			Help: "Ticket pipeline runs by outcome.",
		}, []string{"outcome"}),
		macros: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_bridge_macro_applications_total",
			Help: "Macro applications by strategy or failure.",
		}, []string{"outcome"}),
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contact_bridge_users_created_total",
			Help: "End-users created in the helpdesk.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.requestDuration, m.errors, m.pipeline, m.macros, m.usersCreated,
	)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RecordPipeline counts a finished pipeline run.
func (m *Metrics) RecordPipeline(outcome string) {
	if m == nil {
		return
	}
	m.pipeline.WithLabelValues(outcome).Inc()
}

// RecordMacro counts a macro application attempt.
func (m *Metrics) RecordMacro(outcome string) {
	if m == nil {
		return
	}
	m.macros.WithLabelValues(outcome).Inc()
}

// RecordUserCreated counts a created helpdesk user.
func (m *Metrics) RecordUserCreated() {
	if m == nil {
		return
	}
	m.usersCreated.Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
