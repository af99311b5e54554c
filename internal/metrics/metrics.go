// Package metrics exposes the prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	upstreamQueries *prometheus.CounterVec
	tipSubmissions  *prometheus.CounterVec
	rateLimitKeys   prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registers the collectors with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{gatherer: reg}
	m.upstreamQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ivarberg",
		Name:      "upstream_queries_total",
		Help:      "Event store queries by operation and outcome",
	}, []string{"source", "op", "status"})
	m.tipSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ivarberg",
		Name:      "tip_submissions_total",
		Help:      "Event tip submissions by outcome",
	}, []string{"outcome"})
	m.rateLimitKeys = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ivarberg",
		Name:      "rate_limit_keys",
		Help:      "Submitter windows held by the in-process limiter after the last sweep",
	})
	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ivarberg",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ivarberg",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	reg.MustRegister(
		m.upstreamQueries, m.tipSubmissions, m.rateLimitKeys,
		m.httpRequests, m.httpDuration,
	)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// UpstreamQuery counts one query against the event store.
func (m *Metrics) UpstreamQuery(source, op string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.upstreamQueries.WithLabelValues(source, op, status).Inc()
}

// TipSubmission counts a tip submission outcome.
func (m *Metrics) TipSubmission(outcome string) {
	if m == nil {
		return
	}
	m.tipSubmissions.WithLabelValues(outcome).Inc()
}

// RateLimitKeys records the number of live limiter windows.
func (m *Metrics) RateLimitKeys(n int) {
	if m == nil {
		return
	}
	m.rateLimitKeys.Set(float64(n))
}

// HTTPRequest records a served request.
func (m *Metrics) HTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}
