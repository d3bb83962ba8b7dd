// Package metrics holds the Prometheus instrumentation for the
// document service. The registry is owned by the Metrics value and
// injected where needed; there is no package-level state.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Document type labels.
const (
	DocTypePDF     = "pdf"
	DocTypeDOCX    = "docx"
	DocTypeArchive = "zip"
)

// Metrics holds all Prometheus metrics for the document service.
type Metrics struct {
	DocumentsTotal          *prometheus.CounterVec
	DocumentDurationSeconds *prometheus.HistogramVec

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec
	RequestsInFlight           prometheus.Gauge

	registry *prometheus.Registry
}

// New creates a Metrics instance with all metrics registered on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		DocumentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loigen_documents_total",
				Help: "Total number of document operations by type and outcome",
			},
			[]string{"type", "status"},
		),
		DocumentDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loigen_document_duration_seconds",
				Help:    "Duration of document operations by type",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loigen_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loigen_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "loigen_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.DocumentsTotal,
		m.DocumentDurationSeconds,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		m.RequestsInFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the scrape endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveDocument records one document operation. Safe on a nil
// receiver so callers need not guard for disabled metrics.
func (m *Metrics) ObserveDocument(docType string, err error, seconds float64) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DocumentsTotal.WithLabelValues(docType, status).Inc()
	m.DocumentDurationSeconds.WithLabelValues(docType).Observe(seconds)
}
