// Package metrics exposes Prometheus instrumentation for the analysis
// service: HTTP traffic, analysis throughput, per-stage latency, and the
// size of analyzed graphs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the application
type Registry struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Analysis metrics
	AnalysesTotal         *prometheus.CounterVec
	AnalysisDuration      prometheus.Histogram
	AnalysisStageDuration *prometheus.HistogramVec
	GraphNodes            prometheus.Histogram
	GraphEdges            prometheus.Histogram
}

// NewRegistry creates a Registry with all metrics registered on a private
// Prometheus registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.HTTPRequestsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphsight_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphsight_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestsInFlight = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphsight_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	r.AnalysesTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphsight_analyses_total",
			Help: "Total number of graph analyses",
		},
		[]string{"status"},
	)

	r.AnalysisDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphsight_analysis_duration_seconds",
			Help:    "End-to-end analysis latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	r.AnalysisStageDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphsight_analysis_stage_duration_seconds",
			Help:    "Per-stage analysis latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	r.GraphNodes = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphsight_graph_nodes",
			Help:    "Node count of analyzed graphs",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	r.GraphEdges = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphsight_graph_edges",
			Help:    "Edge count of analyzed graphs",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordAnalysis records a completed or failed analysis run
func (r *Registry) RecordAnalysis(status string, duration time.Duration, nodes, edges int) {
	r.AnalysesTotal.WithLabelValues(status).Inc()
	r.AnalysisDuration.Observe(duration.Seconds())
	r.GraphNodes.Observe(float64(nodes))
	r.GraphEdges.Observe(float64(edges))
}

// RecordStage records a single analysis stage's duration
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.AnalysisStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}
