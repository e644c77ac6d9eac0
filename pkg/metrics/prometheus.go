// Package metrics provides Prometheus metrics for the gradelens pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the gradelens service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Query lifecycle
	queriesTotal  prometheus.Counter
	queryErrors   *prometheus.CounterVec
	queryDuration prometheus.Histogram

	// Poller
	pollTicks            prometheus.Counter
	stabilizationSeconds prometheus.Histogram

	// Pipeline throughput
	coursesExtracted prometheus.Counter
	rowsReconciled   prometheus.Counter
	reconcileLatency prometheus.Histogram
	storeLoadLatency prometheus.Histogram

	// Presentation
	chartsRendered prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gradelens",
		subsystem:        "lookup",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.queriesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queries_total",
		Help:      "Total number of professor lookup queries started",
	})

	m.queryErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "query_errors_total",
		Help:      "Total number of failed queries, labeled by pipeline stage",
	}, []string{"stage"})

	m.queryDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "query_duration_seconds",
		Help:      "Histogram of end-to-end query duration in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.pollTicks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_ticks_total",
		Help:      "Total number of table snapshot samples taken by the poller",
	})

	m.stabilizationSeconds = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stabilization_seconds",
		Help:      "Histogram of time spent waiting for the course table to stabilize",
		Buckets:   m.histogramBuckets,
	})

	m.coursesExtracted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "courses_extracted_total",
		Help:      "Total number of course rows extracted from remote tables",
	})

	m.rowsReconciled = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_reconciled_total",
		Help:      "Total number of reconciled output rows produced",
	})

	m.reconcileLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reconcile_latency_milliseconds",
		Help:      "Histogram of reconciliation engine latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeLoadLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_load_latency_milliseconds",
		Help:      "Histogram of grade store load latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.chartsRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "charts_rendered_total",
		Help:      "Total number of distribution charts rendered",
	})
}

// RecordQuery increments the started-queries counter.
func RecordQuery() {
	globalManager.queriesTotal.Inc()
}

// RecordQueryError increments the failed-queries counter for a stage.
func RecordQueryError(stage string) {
	globalManager.queryErrors.WithLabelValues(stage).Inc()
}

// RecordQueryDuration records an end-to-end query duration in seconds.
func RecordQueryDuration(seconds float64) {
	globalManager.queryDuration.Observe(seconds)
}

// RecordPollTick increments the poll sample counter.
func RecordPollTick() {
	globalManager.pollTicks.Inc()
}

// RecordStabilization records the time one stabilization wait took.
func RecordStabilization(seconds float64) {
	globalManager.stabilizationSeconds.Observe(seconds)
}

// RecordCoursesExtracted adds to the extracted course row counter.
func RecordCoursesExtracted(count int) {
	globalManager.coursesExtracted.Add(float64(count))
}

// RecordRowsReconciled adds to the reconciled row counter.
func RecordRowsReconciled(count int) {
	globalManager.rowsReconciled.Add(float64(count))
}

// RecordReconcileLatency records engine latency in milliseconds.
func RecordReconcileLatency(latencyMs float64) {
	globalManager.reconcileLatency.Observe(latencyMs)
}

// RecordStoreLoadLatency records grade store load latency in milliseconds.
func RecordStoreLoadLatency(latencyMs float64) {
	globalManager.storeLoadLatency.Observe(latencyMs)
}

// RecordChartRendered increments the rendered chart counter.
func RecordChartRendered() {
	globalManager.chartsRendered.Inc()
}

// Handler returns the HTTP handler serving the custom registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
