// Package metrics provides Prometheus metrics for attendance reconciliation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes used as the "outcome" label.
const (
	OutcomeOK        = "ok"
	OutcomeMalformed = "malformed"
	OutcomeError     = "error"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	scoreBuckets   []float64
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Reconciliation metrics
	runsTotal         *prometheus.CounterVec
	runLatency        prometheus.Histogram
	entriesDecided    *prometheus.CounterVec
	matchScore        prometheus.Histogram
	unmatchedNames    prometheus.Gauge
	malformedEntries  prometheus.Counter
	rowsLoaded        *prometheus.CounterVec
	resolveWorkers    prometheus.Gauge
	runHistoryEntries prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "attendsync",
		subsystem:      "reconcile",
		latencyBuckets: prometheus.DefBuckets,
		scoreBuckets:   prometheus.LinearBuckets(10, 10, 10),
		constLabels:    prometheus.Labels{},
		registry:       prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Total number of reconciliation runs by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.runLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_seconds",
		Help:        "Wall time of a reconciliation run",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	})

	m.entriesDecided = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "entries_decided_total",
		Help:        "Roster entries assigned an attendance status, by status",
		ConstLabels: m.constLabels,
	}, []string{"status"})

	m.matchScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "match_score",
		Help:        "Similarity score of accepted correspondences",
		Buckets:     m.scoreBuckets,
		ConstLabels: m.constLabels,
	})

	m.unmatchedNames = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "unmatched_names",
		Help:        "Export names no roster entry selected in the last run",
		ConstLabels: m.constLabels,
	})

	m.malformedEntries = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "malformed_entries_total",
		Help:        "Roster entries skipped because no full name could be derived",
		ConstLabels: m.constLabels,
	})

	m.rowsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_loaded_total",
		Help:        "Rows read from input files, by kind (source, roster)",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.resolveWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "resolve_workers",
		Help:        "Workers used by the most recent resolution pass",
		ConstLabels: m.constLabels,
	})

	m.runHistoryEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_history_entries",
		Help:        "Runs currently retained in history",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total number of HTTP requests by endpoint, method and status code",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_seconds",
		Help:        "HTTP request latency by endpoint, method and status code",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordRun counts a finished run and observes its wall time in seconds.
func (m *Manager) RecordRun(outcome string, seconds float64) {
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.runLatency.Observe(seconds)
}

// RecordDecision counts one roster entry decision.
func (m *Manager) RecordDecision(status string) {
	m.entriesDecided.WithLabelValues(status).Inc()
}

// RecordMatchScore observes the score of an accepted correspondence.
func (m *Manager) RecordMatchScore(score float64) {
	m.matchScore.Observe(score)
}

// SetUnmatchedNames sets the unmatched-name count of the last run.
func (m *Manager) SetUnmatchedNames(n int) {
	m.unmatchedNames.Set(float64(n))
}

// RecordMalformedEntries adds skipped roster entries.
func (m *Manager) RecordMalformedEntries(n int) {
	m.malformedEntries.Add(float64(n))
}

// RecordRowsLoaded adds rows read from an input of the given kind.
func (m *Manager) RecordRowsLoaded(kind string, n int) {
	m.rowsLoaded.WithLabelValues(kind).Add(float64(n))
}

// SetResolveWorkers records the worker count of the latest resolution pass.
func (m *Manager) SetResolveWorkers(n int) {
	m.resolveWorkers.Set(float64(n))
}

// SetRunHistoryEntries records how many runs history holds.
func (m *Manager) SetRunHistoryEntries(n int) {
	m.runHistoryEntries.Set(float64(n))
}

// RecordHTTPRequest counts a request and observes its latency in seconds.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, seconds float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
}

// Package-level helpers delegate to the global manager.

// RecordRun counts a finished run on the global manager.
func RecordRun(outcome string, seconds float64) { globalManager.RecordRun(outcome, seconds) }

// RecordDecision counts one decision on the global manager.
func RecordDecision(status string) { globalManager.RecordDecision(status) }

// RecordMatchScore observes a score on the global manager.
func RecordMatchScore(score float64) { globalManager.RecordMatchScore(score) }

// SetUnmatchedNames sets the unmatched gauge on the global manager.
func SetUnmatchedNames(n int) { globalManager.SetUnmatchedNames(n) }

// RecordMalformedEntries adds skipped entries on the global manager.
func RecordMalformedEntries(n int) { globalManager.RecordMalformedEntries(n) }

// RecordRowsLoaded adds loaded rows on the global manager.
func RecordRowsLoaded(kind string, n int) { globalManager.RecordRowsLoaded(kind, n) }

// SetResolveWorkers sets the worker gauge on the global manager.
func SetResolveWorkers(n int) { globalManager.SetResolveWorkers(n) }

// SetRunHistoryEntries sets the history gauge on the global manager.
func SetRunHistoryEntries(n int) { globalManager.SetRunHistoryEntries(n) }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, seconds float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, seconds)
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
