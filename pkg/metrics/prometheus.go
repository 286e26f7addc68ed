// Package metrics provides Prometheus metrics for the carta interpretation service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Interpretation pipeline
	interpretations   *prometheus.CounterVec
	interpretLatency  *prometheus.HistogramVec
	eventsExtracted   *prometheus.CounterVec
	eventsLicensed    *prometheus.CounterVec
	eventsUnlicensed  *prometheus.CounterVec
	eventsFiltered    *prometheus.CounterVec
	complexRulesFired *prometheus.CounterVec
	calendarEvents    *prometheus.CounterVec

	// Knowledge base
	kbLookups *prometheus.CounterVec
	kbEntries *prometheus.GaugeVec
	kbTitles  *prometheus.GaugeVec

	// Rewriter
	rewriteLatency *prometheus.HistogramVec
	rewriteErrors  *prometheus.CounterVec

	// Worker pool
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "carta",
		subsystem:        "interpreter",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) gaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.interpretations = m.counterVec("interpretations_total",
		"Total number of chart interpretations served", "chart_type")
	m.interpretLatency = m.histogramVec("interpret_latency_milliseconds",
		"Latency of a full interpretation including rewrites", "chart_type")
	m.eventsExtracted = m.counterVec("events_extracted_total",
		"Atomic events extracted from charts", "kind")
	m.eventsLicensed = m.counterVec("events_licensed_total",
		"Events whose query matched a target title", "kind")
	m.eventsUnlicensed = m.counterVec("events_unlicensed_total",
		"Events dropped because no target title licensed them", "kind")
	m.eventsFiltered = m.counterVec("events_filtered_total",
		"Simple events suppressed by a negative filter", "kind")
	m.complexRulesFired = m.counterVec("complex_rules_fired_total",
		"Complex aspect rules that fired", "rule")
	m.calendarEvents = m.counterVec("calendar_events_total",
		"Calendar events interpreted", "matched")

	m.kbLookups = m.counterVec("kb_lookups_total",
		"Knowledge base lookups by base and result", "base", "result")
	m.kbEntries = m.gaugeVec("kb_entries",
		"Entries loaded per knowledge base", "base")
	m.kbTitles = m.gaugeVec("target_titles",
		"Target titles loaded per chart type", "chart_type")

	m.rewriteLatency = m.histogramVec("rewrite_latency_milliseconds",
		"Latency of text rewrite calls", "stage")
	m.rewriteErrors = m.counterVec("rewrite_errors_total",
		"Failed text rewrite calls", "stage")

	m.workerActiveCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.name("worker_active_count"),
		Help:      "Jobs currently running on the worker pool",
	})
	m.workerProcessingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.name("worker_processing_latency_milliseconds"),
		Help:      "Per-job processing latency on the worker pool",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", "endpoint", "method", "status_code")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.name("system_memory_usage_bytes"),
		Help:      "System memory usage in bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.name("system_goroutine_count"),
		Help:      "Number of goroutines",
	})
}

// RecordInterpretation counts a served interpretation and its latency.
func RecordInterpretation(chartType string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.interpretations.WithLabelValues(chartType).Inc()
	globalManager.interpretLatency.WithLabelValues(chartType).Observe(latencyMs)
}

// RecordEventExtracted counts one extracted event of the given kind.
func RecordEventExtracted(kind string) {
	globalManager.eventsExtracted.WithLabelValues(kind).Inc()
}

// RecordEventLicensed counts an event licensed by the target titles.
func RecordEventLicensed(kind string) {
	globalManager.eventsLicensed.WithLabelValues(kind).Inc()
}

// RecordEventUnlicensed counts an event dropped by the allow-list.
func RecordEventUnlicensed(kind string) {
	globalManager.eventsUnlicensed.WithLabelValues(kind).Inc()
}

// RecordEventFiltered counts an event suppressed by a negative filter.
func RecordEventFiltered(kind string) {
	globalManager.eventsFiltered.WithLabelValues(kind).Inc()
}

// RecordComplexRule counts a fired complex rule.
func RecordComplexRule(rule string) {
	globalManager.complexRulesFired.WithLabelValues(rule).Inc()
}

// RecordCalendarEvent counts an interpreted calendar event.
func RecordCalendarEvent(matched bool) {
	label := "false"
	if matched {
		label = "true"
	}
	globalManager.calendarEvents.WithLabelValues(label).Inc()
}

// RecordKBLookup counts a lookup against base; result is "hit" or "miss".
func RecordKBLookup(base, result string) {
	globalManager.kbLookups.WithLabelValues(base, result).Inc()
}

// UpdateKBEntries sets the loaded entry count for base.
func UpdateKBEntries(base string, count int) {
	globalManager.kbEntries.WithLabelValues(base).Set(float64(count))
}

// UpdateTargetTitles sets the loaded title count for a chart type.
func UpdateTargetTitles(chartType string, count int) {
	globalManager.kbTitles.WithLabelValues(chartType).Set(float64(count))
}

// RecordRewriteLatency records a rewrite call latency for stage ("item" or "narrative").
func RecordRewriteLatency(stage string, latencyMs float64) {
	globalManager.rewriteLatency.WithLabelValues(stage).Observe(latencyMs)
}

// RecordRewriteError counts a failed rewrite call.
func RecordRewriteError(stage string) {
	globalManager.rewriteErrors.WithLabelValues(stage).Inc()
}

// UpdateWorkerActiveCount adds delta to the running job gauge.
func UpdateWorkerActiveCount(delta int) {
	globalManager.workerActiveCount.Add(float64(delta))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records errors by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage updates the system memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry for metrics exposure.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
