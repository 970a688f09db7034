// internal/monitoring/metrics.go
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records pagination and history parsing in Prometheus collectors.
// It satisfies the scraper and history observer interfaces.
type Metrics struct {
	registry *prometheus.Registry

	pagesFetched     *prometheus.CounterVec
	entriesExtracted *prometheus.CounterVec
	fetchErrors      *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec
	terminations     *prometheus.CounterVec
	historyEvents    *prometheus.CounterVec
}

// MetricsConfig configures the collectors
type MetricsConfig struct {
	Namespace string
	// EnableGoMetrics adds the Go runtime and process collectors
	EnableGoMetrics bool
}

// NewMetrics creates the collectors on a private registry
func NewMetrics(config MetricsConfig) *Metrics {
	if config.Namespace == "" {
		config.Namespace = "weblist"
	}

	m := &Metrics{registry: prometheus.NewRegistry()}
	register := func(c prometheus.Collector) {
		m.registry.MustRegister(c)
	}

	m.pagesFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Name:      "pages_fetched_total",
		Help:      "Total number of list pages fetched",
	}, []string{"source"})

	m.entriesExtracted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Name:      "entries_extracted_total",
		Help:      "Total number of new entries added to result sets",
	}, []string{"source"})

	m.fetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Name:      "fetch_errors_total",
		Help:      "Total number of failed page fetches",
	}, []string{"source"})

	m.fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: config.Namespace,
		Name:      "page_fetch_duration_seconds",
		Help:      "Page fetch duration in seconds",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"source"})

	m.terminations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Name:      "pagination_terminations_total",
		Help:      "Total number of finished pagination runs by reason",
	}, []string{"source", "reason"})

	m.historyEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Name:      "history_events_total",
		Help:      "Total number of watch events parsed from history exports",
	}, []string{"format"})

	for _, c := range []prometheus.Collector{
		m.pagesFetched, m.entriesExtracted, m.fetchErrors,
		m.fetchDuration, m.terminations, m.historyEvents,
	} {
		register(c)
	}

	if config.EnableGoMetrics {
		register(collectors.NewGoCollector())
		register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	return m
}

// PageFetched records a successful page fetch
func (m *Metrics) PageFetched(source string, duration time.Duration) {
	m.pagesFetched.WithLabelValues(source).Inc()
	m.fetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// FetchFailed records a failed page fetch
func (m *Metrics) FetchFailed(source string) {
	m.fetchErrors.WithLabelValues(source).Inc()
}

// EntriesExtracted records entries newly added from a page
func (m *Metrics) EntriesExtracted(source string, count int) {
	m.entriesExtracted.WithLabelValues(source).Add(float64(count))
}

// Terminated records why a pagination run ended
func (m *Metrics) Terminated(source, reason string) {
	m.terminations.WithLabelValues(source, reason).Inc()
}

// HistoryParsed records the events read from a history export
func (m *Metrics) HistoryParsed(format string, events int) {
	m.historyEvents.WithLabelValues(format).Add(float64(events))
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
