package search

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics collects search statistics for Prometheus.
//
// Metrics exposed (all namespaced with "statesearch_"):
//
//  1. states_generated_total (counter, strategy): child nodes produced.
//  2. states_expanded_total (counter, strategy): distinct states expanded.
//  3. duplicates_discarded_total (counter, strategy): nodes dropped by the
//     duplicate cache.
//  4. frontier_depth (gauge): nodes waiting in the frontier of the most
//     recently updated search.
//  5. searches_total (counter, strategy, outcome): finished searches, outcome
//     is "solved" or "exhausted".
//  6. search_duration_ms (histogram, strategy): wall-clock search time.
//  7. expansion_batch_size (histogram, strategy): children per parallel batch.
//  8. workers_active (gauge): parallel workers currently building a child.
//
// Usage:
//
//	registry := prometheus.NewRegistry()
//	metrics := search.NewPrometheusMetrics(registry)
//	engine, err := search.New(space, search.WithMetrics(metrics))
//
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// All methods are safe for concurrent use and for a nil receiver.
type PrometheusMetrics struct {
	generated     *prometheus.CounterVec
	expanded      *prometheus.CounterVec
	duplicates    *prometheus.CounterVec
	frontierDepth prometheus.Gauge
	searches      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	batchSize     *prometheus.HistogramVec
	workersActive prometheus.Gauge

	registry prometheus.Registerer

	mu      sync.RWMutex
	enabled bool
}

// NewPrometheusMetrics creates and registers all search metrics with registry.
// A nil registry selects prometheus.DefaultRegisterer.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	pm := &PrometheusMetrics{
		registry: registry,
		enabled:  true,
	}

	pm.generated = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "statesearch",
		Name:      "states_generated_total",
		Help:      "Child nodes produced by expansions, duplicates included",
	}, []string{"strategy"})

	pm.expanded = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "statesearch",
		Name:      "states_expanded_total",
		Help:      "Distinct states expanded",
	}, []string{"strategy"})

	pm.duplicates = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "statesearch",
		Name:      "duplicates_discarded_total",
		Help:      "Nodes discarded because their state was already expanded",
	}, []string{"strategy"})

	pm.frontierDepth = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "statesearch",
		Name:      "frontier_depth",
		Help:      "Nodes waiting in the frontier",
	})

	pm.searches = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "statesearch",
		Name:      "searches_total",
		Help:      "Finished searches by outcome",
	}, []string{"strategy", "outcome"}) // outcome: solved, exhausted

	pm.duration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "statesearch",
		Name:      "search_duration_ms",
		Help:      "Search wall-clock duration in milliseconds",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000, 60000},
	}, []string{"strategy"})

	pm.batchSize = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "statesearch",
		Name:      "expansion_batch_size",
		Help:      "Children produced per parallel expansion batch",
		Buckets:   prometheus.LinearBuckets(1, 2, 10),
	}, []string{"strategy"})

	pm.workersActive = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "statesearch",
		Name:      "workers_active",
		Help:      "Parallel expansion workers currently building a child node",
	})

	return pm
}

func (pm *PrometheusMetrics) on() bool {
	if pm == nil {
		return false
	}
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// RecordExpansion adds one expansion and the children it produced.
func (pm *PrometheusMetrics) RecordExpansion(strategy Strategy, children int) {
	if !pm.on() {
		return
	}
	label := strategy.String()
	pm.expanded.WithLabelValues(label).Inc()
	pm.generated.WithLabelValues(label).Add(float64(children))
}

// RecordDuplicates adds n discarded duplicate nodes.
func (pm *PrometheusMetrics) RecordDuplicates(strategy Strategy, n int) {
	if !pm.on() || n == 0 {
		return
	}
	pm.duplicates.WithLabelValues(strategy.String()).Add(float64(n))
}

// UpdateFrontierDepth sets the frontier_depth gauge.
func (pm *PrometheusMetrics) UpdateFrontierDepth(depth int) {
	if !pm.on() {
		return
	}
	pm.frontierDepth.Set(float64(depth))
}

// RecordSearch counts a finished search and observes its duration.
func (pm *PrometheusMetrics) RecordSearch(strategy Strategy, solved bool, elapsed time.Duration) {
	if !pm.on() {
		return
	}
	outcome := "exhausted"
	if solved {
		outcome = "solved"
	}
	label := strategy.String()
	pm.searches.WithLabelValues(label, outcome).Inc()
	pm.duration.WithLabelValues(label).Observe(float64(elapsed.Milliseconds()))
}

// RecordBatch observes the size of one parallel expansion batch.
func (pm *PrometheusMetrics) RecordBatch(strategy Strategy, size int) {
	if !pm.on() {
		return
	}
	pm.batchSize.WithLabelValues(strategy.String()).Observe(float64(size))
}

// WorkerStarted increments workers_active.
func (pm *PrometheusMetrics) WorkerStarted() {
	if !pm.on() {
		return
	}
	pm.workersActive.Inc()
}

// WorkerFinished decrements workers_active.
func (pm *PrometheusMetrics) WorkerFinished() {
	if !pm.on() {
		return
	}
	pm.workersActive.Dec()
}

// Disable temporarily disables metric recording (useful for testing).
func (pm *PrometheusMetrics) Disable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = false
}

// Enable re-enables metric recording after Disable().
func (pm *PrometheusMetrics) Enable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = true
}

// Reset clears the gauges. Counters and histograms are cumulative and keep
// their values.
func (pm *PrometheusMetrics) Reset() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.frontierDepth.Set(0)
	pm.workersActive.Set(0)
}
