package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/tinyvue/pkg/reactive"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "tinyvue").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for computation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "tinyvue",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the tinyvue metrics. It is safe for concurrent use.
type Collector struct {
	cellsAllocated      prometheus.Counter
	triggers            prometheus.Counter
	replays             prometheus.Counter
	computationRuns     *prometheus.CounterVec
	computationDuration prometheus.Histogram
	cycles              prometheus.Counter
	liveClients         prometheus.Gauge
	broadcasts          prometheus.Counter
}

var _ reactive.Observer = (*Collector)(nil)

// New registers the tinyvue metrics and returns their collector.
// Registering twice against the same registry panics, as with promauto.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		cellsAllocated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cells_allocated_total",
			Help:        "Total number of reactive cells allocated",
			ConstLabels: config.ConstLabels,
		}),

		triggers: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "triggers_total",
			Help:        "Total number of writes that replayed at least one dependent",
			ConstLabels: config.ConstLabels,
		}),

		replays: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "replays_total",
			Help:        "Total number of dependents scheduled by triggers",
			ConstLabels: config.ConstLabels,
		}),

		computationRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "computation_runs_total",
			Help:        "Total number of computation runs by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		computationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "computation_duration_seconds",
			Help:        "Computation run duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		cycles: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cycles_total",
			Help:        "Total number of cyclic updates detected",
			ConstLabels: config.ConstLabels,
		}),

		liveClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_clients",
			Help:        "Number of connected live preview clients",
			ConstLabels: config.ConstLabels,
		}),

		broadcasts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "broadcasts_total",
			Help:        "Total number of renders pushed to live preview clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// =============================================================================
// reactive.Observer
// =============================================================================

// CellAllocated implements reactive.Observer.
func (c *Collector) CellAllocated(string) {
	c.cellsAllocated.Inc()
}

// CellTriggered implements reactive.Observer.
func (c *Collector) CellTriggered(_ string, dependents int) {
	c.triggers.Inc()
	c.replays.Add(float64(dependents))
}

// ComputationRan implements reactive.Observer. Computation names are not
// used as labels; they are unbounded.
func (c *Collector) ComputationRan(_ string, d time.Duration, failed bool) {
	status := "success"
	if failed {
		status = "error"
	}
	c.computationRuns.WithLabelValues(status).Inc()
	c.computationDuration.Observe(d.Seconds())
}

// CycleDetected implements reactive.Observer.
func (c *Collector) CycleDetected(*reactive.CycleError) {
	c.cycles.Inc()
}

// =============================================================================
// Preview recording
// =============================================================================

// RecordClientConnect records a live client joining.
func (c *Collector) RecordClientConnect() {
	c.liveClients.Inc()
}

// RecordClientDisconnect records a live client leaving.
func (c *Collector) RecordClientDisconnect() {
	c.liveClients.Dec()
}

// RecordBroadcast records one render pushed to n clients.
func (c *Collector) RecordBroadcast(n int) {
	c.broadcasts.Add(float64(n))
}
