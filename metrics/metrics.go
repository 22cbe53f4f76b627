// Package metrics exports reactive runtime activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AnatoleLucet/sigcore"
)

// Config configures the Prometheus collector.
type Config struct {
	// Namespace is the metrics namespace (default: "sigcore").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration.
	// Default: exponential from 1µs to ~1s.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus collector.
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

// WithBuckets sets the flush duration histogram buckets.
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
		Namespace: "sigcore",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 11),
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector is a sigcore.Observer recording runtime events.
// Register it with sigcore.WithObserver.
type Collector struct {
	writes        prometheus.Counter
	recomputes    prometheus.Counter
	callbacks     *prometheus.CounterVec
	panics        *prometheus.CounterVec
	flushes       prometheus.Counter
	flushDuration prometheus.Histogram
}

var _ sigcore.Observer = (*Collector)(nil)

// NewCollector creates the collector and registers its metrics.
//
// Metrics collected:
//   - sigcore_signal_writes_total: writes that changed a signal's value
//   - sigcore_recomputes_total: computed evaluations
//   - sigcore_callbacks_total: callbacks run by flushes, by kind
//   - sigcore_panics_total: callbacks that panicked, by kind
//   - sigcore_flushes_total: completed flushes
//   - sigcore_flush_duration_seconds: flush duration
func NewCollector(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		writes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signal_writes_total",
			Help:        "Total number of writes that changed a signal value",
			ConstLabels: config.ConstLabels,
		}),

		recomputes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "recomputes_total",
			Help:        "Total number of computed evaluations",
			ConstLabels: config.ConstLabels,
		}),

		callbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "callbacks_total",
			Help:        "Total number of callbacks run, by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		panics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "panics_total",
			Help:        "Total number of callbacks that panicked, by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of completed flushes",
			ConstLabels: config.ConstLabels,
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Flush duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

func (c *Collector) SignalWritten(string) {
	c.writes.Inc()
}

func (c *Collector) Recomputed(string) {
	c.recomputes.Inc()
}

func (c *Collector) CallbackRan(kind sigcore.Kind) {
	c.callbacks.WithLabelValues(kind.String()).Inc()
}

func (c *Collector) Flushed(_ int, elapsed time.Duration) {
	c.flushes.Inc()
	c.flushDuration.Observe(elapsed.Seconds())
}

func (c *Collector) Panicked(kind sigcore.Kind, _ *sigcore.PanicError) {
	c.panics.WithLabelValues(kind.String()).Inc()
}
