package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric unless Config.Namespace overrides it.
const DefaultNamespace = "lazyflow"

// Registry holds all metric instances for instrumented sequences.
// A nil *Registry is valid and records nothing.
type Registry struct {
	Traversals        *prometheus.CounterVec
	Elements          *prometheus.CounterVec
	Errors            *prometheus.CounterVec
	ActiveTraversals  *prometheus.GaugeVec
	TraversalDuration *prometheus.HistogramVec
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns a registry bound to prometheus.DefaultRegisterer, created on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return newRegistry(Config{Registry: reg}.withDefaults())
}

// NewRegistryWithConfig creates a registry from config. It returns nil when
// metrics are disabled, and panics on an invalid config the way promauto
// panics on a conflicting registration.
func NewRegistryWithConfig(config Config) *Registry {
	if !config.Enabled {
		return nil
	}
	if err := config.Validate(); err != nil {
		panic(err)
	}
	return newRegistry(config.withDefaults())
}

func newRegistry(config Config) *Registry {
	factory := promauto.With(config.Registry)
	namespace, labels := config.Namespace, config.Labels

	return &Registry{
		Traversals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "sequence",
				Name:        "traversals_total",
				Help:        "Total number of sequence traversals started",
				ConstLabels: labels,
			},
			[]string{sequenceLabel},
		),

		Elements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "sequence",
				Name:        "elements_total",
				Help:        "Total number of elements yielded by sequences",
				ConstLabels: labels,
			},
			[]string{sequenceLabel},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "sequence",
				Name:        "errors_total",
				Help:        "Total number of traversals that ended with an error",
				ConstLabels: labels,
			},
			[]string{sequenceLabel},
		),

		ActiveTraversals: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Subsystem:   "sequence",
				Name:        "active_traversals",
				Help:        "Number of traversals currently in progress",
				ConstLabels: labels,
			},
			[]string{sequenceLabel},
		),

		TraversalDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Subsystem:   "sequence",
				Name:        "traversal_duration_seconds",
				Help:        "Time from cursor creation to cursor close",
				Buckets:     config.DurationBuckets,
				ConstLabels: labels,
			},
			[]string{sequenceLabel},
		),
	}
}

// Traversal records the lifetime of one cursor. A nil *Traversal is valid.
type Traversal struct {
	registry *Registry
	name     string
	started  time.Time
	failed   bool
	done     bool
}

// StartTraversal counts a new traversal of the named sequence and marks it active.
func (r *Registry) StartTraversal(name string) *Traversal {
	if r == nil {
		return nil
	}
	r.Traversals.WithLabelValues(name).Inc()
	r.ActiveTraversals.WithLabelValues(name).Inc()
	return &Traversal{registry: r, name: name, started: time.Now()}
}

// Element counts one yielded element.
func (t *Traversal) Element() {
	if t == nil {
		return
	}
	t.registry.Elements.WithLabelValues(t.name).Inc()
}

// Fail counts the traversal as failed. Only the first call has an effect.
func (t *Traversal) Fail() {
	if t == nil || t.failed {
		return
	}
	t.failed = true
	t.registry.Errors.WithLabelValues(t.name).Inc()
}

// Finish records the duration and clears the active mark. Later calls are no-ops.
func (t *Traversal) Finish() {
	if t == nil || t.done {
		return
	}
	t.done = true
	t.registry.ActiveTraversals.WithLabelValues(t.name).Dec()
	t.registry.TraversalDuration.WithLabelValues(t.name).Observe(time.Since(t.started).Seconds())
}
