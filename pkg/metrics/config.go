package metrics

import (
	"slices"

	"github.com/prometheus/client_golang/prometheus"

	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
)

const module = "metrics"

// sequenceLabel is the variable label carrying the name passed to Instrument.
const sequenceLabel = "sequence"

// Config controls how traversal metrics are registered.
type Config struct {
	// Enabled turns instrumentation on. A disabled config yields a nil Registry.
	Enabled bool

	// Registry receives the collectors. Nil means prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Namespace prefixes every metric name. Empty means DefaultNamespace.
	Namespace string

	// Labels are constant labels attached to every collector. They may not
	// use the "sequence" label, which names the instrumented sequence.
	Labels prometheus.Labels

	// DurationBuckets are the traversal_duration_seconds histogram buckets.
	// Nil means prometheus.DefBuckets. Traversals of infinite sequences cut
	// short by Take are usually sub-millisecond, so short-lived pipelines
	// benefit from prometheus.ExponentialBuckets starting in microseconds.
	DurationBuckets []float64
}

// DefaultConfig returns an enabled configuration on the default registerer.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		Registry:        prometheus.DefaultRegisterer,
		Namespace:       DefaultNamespace,
		DurationBuckets: prometheus.DefBuckets,
	}
}

// Validate reports a ValidationError for a reserved constant label or
// duration buckets that are not strictly increasing.
func (c Config) Validate() error {
	if _, ok := c.Labels[sequenceLabel]; ok {
		return lferrors.NewValidationError(module, "labels", c.Labels, "uses the reserved \"sequence\" label").
			WithHint("the sequence label is set per Instrument call")
	}
	for i := 1; i < len(c.DurationBuckets); i++ {
		if c.DurationBuckets[i] <= c.DurationBuckets[i-1] {
			return lferrors.NewValidationError(module, "duration_buckets", c.DurationBuckets, "must be strictly increasing")
		}
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Registry == nil {
		c.Registry = prometheus.DefaultRegisterer
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.DurationBuckets == nil {
		c.DurationBuckets = prometheus.DefBuckets
	} else {
		c.DurationBuckets = slices.Clone(c.DurationBuckets)
	}
	return c
}
