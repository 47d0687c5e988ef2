package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every orlando metric name.
const DefaultNamespace = "orlando"

// DefaultDurationBuckets spans 10µs to roughly 2.6s. Most runs over
// in-memory sources finish at the low end.
var DefaultDurationBuckets = prometheus.ExponentialBuckets(0.00001, 4, 10)

// Config selects where pipeline metrics are registered and how they are
// named.
type Config struct {
	// Enabled is read by callers deciding whether to build a Registry at
	// all; NewRegistryWithConfig ignores it.
	Enabled bool

	// Registry receives the collectors. Nil means prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Namespace replaces "orlando" as the metric name prefix.
	Namespace string

	// Labels are constant labels attached to every series, e.g. the
	// service that embeds the engine.
	Labels prometheus.Labels

	// DurationBuckets are the run_duration_seconds histogram buckets.
	DurationBuckets []float64
}

// DefaultConfig returns a default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		Registry:        prometheus.DefaultRegisterer,
		Namespace:       DefaultNamespace,
		DurationBuckets: DefaultDurationBuckets,
	}
}

func (c Config) withDefaults() Config {
	if c.Registry == nil {
		c.Registry = prometheus.DefaultRegisterer
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if len(c.DurationBuckets) == 0 {
		c.DurationBuckets = DefaultDurationBuckets
	}
	return c
}
