// Package metrics provides Prometheus instrumentation for orlando pipelines.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metric instances for pipeline runs.
type Registry struct {
	RunsTotal       *prometheus.CounterVec
	ElementsPulled  *prometheus.CounterVec
	ElementsEmitted *prometheus.CounterVec
	EarlyStops      *prometheus.CounterVec
	CallableErrors  *prometheus.CounterVec
	FusedOperations *prometheus.CounterVec
	RunDuration     *prometheus.HistogramVec
}

// NewRegistry creates a metrics registry in the default namespace.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithConfig(Config{Registry: reg})
}

// NewRegistryWithConfig creates a metrics registry using the registerer,
// namespace and constant labels of cfg.
//
// Collectors already registered under the same names, help texts and
// constant labels are reused, so several registries built from one
// configuration share their series. Any other registration conflict
// panics.
func NewRegistryWithConfig(cfg Config) *Registry {
	cfg = cfg.withDefaults()
	reg := cfg.Registry
	ns := cfg.Namespace

	return &Registry{
		RunsTotal: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "pipeline",
				Name:        "runs_total",
				Help:        "Total number of terminal calls",
				ConstLabels: cfg.Labels,
			},
			[]string{"pipeline", "collector"},
		)),

		ElementsPulled: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "pipeline",
				Name:        "elements_pulled_total",
				Help:        "Total number of source elements pulled",
				ConstLabels: cfg.Labels,
			},
			[]string{"pipeline"},
		)),

		ElementsEmitted: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "pipeline",
				Name:        "elements_emitted_total",
				Help:        "Total number of values that reached the collector",
				ConstLabels: cfg.Labels,
			},
			[]string{"pipeline"},
		)),

		EarlyStops: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "pipeline",
				Name:        "early_stops_total",
				Help:        "Total number of runs that stopped before the source was exhausted",
				ConstLabels: cfg.Labels,
			},
			[]string{"pipeline"},
		)),

		CallableErrors: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "pipeline",
				Name:        "callable_errors_total",
				Help:        "Total number of runs aborted by a caller-supplied function",
				ConstLabels: cfg.Labels,
			},
			[]string{"pipeline", "operation"},
		)),

		FusedOperations: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "pipeline",
				Name:        "fused_operations_total",
				Help:        "Total number of map and filter pairs fused at build time",
				ConstLabels: cfg.Labels,
			},
			[]string{"pipeline"},
		)),

		RunDuration: register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   ns,
				Subsystem:   "pipeline",
				Name:        "run_duration_seconds",
				Help:        "Time spent in terminal calls",
				Buckets:     cfg.DurationBuckets,
				ConstLabels: cfg.Labels,
			},
			[]string{"pipeline", "collector"},
		)),
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// RunStats summarizes one terminal call.
type RunStats struct {
	Pipeline  string
	Collector string
	Pulled    int
	Emitted   int
	Stopped   bool
	Failed    string // operation kind that returned an error, if any
	Duration  time.Duration
}

// ObserveRun records one terminal call. A nil Registry records nothing.
func (r *Registry) ObserveRun(s RunStats) {
	if r == nil {
		return
	}
	r.RunsTotal.WithLabelValues(s.Pipeline, s.Collector).Inc()
	r.ElementsPulled.WithLabelValues(s.Pipeline).Add(float64(s.Pulled))
	r.ElementsEmitted.WithLabelValues(s.Pipeline).Add(float64(s.Emitted))
	if s.Stopped {
		r.EarlyStops.WithLabelValues(s.Pipeline).Inc()
	}
	if s.Failed != "" {
		r.CallableErrors.WithLabelValues(s.Pipeline, s.Failed).Inc()
	}
	r.RunDuration.WithLabelValues(s.Pipeline, s.Collector).Observe(s.Duration.Seconds())
}

// ObserveFusion records a fusion rewrite made while building a pipeline.
func (r *Registry) ObserveFusion(pipeline string) {
	if r == nil {
		return
	}
	r.FusedOperations.WithLabelValues(pipeline).Inc()
}
