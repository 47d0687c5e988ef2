// Package metrics provides Prometheus instrumentation for orlando pipelines.
//
// # Overview
//
// A Registry counts what pipeline terminal calls do:
//   - runs per pipeline and collector
//   - source elements pulled and values emitted
//   - runs that stopped early (Take, TakeWhile, First)
//   - runs aborted by an error from a caller-supplied function
//   - map and filter pairs fused at build time
//   - time spent per run
//
// # Quick Start
//
// Attach a registry when building a pipeline:
//
//	reg := metrics.NewRegistry(prometheus.NewRegistry())
//	p := pipeline.New(pipeline.WithMetrics(reg, "orders")).
//		Map(parse).
//		Filter(valid)
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Available Metrics
//
//   - orlando_pipeline_runs_total{pipeline,collector}
//   - orlando_pipeline_elements_pulled_total{pipeline}
//   - orlando_pipeline_elements_emitted_total{pipeline}
//   - orlando_pipeline_early_stops_total{pipeline}
//   - orlando_pipeline_callable_errors_total{pipeline,operation}
//   - orlando_pipeline_fused_operations_total{pipeline}
//   - orlando_pipeline_run_duration_seconds{pipeline,collector}
//
// # Configuration
//
//	config := metrics.Config{
//		Enabled:   true,
//		Registry:  prometheus.NewRegistry(),
//		Namespace: "myapp",
//		Labels:    prometheus.Labels{"version": "1.0"},
//	}
//	reg := metrics.NewRegistryWithConfig(config)
//
// Recording has no background goroutines; counters are updated once per
// terminal call, never per element.
package metrics
