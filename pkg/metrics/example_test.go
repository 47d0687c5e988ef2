package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Example_basicUsage records one pipeline run.
func Example_basicUsage() {
	registry := NewRegistry(prometheus.NewRegistry())

	registry.ObserveRun(RunStats{
		Pipeline:  "orders",
		Collector: "to_array",
		Pulled:    15,
		Emitted:   5,
		Stopped:   true,
		Duration:  time.Millisecond,
	})

	fmt.Println(testutil.ToFloat64(registry.ElementsPulled.WithLabelValues("orders")))
	fmt.Println(testutil.ToFloat64(registry.EarlyStops.WithLabelValues("orders")))
	// Output:
	// 15
	// 1
}

// Example_customRegistry uses a custom namespace and constant labels.
func Example_customRegistry() {
	customRegistry := prometheus.NewRegistry()

	config := Config{
		Enabled:   true,
		Registry:  customRegistry,
		Namespace: "myapp",
		Labels:    prometheus.Labels{"version": "1.0"},
	}
	registry := NewRegistryWithConfig(config)
	registry.ObserveFusion("orders")

	families, _ := customRegistry.Gather()
	for _, f := range families {
		fmt.Println(f.GetName())
	}
	// Output:
	// myapp_pipeline_fused_operations_total
}
