package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Example_basicUsage demonstrates basic metrics configuration.
func Example_basicUsage() {
	// Create a separate registry for this test
	testRegistry := prometheus.NewRegistry()
	registry := NewRegistry(testRegistry)

	// Example of accessing metrics
	registry.TasksScheduled.WithLabelValues("heartbeat").Add(10)
	registry.TasksFired.WithLabelValues("heartbeat").Add(9)
	registry.TasksRejected.WithLabelValues("heartbeat").Add(1)

	fmt.Println("Metrics updated successfully")

	// Output:
	// Metrics updated successfully
}

// Example_customRegistry demonstrates using a custom Prometheus registry.
func Example_customRegistry() {
	// Create a custom registry
	customRegistry := prometheus.NewRegistry()

	config := Config{
		Enabled:  true,
		Registry: customRegistry,
	}

	// Create metrics registry with custom config
	registry := NewRegistry(config.Registry)

	// Test the registry
	registry.PollerTasks.WithLabelValues("main_loop").Set(3)
	registry.PollerWakeups.WithLabelValues("main_loop").Add(12)

	fmt.Printf("Custom registry enabled: %v\n", config.Enabled)
	fmt.Println("Custom registry configured with ticktask metrics")

	// Output:
	// Custom registry enabled: true
	// Custom registry configured with ticktask metrics
}
