// Package metrics provides Prometheus instrumentation for ticktask
// components.
//
// Instrumentation is opt-in: the plain task and poller constructors carry
// no metrics overhead at all. Components created through their
// metrics-enabled constructors record their activity against a Registry of
// Prometheus collectors.
//
// Enable metrics by using the metrics-enabled constructors:
//
//	heartbeat := task.NewWithMetrics(sendHeartbeat, "heartbeat")
//	heartbeat.CallEvery(1000)
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// Available metrics, all under the "ticktask" namespace:
//
//   - ticktask_task_scheduled_total: accepted scheduling requests
//   - ticktask_task_rejected_total: scheduling requests refused with false
//   - ticktask_task_fired_total: callback firings
//   - ticktask_task_canceled_total: Cancel calls
//   - ticktask_task_firing_lateness_seconds: how far past its deadline a
//     task was when the firing Poll arrived
//   - ticktask_poller_tasks: tasks currently registered with a poller
//   - ticktask_poller_wakeups_total: driver-loop iterations
//
// Task metrics carry a task_name label, poller metrics a poller_name
// label.
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//	heartbeat := task.NewWithConfigAndMetrics(sendHeartbeat, "heartbeat", config)
package metrics
