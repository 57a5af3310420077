// Package metrics provides Prometheus instrumentation for ticktask components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for ticktask components.
type Registry struct {
	// Task Metrics
	TasksScheduled *prometheus.CounterVec
	TasksRejected  *prometheus.CounterVec
	TasksFired     *prometheus.CounterVec
	TasksCanceled  *prometheus.CounterVec
	FiringLateness *prometheus.HistogramVec

	// Poller Metrics
	PollerTasks   *prometheus.GaugeVec
	PollerWakeups *prometheus.CounterVec
}

// DefaultNamespace prefixes every metric name unless Config.Namespace
// overrides it.
const DefaultNamespace = "ticktask"

// DefaultRegistry is the default metrics registry used by ticktask components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// RegistryFor resolves a Config to the Registry serving it. The default
// combination (prometheus.DefaultRegisterer, default namespace) resolves to
// DefaultRegistry, whose collectors were already registered at package init;
// registering them a second time would make promauto panic. Every other
// combination gets its own Registry.
func RegistryFor(cfg Config) *Registry {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if reg == prometheus.DefaultRegisterer && namespace == DefaultNamespace {
		return DefaultRegistry
	}
	return NewRegistryWithNamespace(reg, namespace)
}

// NewRegistry creates a new metrics registry with the given Prometheus
// registerer and the default namespace.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithNamespace(reg, DefaultNamespace)
}

// NewRegistryWithNamespace creates a new metrics registry with the given
// Prometheus registerer and metric-name namespace.
func NewRegistryWithNamespace(reg prometheus.Registerer, namespace string) *Registry {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Registry{
		TasksScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "task",
				Name:      "scheduled_total",
				Help:      "Total number of accepted scheduling requests",
			},
			[]string{"task_name"},
		),

		TasksRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "task",
				Name:      "rejected_total",
				Help:      "Total number of scheduling requests refused with a false return",
			},
			[]string{"task_name"},
		),

		TasksFired: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "task",
				Name:      "fired_total",
				Help:      "Total number of callback firings",
			},
			[]string{"task_name"},
		),

		TasksCanceled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "task",
				Name:      "canceled_total",
				Help:      "Total number of Cancel calls",
			},
			[]string{"task_name"},
		),

		FiringLateness: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "task",
				Name:      "firing_lateness_seconds",
				Help:      "How far past its deadline a task was when the firing Poll arrived",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 10, 8),
			},
			[]string{"task_name"},
		),

		PollerTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "poller",
				Name:      "tasks",
				Help:      "Number of tasks currently registered with the poller",
			},
			[]string{"poller_name"},
		),

		PollerWakeups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "poller",
				Name:      "wakeups_total",
				Help:      "Total number of driver-loop iterations",
			},
			[]string{"poller_name"},
		),
	}
}
