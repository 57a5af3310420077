package task

import (
	"github.com/vnykmshr/ticktask/pkg/metrics"
)

// InstrumentedTask wraps a Task with Prometheus metrics collection. It
// embeds the Task, so every plain method remains available; the scheduling
// methods, Cancel and Poll are overridden to record counters as they pass
// through.
type InstrumentedTask struct {
	*Task
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a task with a zero-argument callback and metrics
// enabled against the default registry.
func NewWithMetrics(fn func(), name string, opts ...Option) *InstrumentedTask {
	return newInstrumented(New(fn, opts...), name, metrics.DefaultConfig())
}

// NewWithArgMetrics creates a task with an argument-taking callback and
// metrics enabled against the default registry.
func NewWithArgMetrics(fn func(any), name string, opts ...Option) *InstrumentedTask {
	return newInstrumented(NewWithArg(fn, opts...), name, metrics.DefaultConfig())
}

// NewWithConfigAndMetrics creates a task with a zero-argument callback and
// a custom metrics configuration.
func NewWithConfigAndMetrics(fn func(), name string, cfg metrics.Config, opts ...Option) *InstrumentedTask {
	return newInstrumented(New(fn, opts...), name, cfg)
}

func newInstrumented(t *Task, name string, cfg metrics.Config) *InstrumentedTask {
	it := &InstrumentedTask{
		Task: t,
		name: name,
	}
	it.EnableMetrics(cfg)
	return it
}

// EnableMetrics enables metrics collection for this task. The default
// configuration shares the package-wide registry; configs carrying their own
// registerer or namespace get a registry of their own.
func (it *InstrumentedTask) EnableMetrics(cfg metrics.Config) {
	if !cfg.Enabled {
		it.enabled = false
		return
	}
	it.registry = metrics.RegistryFor(cfg)
	it.enabled = true
}

// DisableMetrics disables metrics collection for this task.
func (it *InstrumentedTask) DisableMetrics() {
	it.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (it *InstrumentedTask) MetricsEnabled() bool {
	return it.enabled
}

// recordSchedule counts an accepted or rejected scheduling request and
// passes the result through unchanged.
func (it *InstrumentedTask) recordSchedule(ok bool) bool {
	if it.enabled {
		if ok {
			it.registry.TasksScheduled.WithLabelValues(it.name).Inc()
		} else {
			it.registry.TasksRejected.WithLabelValues(it.name).Inc()
		}
	}
	return ok
}

// CallIn arms the task and counts the request. See Task.CallIn.
func (it *InstrumentedTask) CallIn(delay int32) bool {
	return it.recordSchedule(it.Task.CallIn(delay))
}

// CallInWithArg arms the task and counts the request. See Task.CallInWithArg.
func (it *InstrumentedTask) CallInWithArg(delay int32, arg any) bool {
	return it.recordSchedule(it.Task.CallInWithArg(delay, arg))
}

// CallAt arms the task and counts the request. See Task.CallAt.
func (it *InstrumentedTask) CallAt(at uint32) bool {
	return it.recordSchedule(it.Task.CallAt(at))
}

// CallAtWithArg arms the task and counts the request. See Task.CallAtWithArg.
func (it *InstrumentedTask) CallAtWithArg(at uint32, arg any) bool {
	return it.recordSchedule(it.Task.CallAtWithArg(at, arg))
}

// CallEvery arms the task and counts the request. See Task.CallEvery.
func (it *InstrumentedTask) CallEvery(interval int32) bool {
	return it.recordSchedule(it.Task.CallEvery(interval))
}

// CallEveryWithArg arms the task and counts the request. See Task.CallEveryWithArg.
func (it *InstrumentedTask) CallEveryWithArg(interval int32, arg any) bool {
	return it.recordSchedule(it.Task.CallEveryWithArg(interval, arg))
}

// Cancel stops the task and counts the cancellation. See Task.Cancel.
func (it *InstrumentedTask) Cancel() {
	it.Task.Cancel()
	if it.enabled {
		it.registry.TasksCanceled.WithLabelValues(it.name).Inc()
	}
}

// Poll checks the deadline and fires the callback if due, recording the
// firing and how late it was. See Task.Poll.
func (it *InstrumentedTask) Poll() {
	if it.enabled && it.Task.active {
		// ticksLeft is non-positive exactly when this Poll will fire.
		if late := -it.Task.ticksLeft(); late >= 0 {
			it.registry.TasksFired.WithLabelValues(it.name).Inc()
			it.registry.FiringLateness.WithLabelValues(it.name).Observe(it.latenessSeconds(late))
		}
	}
	it.Task.Poll()
}

func (it *InstrumentedTask) latenessSeconds(ticks int32) float64 {
	if it.Task.unit == Micros {
		return float64(ticks) / 1e6
	}
	return float64(ticks) / 1e3
}
