/*
Package ticktask provides a cooperative, non-blocking task-scheduling
primitive for environments without an operating system scheduler: firmware
main loops, simulators, and any single-threaded program that drives its own
polling cycle.

Core (pkg/task):
  - task: a self-contained scheduled task driven by a wrapping 32-bit tick
    counter; fire once after a delay, once at an absolute tick, or
    repeatedly at a fixed interval

Tick sources (pkg/ticksource):
  - Wallclock: counters derived from the runtime's monotonic clock
  - Manual: counters the host sets itself, for tests and real hardware

Drivers (pkg/poller):
  - poller: a packaged poll-and-sleep main loop for hosts with several
    tasks, with cron-expression arming

Observability (pkg/metrics):
  - Prometheus collectors for scheduling, firing and rejection activity

Example usage:

	import "github.com/vnykmshr/ticktask/pkg/task"

	blink := task.New(toggleLED)
	blink.CallEvery(250) // every 250 ms

	for {
		// ... other work ...
		blink.Poll()
	}

No goroutines, interrupts or locks are involved in the core: a callback
only ever runs inside the host's own Poll call.
*/
package ticktask
