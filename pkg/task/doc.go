/*
Package task provides a cooperative, non-blocking scheduling primitive for
single-threaded polling environments.

A Task binds exactly one callback at construction and can then be armed to
fire once after a delay (CallIn), once at an absolute tick value (CallAt),
or repeatedly at a fixed interval (CallEvery). Nothing runs in the
background: the callback only ever executes inside the host's own call to
Poll, which the host is expected to invoke on every iteration of its main
loop. This keeps the host in full control of when code runs and removes any
re-entrancy concern.

Basic Usage:

	blink := task.New(func() {
		toggleLED()
	})

	blink.CallEvery(250) // every 250 ms

	for {
		// ... other work ...
		blink.Poll()
	}

Time Model:

All time values are unsigned 32-bit tick counts read from a
ticksource.Source, in either milliseconds (the default) or microseconds.
The counters wrap after exhausting their range; due-ness is decided by
subtracting the current tick from the deadline and inspecting the sign of
the result reinterpreted as a signed 32-bit value. That comparison is only
unambiguous while the true distance stays within half the counter range, so
every accepted delay, interval, and absolute-deadline offset is limited to
31 bits. Requests outside that window, and negative delays or intervals,
are rejected with a false return and no state change.

Periodic tasks catch up rather than backlog: if Poll was not called for
several periods, a single Poll advances the deadline past every missed
period and fires the callback exactly once.

Passing Data to Callbacks:

A Task built with NewWithArg carries one opaque value that is handed to the
callback at every firing. The value is owned by the host and may be swapped
on each scheduling call via the WithArg method variants:

	ctl := &blinkControl{pin: 13}
	blink := task.NewWithArg(func(v any) {
		v.(*blinkControl).toggle()
	})
	blink.CallEveryWithArg(250, ctl)

Multiple Tasks:

A Task is deliberately self-contained; there is no registry. A host with
several tasks polls each one, and can sleep for the minimum of their
Remaining values between iterations. The poller package packages exactly
that loop for hosts that want it.
*/
package task
