/*
Package ticksource provides the wrapping tick counters that back ticktask's
scheduling arithmetic.

A Source exposes two independent, monotonically increasing uint32 counters,
one incrementing roughly once per millisecond and one roughly once per
microsecond. Both counters wrap to zero after exhausting their range; the
task package's comparison arithmetic is designed around that wraparound and
a source must never try to hide it.

Two implementations are provided:

  - Wallclock derives both counters from the Go runtime's monotonic clock.
    This is the default used by task.New and is what most hosts want.
  - Manual holds counters that only move when the host sets or advances
    them. It exists for tests and for hosts that already own a hardware
    tick counter and want to feed its value through unchanged.

Example:

	src := ticksource.NewManual()
	src.SetMillis(1000)

	t := task.New(fire, task.WithSource(src))
	t.CallIn(250)

	src.SetMillis(1250)
	t.Poll() // fires
*/
package ticksource
