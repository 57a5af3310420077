package ticksource

import "time"

// Source is a pair of free-running, wrapping tick counters.
//
// Both counters increase monotonically and roll over to zero after
// exhausting the uint32 range (about 49.7 days for the millisecond counter,
// about 71.6 minutes for the microsecond one). Readers must treat the
// values as wrapping; no ordering across a rollover is implied.
type Source interface {
	// Millis returns the millisecond counter's current value.
	Millis() uint32

	// Micros returns the microsecond counter's current value.
	Micros() uint32
}

// Wallclock is a Source backed by the runtime's monotonic clock. Both
// counters measure elapsed time since the Wallclock was created, truncated
// to uint32 so they wrap exactly like a hardware counter would.
type Wallclock struct {
	start time.Time
}

// NewWallclock creates a Wallclock whose counters start at zero.
func NewWallclock() *Wallclock {
	return &Wallclock{start: time.Now()}
}

// Millis returns elapsed milliseconds since creation, wrapping at 2^32.
func (w *Wallclock) Millis() uint32 {
	return uint32(time.Since(w.start) / time.Millisecond)
}

// Micros returns elapsed microseconds since creation, wrapping at 2^32.
func (w *Wallclock) Micros() uint32 {
	return uint32(time.Since(w.start) / time.Microsecond)
}

// Default is the process-wide Wallclock used when no explicit Source is
// configured.
var Default Source = NewWallclock()
