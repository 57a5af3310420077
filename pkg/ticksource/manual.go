package ticksource

import "sync/atomic"

// Manual is a Source whose counters only move when the host moves them.
//
// It serves two audiences: tests that need deterministic tick values
// (including values near the rollover point), and hosts that already read a
// hardware counter and want to publish its value to tasks. Loads and stores
// are atomic so a driver loop may read while another context updates,
// but the task package itself must still be driven from a single context.
type Manual struct {
	millis atomic.Uint32
	micros atomic.Uint32
}

// NewManual creates a Manual source with both counters at zero.
func NewManual() *Manual {
	return &Manual{}
}

// Millis returns the millisecond counter's current value.
func (m *Manual) Millis() uint32 { return m.millis.Load() }

// Micros returns the microsecond counter's current value.
func (m *Manual) Micros() uint32 { return m.micros.Load() }

// SetMillis sets the millisecond counter to an absolute value.
func (m *Manual) SetMillis(v uint32) { m.millis.Store(v) }

// SetMicros sets the microsecond counter to an absolute value.
func (m *Manual) SetMicros(v uint32) { m.micros.Store(v) }

// AdvanceMillis moves the millisecond counter forward by d ticks,
// wrapping at 2^32.
func (m *Manual) AdvanceMillis(d uint32) { m.millis.Add(d) }

// AdvanceMicros moves the microsecond counter forward by d ticks,
// wrapping at 2^32.
func (m *Manual) AdvanceMicros(d uint32) { m.micros.Add(d) }
