package task

import (
	"github.com/vnykmshr/ticktask/pkg/ticksource"
)

// Unit selects which of a Source's two counters backs a task's time
// arithmetic.
type Unit int

const (
	// Millis uses the millisecond counter. This is the default.
	Millis Unit = iota
	// Micros uses the microsecond counter.
	Micros
)

// Task schedules one callback to run at a future tick. All state lives in
// the struct; instances are independent and reusable for any number of
// scheduling cycles.
//
// A Task is not safe for concurrent use. All methods, including Poll, must
// be called from the same logical context; if a host shares a Task across
// contexts it is responsible for its own mutual exclusion.
type Task struct {
	cb       callback
	arg      any    // opaque, host-owned; handed to an argFunc callback as-is
	src      ticksource.Source
	unit     Unit
	interval int32  // period for CallEvery tasks; meaningless otherwise
	deadline uint32 // absolute tick of the next firing; meaningless unless active
	periodic bool
	active   bool
}

// Option configures a Task at construction.
type Option func(*Task)

// WithSource sets the tick source the task reads. Defaults to
// ticksource.Default.
func WithSource(src ticksource.Source) Option {
	return func(t *Task) {
		if src != nil {
			t.src = src
		}
	}
}

// WithUnit sets the initial time unit. Defaults to Millis.
func WithUnit(u Unit) Option {
	return func(t *Task) {
		t.unit = u
	}
}

// New creates a Task that fires a zero-argument callback.
func New(fn func(), opts ...Option) *Task {
	t := &Task{
		cb:  plainFunc(fn),
		src: ticksource.Default,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewWithArg creates a Task that fires a callback receiving the task's
// stored opaque argument. The argument is supplied through the WithArg
// scheduling variants and may differ on every scheduling call; the task
// never inspects or retains ownership of it.
func NewWithArg(fn func(any), opts ...Option) *Task {
	t := &Task{
		cb:  argFunc(fn),
		src: ticksource.Default,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// now reads the counter selected by the current unit.
func (t *Task) now() uint32 {
	if t.unit == Micros {
		return t.src.Micros()
	}
	return t.src.Millis()
}

// ticksLeft is the signed distance from now to the deadline. Negative
// means due or overdue. Only valid while the true distance is within half
// the counter range, which every accepting scheduling call guarantees.
func (t *Task) ticksLeft() int32 {
	return int32(t.deadline - t.now())
}

// CallIn arms the task to fire once, delay ticks from now.
//
// A negative delay is rejected with a false return and no state change: a
// large negative value would wrap into a legitimate-looking far-future
// deadline, so it cannot be safely reinterpreted as "already due". The
// delay may be at most 2^31-1 ticks, half the counter range.
func (t *Task) CallIn(delay int32) bool {
	if delay < 0 {
		return false
	}
	t.deadline = t.now() + uint32(delay)
	t.periodic = false
	t.active = true
	return true
}

// CallInWithArg is CallIn with a fresh opaque argument for the callback.
// The argument is stored only if the request is accepted.
func (t *Task) CallInWithArg(delay int32, arg any) bool {
	if !t.CallIn(delay) {
		return false
	}
	t.arg = arg
	return true
}

// CallAt arms the task to fire once at an absolute tick value.
//
// The target must lie within the forward 31-bit half-window from the
// current tick. Anything else is rejected with a false return and no state
// change; that covers both targets too far in the future to represent and
// targets already in the past.
func (t *Task) CallAt(at uint32) bool {
	if int32(at-t.now()) < 0 {
		return false
	}
	t.deadline = at
	t.periodic = false
	t.active = true
	return true
}

// CallAtWithArg is CallAt with a fresh opaque argument for the callback.
func (t *Task) CallAtWithArg(at uint32, arg any) bool {
	if !t.CallAt(at) {
		return false
	}
	t.arg = arg
	return true
}

// CallEvery arms the task to fire every interval ticks, starting one
// interval from now. A negative interval is rejected with a false return
// and no state change. The task re-arms itself on every firing and only
// Cancel stops it.
func (t *Task) CallEvery(interval int32) bool {
	if interval < 0 {
		return false
	}
	t.interval = interval
	t.deadline = t.now() + uint32(interval)
	t.periodic = true
	t.active = true
	return true
}

// CallEveryWithArg is CallEvery with a fresh opaque argument for the
// callback.
func (t *Task) CallEveryWithArg(interval int32, arg any) bool {
	if !t.CallEvery(interval) {
		return false
	}
	t.arg = arg
	return true
}

// Poll checks the deadline and fires the callback if it has passed. Hosts
// should call it on every main-loop iteration; it returns without doing
// anything when the task is idle or not yet due.
//
// A periodic task that missed several periods (because Poll was not called
// for a while) advances its deadline past every missed period and fires
// exactly once; there is no backlog of missed firings. The callback runs
// synchronously and Poll does not return until it does.
func (t *Task) Poll() {
	if !t.active {
		return
	}
	if t.ticksLeft() > 0 {
		return
	}
	if t.periodic {
		if t.interval == 0 {
			// A zero interval is due again immediately; re-arm at the
			// current tick so the catch-up loop below cannot spin forever.
			t.deadline = t.now()
		} else {
			for t.ticksLeft() <= 0 {
				t.deadline += uint32(t.interval)
			}
		}
	} else {
		t.active = false
	}
	t.cb.invoke(t.arg)
}

// Remaining reports the ticks left until the next firing, 0 if the task is
// due or overdue, or -1 if nothing is scheduled.
//
// A host with several tasks can poll each one's Remaining and sleep for
// the minimum across all active tasks.
func (t *Task) Remaining() int32 {
	if !t.active {
		return -1
	}
	left := t.ticksLeft()
	if left < 0 {
		return 0
	}
	return left
}

// Cancel stops any pending firing. It is unconditional and idempotent:
// calling it on an idle task is a no-op, and it is the only way to stop a
// periodic task. It never interrupts a callback already running inside
// Poll; it only prevents future firings.
func (t *Task) Cancel() {
	t.active = false
}

// UseMillis selects the millisecond counter for all subsequent time
// arithmetic. An already-computed deadline keeps its raw tick value and is
// not rescaled; switching units while a task is pending changes which
// counter that value is compared against.
func (t *Task) UseMillis() {
	t.unit = Millis
}

// UseMicros selects the microsecond counter. See UseMillis for the effect
// on a pending deadline.
func (t *Task) UseMicros() {
	t.unit = Micros
}

// Active reports whether a firing is currently pending.
func (t *Task) Active() bool {
	return t.active
}

// Periodic reports whether the task was last armed with CallEvery.
func (t *Task) Periodic() bool {
	return t.periodic
}

// Unit reports which counter currently backs the task's time arithmetic.
func (t *Task) Unit() Unit {
	return t.unit
}
