package task

import (
	"testing"

	"github.com/vnykmshr/ticktask/internal/testutil"
	"github.com/vnykmshr/ticktask/pkg/ticksource"
)

func TestCallIn_FiresAtDeadline(t *testing.T) {
	src := ticksource.NewManual()
	src.SetMillis(1000)

	tracker := testutil.NewCallbackTracker()
	tk := New(tracker.Mark, WithSource(src))

	if !tk.CallIn(250) {
		t.Fatal("CallIn(250) should be accepted")
	}
	if tk.deadline != 1250 {
		t.Fatalf("deadline = %d, want 1250", tk.deadline)
	}

	src.SetMillis(1249)
	tk.Poll()
	if tracker.Called() {
		t.Fatal("callback fired one tick early")
	}

	src.SetMillis(1250)
	tk.Poll()
	if tracker.CallCount() != 1 {
		t.Fatalf("call count = %d, want 1", tracker.CallCount())
	}
	if tk.Active() {
		t.Fatal("one-shot task should be idle after firing")
	}

	// Further polls must not fire again.
	src.SetMillis(2000)
	tk.Poll()
	testutil.AssertEqual(t, tracker.CallCount(), 1)
}

func TestCallIn_RejectsNegativeDelay(t *testing.T) {
	src := ticksource.NewManual()
	src.SetMillis(500)

	tk := New(func() {}, WithSource(src))
	if !tk.CallIn(100) {
		t.Fatal("CallIn(100) should be accepted")
	}
	before := tk.deadline

	if tk.CallIn(-1) {
		t.Fatal("CallIn(-1) should be rejected")
	}
	if !tk.Active() {
		t.Fatal("rejected request must not deactivate the task")
	}
	if tk.deadline != before {
		t.Fatalf("rejected request changed deadline: %d -> %d", before, tk.deadline)
	}
}

func TestRemaining(t *testing.T) {
	src := ticksource.NewManual()
	tk := New(func() {}, WithSource(src))

	testutil.AssertEqual(t, tk.Remaining(), int32(-1))

	tk.CallIn(50)
	testutil.AssertEqual(t, tk.Remaining(), int32(50))

	src.AdvanceMillis(20)
	testutil.AssertEqual(t, tk.Remaining(), int32(30))

	// Overdue reports as due now, never negative.
	src.AdvanceMillis(40)
	testutil.AssertEqual(t, tk.Remaining(), int32(0))

	tk.Cancel()
	testutil.AssertEqual(t, tk.Remaining(), int32(-1))
}

func TestCallAt(t *testing.T) {
	src := ticksource.NewManual()
	src.SetMillis(1000)

	tracker := testutil.NewCallbackTracker()
	tk := New(tracker.Mark, WithSource(src))

	if !tk.CallAt(1100) {
		t.Fatal("CallAt(now+100) should be accepted")
	}
	src.SetMillis(1100)
	tk.Poll()
	testutil.AssertEqual(t, tracker.CallCount(), 1)

	// A target already in the past reads as a negative signed distance.
	if tk.CallAt(999) {
		t.Fatal("CallAt in the past should be rejected")
	}
	if tk.Active() {
		t.Fatal("rejected request must not arm the task")
	}

	// A target beyond the forward half-window is indistinguishable from
	// the past and is refused too.
	if tk.CallAt(1100 + 1<<31) {
		t.Fatal("CallAt beyond the half-window should be rejected")
	}
}

func TestCallAt_CancelRoundTrip(t *testing.T) {
	src := ticksource.NewManual()
	src.SetMillis(42)

	tk := New(func() {}, WithSource(src))
	if !tk.CallAt(142) {
		t.Fatal("CallAt(now+100) should be accepted")
	}
	tk.Cancel()
	testutil.AssertEqual(t, tk.Remaining(), int32(-1))
}

func TestCallEvery_CatchesUpMissedPeriods(t *testing.T) {
	src := ticksource.NewManual()
	tracker := testutil.NewCallbackTracker()
	tk := New(tracker.Mark, WithSource(src))

	if !tk.CallEvery(10) {
		t.Fatal("CallEvery(10) should be accepted")
	}
	testutil.AssertEqual(t, tk.deadline, uint32(10))

	// Five and a half periods pass without a single poll.
	src.SetMillis(55)
	tk.Poll()

	// Exactly one firing, and the deadline jumped past every missed
	// period to the smallest future multiple.
	testutil.AssertEqual(t, tracker.CallCount(), 1)
	testutil.AssertEqual(t, tk.deadline, uint32(60))
	testutil.AssertEqual(t, tk.Remaining(), int32(5))

	// Polling again at the same tick does nothing.
	tk.Poll()
	testutil.AssertEqual(t, tracker.CallCount(), 1)

	// The task stays armed; the next period fires normally.
	src.SetMillis(60)
	tk.Poll()
	testutil.AssertEqual(t, tracker.CallCount(), 2)
	if !tk.Active() || !tk.Periodic() {
		t.Fatal("periodic task should remain armed after firing")
	}
}

func TestCallEvery_RejectsNegativeInterval(t *testing.T) {
	src := ticksource.NewManual()
	tk := New(func() {}, WithSource(src))

	if tk.CallEvery(-5) {
		t.Fatal("CallEvery(-5) should be rejected")
	}
	testutil.AssertEqual(t, tk.Remaining(), int32(-1))
}

func TestCallEvery_ZeroInterval(t *testing.T) {
	src := ticksource.NewManual()
	tracker := testutil.NewCallbackTracker()
	tk := New(tracker.Mark, WithSource(src))

	if !tk.CallEvery(0) {
		t.Fatal("CallEvery(0) should be accepted")
	}

	// Due on every poll, exactly once per poll, without hanging.
	tk.Poll()
	tk.Poll()
	tk.Poll()
	testutil.AssertEqual(t, tracker.CallCount(), 3)
}

func TestCancel_StopsFutureFirings(t *testing.T) {
	src := ticksource.NewManual()
	tracker := testutil.NewCallbackTracker()
	tk := New(tracker.Mark, WithSource(src))

	tk.CallEvery(10)
	tk.Cancel()

	src.SetMillis(100)
	tk.Poll()
	if tracker.Called() {
		t.Fatal("canceled task must not fire")
	}

	// Idempotent on an already idle task.
	tk.Cancel()
	testutil.AssertEqual(t, tk.Remaining(), int32(-1))

	// A fresh schedule re-arms the same instance.
	tk.CallIn(5)
	src.AdvanceMillis(5)
	tk.Poll()
	testutil.AssertEqual(t, tracker.CallCount(), 1)
}

func TestWithArg_DeliversStoredArgument(t *testing.T) {
	src := ticksource.NewManual()
	tracker := testutil.NewCallbackTracker()
	tk := NewWithArg(tracker.MarkValue, WithSource(src))

	if !tk.CallInWithArg(0, "first") {
		t.Fatal("CallInWithArg(0) should be accepted")
	}
	tk.Poll()
	testutil.AssertEqual(t, tracker.Value().(string), "first")

	// The argument may be swapped on every scheduling call.
	tk.CallInWithArg(0, "second")
	tk.Poll()
	testutil.AssertEqual(t, tracker.Value().(string), "second")

	// A rejected request stores nothing: the previous argument survives.
	if tk.CallInWithArg(-1, "third") {
		t.Fatal("CallInWithArg(-1) should be rejected")
	}
	tk.CallIn(0)
	tk.Poll()
	testutil.AssertEqual(t, tracker.Value().(string), "second")
}

func TestWithArg_PropagatesResult(t *testing.T) {
	src := ticksource.NewManual()
	src.SetMillis(1000)
	tk := NewWithArg(func(any) {}, WithSource(src))

	if tk.CallAtWithArg(900, nil) {
		t.Fatal("CallAtWithArg in the past should report false")
	}
	if tk.CallEveryWithArg(-1, nil) {
		t.Fatal("CallEveryWithArg(-1) should report false")
	}
	if !tk.CallEveryWithArg(100, nil) {
		t.Fatal("CallEveryWithArg(100) should report true")
	}
}

func TestUnitSwitch_DoesNotRescaleDeadline(t *testing.T) {
	src := ticksource.NewManual()
	src.SetMillis(1000)
	src.SetMicros(0)

	tk := New(func() {}, WithSource(src))
	tk.CallIn(500) // deadline 1500 on the millisecond counter
	testutil.AssertEqual(t, tk.Remaining(), int32(500))

	// Switching units keeps the raw deadline value; it is simply compared
	// against the other counter from now on.
	tk.UseMicros()
	testutil.AssertEqual(t, tk.Remaining(), int32(1500))

	tk.UseMillis()
	testutil.AssertEqual(t, tk.Remaining(), int32(500))
}

func TestMicrosecondScheduling(t *testing.T) {
	src := ticksource.NewManual()
	src.SetMicros(2000)

	tracker := testutil.NewCallbackTracker()
	tk := New(tracker.Mark, WithSource(src), WithUnit(Micros))

	tk.CallIn(100)
	testutil.AssertEqual(t, tk.deadline, uint32(2100))

	src.SetMicros(2100)
	tk.Poll()
	testutil.AssertEqual(t, tracker.CallCount(), 1)
}

func TestPoll_IdleIsNoop(t *testing.T) {
	src := ticksource.NewManual()
	tracker := testutil.NewCallbackTracker()
	tk := New(tracker.Mark, WithSource(src))

	tk.Poll()
	src.SetMillis(1 << 30)
	tk.Poll()
	if tracker.Called() {
		t.Fatal("idle task must never fire")
	}
}

func TestReuseAcrossSchedulingCycles(t *testing.T) {
	src := ticksource.NewManual()
	tracker := testutil.NewCallbackTracker()
	tk := New(tracker.Mark, WithSource(src))

	for i := 0; i < 10; i++ {
		if !tk.CallIn(5) {
			t.Fatalf("cycle %d: CallIn rejected", i)
		}
		src.AdvanceMillis(5)
		tk.Poll()
	}
	testutil.AssertEqual(t, tracker.CallCount(), 10)
}
