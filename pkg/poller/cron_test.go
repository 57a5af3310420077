package poller

import (
	"testing"
	"time"

	"github.com/vnykmshr/ticktask/internal/testutil"
	"github.com/vnykmshr/ticktask/pkg/task"
	"github.com/vnykmshr/ticktask/pkg/ticksource"
)

func TestAddCron_Validation(t *testing.T) {
	p := New()
	tk := task.New(func() {})

	testutil.AssertError(t, p.AddCron("", "* * * * * *", tk))
	testutil.AssertError(t, p.AddCron("a", "* * * * * *", nil))
	testutil.AssertError(t, p.AddCron("a", "", tk))
	testutil.AssertError(t, p.AddCron("a", "61 * * * * *", tk))

	testutil.AssertNoError(t, p.AddCron("a", "* * * * * *", tk))
	testutil.AssertError(t, p.AddCron("a", "* * * * * *", tk))
}

func TestAddCron_ArmsImmediately(t *testing.T) {
	p := New()
	tk := task.New(func() {})

	// Next every-second occurrence is at most one second away, well
	// inside the window, so registration arms the task right away.
	testutil.AssertNoError(t, p.AddCron("tick", "* * * * * *", tk))
	if !tk.Active() {
		t.Fatal("cron registration should arm the task")
	}
	if tk.Remaining() > 1000 {
		t.Fatalf("Remaining() = %d, want at most one second", tk.Remaining())
	}
}

// stubSchedule always reports its fixed next occurrence.
type stubSchedule struct {
	next time.Time
}

func (s stubSchedule) Next(time.Time) time.Time { return s.next }

func TestArmCron_DefersOccurrencesOutsideWindow(t *testing.T) {
	p := New().(*poller)

	// A microsecond-based task can only represent ~35 minutes ahead.
	tk := task.New(func() {}, task.WithUnit(task.Micros), task.WithSource(ticksource.NewManual()))
	e := &entry{
		name:     "far",
		task:     tk,
		schedule: stubSchedule{next: time.Now().Add(2 * time.Hour)},
	}

	p.armCron(e)
	if tk.Active() {
		t.Fatal("occurrence outside the representable window must not be armed")
	}

	e.schedule = stubSchedule{next: time.Now().Add(time.Minute)}
	p.armCron(e)
	if !tk.Active() {
		t.Fatal("occurrence inside the window should be armed")
	}
}

func TestDurationToTicks(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		unit task.Unit
		want int32
		ok   bool
	}{
		{"millis in range", 1500 * time.Millisecond, task.Millis, 1500, true},
		{"micros in range", 1500 * time.Microsecond, task.Micros, 1500, true},
		{"millis at window edge", time.Duration(1<<31-1) * time.Millisecond, task.Millis, 1<<31 - 1, true},
		{"millis beyond window", time.Duration(1<<31) * time.Millisecond, task.Millis, 0, false},
		{"micros beyond window", time.Hour, task.Micros, 0, false},
		{"zero", 0, task.Millis, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := durationToTicks(tt.d, tt.unit)
			if ok != tt.ok || got != tt.want {
				t.Errorf("durationToTicks(%v, %v) = (%d, %v), want (%d, %v)",
					tt.d, tt.unit, got, ok, tt.want, tt.ok)
			}
		})
	}
}
