package poller

import (
	"fmt"
	"time"

	"github.com/vnykmshr/ticktask/pkg/task"
)

func (p *poller) AddCron(name, cronExpr string, t Pollable) error {
	if name == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if t == nil {
		return fmt.Errorf("task cannot be nil")
	}
	if cronExpr == "" {
		return fmt.Errorf("cron expression cannot be empty")
	}

	schedule, err := p.cronParser.Parse(cronExpr)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.entries[name]; exists {
		return fmt.Errorf("%q: %w", name, ErrDuplicateTask)
	}

	e := &entry{name: name, task: t, schedule: schedule}
	p.armCron(e)
	p.entries[name] = e
	p.updateGauge()
	return nil
}

// armCron arms a one-shot firing at the schedule's next occurrence. If the
// occurrence is too far away for the task's 31-bit window, the entry is
// left unarmed and a later poll cycle retries.
func (p *poller) armCron(e *entry) {
	next := e.schedule.Next(time.Now().In(p.location))
	delay := time.Until(next)
	if delay < 0 {
		delay = 0
	}

	ticks, ok := durationToTicks(delay, e.task.Unit())
	if !ok {
		p.logger.Printf("cron task %q: next occurrence %v is outside the representable window, deferring", e.name, next)
		return
	}

	if !e.task.CallIn(ticks) {
		p.logger.Printf("cron task %q: scheduling request rejected", e.name)
	}
}

// durationToTicks converts a duration to ticks in the given unit. It
// reports false when the value does not fit the forward half-window.
func durationToTicks(d time.Duration, u task.Unit) (int32, bool) {
	var ticks int64
	if u == task.Micros {
		ticks = d.Microseconds()
	} else {
		ticks = d.Milliseconds()
	}
	if ticks > 1<<31-1 {
		return 0, false
	}
	return int32(ticks), true
}
