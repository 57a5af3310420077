package poller

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/ticktask/pkg/metrics"
	"github.com/vnykmshr/ticktask/pkg/task"
)

// Common poller errors.
var (
	// ErrDuplicateTask indicates that a task name is already registered.
	ErrDuplicateTask = errors.New("task name already registered")
)

// Pollable is the task surface the poller drives. Both *task.Task and
// *task.InstrumentedTask satisfy it.
type Pollable interface {
	Poll()
	Remaining() int32
	Active() bool
	Unit() task.Unit
	CallIn(delay int32) bool
}

// Poller drives a set of tasks from a single background loop.
type Poller interface {
	// Add registers a task under a unique name. The task may be armed
	// before or after registration; the poller simply polls it.
	Add(name string, t Pollable) error

	// AddCron registers a task and arms it at each occurrence of the
	// given cron expression (seconds-granularity robfig/cron syntax),
	// re-arming after every firing.
	AddCron(name, cronExpr string, t Pollable) error

	// Remove unregisters a task. It reports whether the name was known.
	// The task itself is not canceled.
	Remove(name string) bool

	// Len returns the number of registered tasks.
	Len() int

	// Lifecycle
	Start() error
	Stop() <-chan struct{}
}

// Config holds poller configuration.
type Config struct {
	// MaxSleep bounds how long the loop sleeps between poll cycles even
	// when no task is due sooner (default: 50ms). It also bounds how
	// stale the task set can get after Add or Remove.
	MaxSleep time.Duration

	// Location is the time zone cron expressions are evaluated in
	// (default: time.Local).
	Location *time.Location

	// Logger receives diagnostics about cron arming failures. Defaults
	// to a no-op logger.
	Logger Logger

	// Name labels this poller's metrics (default: "poller").
	Name string

	// Metrics configures Prometheus instrumentation. The zero value
	// leaves metrics disabled.
	Metrics metrics.Config
}

type entry struct {
	name     string
	task     Pollable
	schedule cron.Schedule // nil for plain entries
}

type poller struct {
	maxSleep   time.Duration
	location   *time.Location
	logger     Logger
	name       string
	registry   *metrics.Registry
	metricsOn  bool
	cronParser cron.Parser

	mu       sync.Mutex
	entries  map[string]*entry
	running  bool
	done     chan struct{}
	loopDone chan struct{}
}

// New creates a poller with default configuration.
func New() Poller {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a poller with custom configuration.
func NewWithConfig(cfg Config) Poller {
	maxSleep := cfg.MaxSleep
	if maxSleep <= 0 {
		maxSleep = 50 * time.Millisecond
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	logger := cfg.Logger
	if logger == nil {
		logger = defaultLogger
	}

	name := cfg.Name
	if name == "" {
		name = "poller"
	}

	p := &poller{
		maxSleep:   maxSleep,
		location:   location,
		logger:     logger,
		name:       name,
		cronParser: cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		entries:    make(map[string]*entry),
	}

	if cfg.Metrics.Enabled {
		p.registry = metrics.RegistryFor(cfg.Metrics)
		p.metricsOn = true
	}

	return p
}

func (p *poller) Add(name string, t Pollable) error {
	if name == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if t == nil {
		return fmt.Errorf("task cannot be nil")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.entries[name]; exists {
		return fmt.Errorf("%q: %w", name, ErrDuplicateTask)
	}

	p.entries[name] = &entry{name: name, task: t}
	p.updateGauge()
	return nil
}

func (p *poller) Remove(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.entries[name]; exists {
		delete(p.entries, name)
		p.updateGauge()
		return true
	}
	return false
}

func (p *poller) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

func (p *poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return fmt.Errorf("poller already running, call Stop() first")
	}

	p.running = true
	p.done = make(chan struct{})
	p.loopDone = make(chan struct{})

	go p.run()
	return nil
}

func (p *poller) Stop() <-chan struct{} {
	p.mu.Lock()
	wasRunning := p.running
	loopDone := p.loopDone
	if p.running {
		p.running = false
		close(p.done)
	}
	p.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if wasRunning {
			<-loopDone
		}
	}()
	return stopped
}

func (p *poller) run() {
	defer close(p.loopDone)

	for {
		sleep := p.pollCycle()
		select {
		case <-p.done:
			return
		case <-time.After(sleep):
		}
	}
}

// pollCycle polls every registered task once and returns how long the loop
// may sleep before the nearest deadline. Tasks are polled under the lock so
// every Poll call stays on this goroutine; callbacks therefore must not
// call back into the poller.
func (p *poller) pollCycle() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.metricsOn {
		p.registry.PollerWakeups.WithLabelValues(p.name).Inc()
	}

	sleep := p.maxSleep
	for _, e := range p.entries {
		e.task.Poll()

		if e.schedule != nil && !e.task.Active() {
			p.armCron(e)
		}

		if left := e.task.Remaining(); left >= 0 {
			if d := ticksToDuration(left, e.task.Unit()); d < sleep {
				sleep = d
			}
		}
	}

	// Floor the sleep so a task that is due again immediately cannot turn
	// the loop into a busy spin.
	if sleep < time.Millisecond {
		sleep = time.Millisecond
	}
	return sleep
}

// updateGauge publishes the registered task count. Callers hold p.mu.
func (p *poller) updateGauge() {
	if p.metricsOn {
		p.registry.PollerTasks.WithLabelValues(p.name).Set(float64(len(p.entries)))
	}
}

func ticksToDuration(ticks int32, u task.Unit) time.Duration {
	if u == task.Micros {
		return time.Duration(ticks) * time.Microsecond
	}
	return time.Duration(ticks) * time.Millisecond
}
