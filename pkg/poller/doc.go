// Package poller provides a packaged main loop for hosts that own several
// tasks and do not want to hand-write the poll-and-sleep cycle themselves.
//
// A Poller holds a named set of tasks and, once started, repeatedly polls
// each one and then sleeps for the minimum of their Remaining values,
// bounded by Config.MaxSleep. Every Poll call happens on the poller's single
// run goroutine, so the tasks keep their single-context contract; the
// poller's own methods are safe to call from other goroutines.
//
// Callbacks run synchronously inside the poll cycle while the poller's lock
// is held. They must be short, and they must not call back into the poller.
//
// Basic usage:
//
//	p := poller.New()
//
//	blink := task.New(toggleLED)
//	blink.CallEvery(250)
//	_ = p.Add("blink", blink)
//
//	_ = p.Start()
//	defer func() { <-p.Stop() }()
//
// Cron schedules:
//
// AddCron arms a one-shot task at each occurrence of a cron expression
// (seconds-granularity, robfig/cron syntax) and re-arms it after every
// firing:
//
//	report := task.New(emitReport)
//	_ = p.AddCron("report", "0 */5 * * * *", report) // every five minutes
//
// The cron occurrence is translated to a tick delay against the wall clock,
// so cron entries only make sense for tasks backed by a wall-clock tick
// source. An occurrence farther away than the representable 31-bit window is
// not armed immediately; the poller retries on later wakeups until the
// occurrence is close enough to represent.
package poller
