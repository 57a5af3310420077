package testutil

import "sync"

// CallbackTracker records task callback invocations for tests: how many
// times the callback ran and the most recent opaque argument it was handed.
type CallbackTracker struct {
	mu    sync.Mutex
	count int
	value any
}

// NewCallbackTracker creates an empty tracker.
func NewCallbackTracker() *CallbackTracker {
	return &CallbackTracker{}
}

// Mark records one invocation. Its signature matches a task's
// zero-argument callback so it can be bound directly.
func (c *CallbackTracker) Mark() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
}

// MarkValue records one invocation and remembers the callback argument.
// Its signature matches a task's argument-taking callback.
func (c *CallbackTracker) MarkValue(value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	c.value = value
}

// Called reports whether the callback ran at least once.
func (c *CallbackTracker) Called() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count > 0
}

// CallCount returns the number of recorded invocations.
func (c *CallbackTracker) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Value returns the most recent recorded argument, or nil.
func (c *CallbackTracker) Value() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Reset clears the tracker.
func (c *CallbackTracker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = 0
	c.value = nil
}
