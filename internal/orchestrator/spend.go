package orchestrator

import "sync"

// SpendCounter accumulates session cost in USD. It lives for the process
// lifetime and is never persisted.
type SpendCounter struct {
	mu    sync.Mutex
	total float64
}

// Add adds a turn's cost delta and returns the new running total.
func (c *SpendCounter) Add(delta float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total += delta
	return c.total
}

// Total returns the running total.
func (c *SpendCounter) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}
