package visitor

import "sync/atomic"

// Counter counts visits for the lifetime of the process. Nothing is persisted.
type Counter struct {
	count atomic.Int64
}

// NewCounter creates a counter starting at zero
func NewCounter() *Counter {
	return &Counter{}
}

// Increment records a visit and returns the new total, so the first call returns 1
func (c *Counter) Increment() int64 {
	return c.count.Add(1)
}
