package state

import "sync"

// Clock issues monotonically increasing sequence numbers. Every dispatched
// request is stamped at issue time; commits compare sequence numbers per
// operation key so commit order follows issue order even when the network
// reorders completions.
type Clock struct {
	mu  sync.Mutex
	seq uint64
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) Next() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

func (c *Clock) Current() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}
