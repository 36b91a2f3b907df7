package idgen

import "sync/atomic"

// Sequence hands out process-unique positive IDs. One sequence is shared by
// every entity type, so IDs are unique across the whole store and are never
// reused after deletion.
type Sequence interface {
	Next() int
}

// Counter is an atomic monotonic Sequence.
type Counter struct {
	last int64
}

// NewCounter creates a counter whose first Next() returns start.
func NewCounter(start int) *Counter {
	return &Counter{last: int64(start) - 1}
}

// Next returns the next ID in the sequence.
func (c *Counter) Next() int {
	return int(atomic.AddInt64(&c.last, 1))
}
