package inject

import (
	"sync"
	"sync/atomic"
)

// sharedCell memoizes the instance of a Shared registration.
// It holds at most one value and is never invalidated; a new registration
// for the same key gets a new cell.
type sharedCell struct {
	mu       sync.Mutex
	instance any
	ready    atomic.Bool
}

// get returns the cached instance, or runs produce to populate the cell.
// The check-then-populate sequence is serialized by the cell's mutex, so
// concurrent first callers invoke produce at most once. A failed produce
// leaves the cell empty. created reports whether this call populated it.
func (c *sharedCell) get(produce func() (any, error)) (instance any, created bool, err error) {
	if c.ready.Load() {
		return c.instance, false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready.Load() {
		return c.instance, false, nil
	}

	instance, err = produce()
	if err != nil {
		return nil, false, err
	}

	c.instance = instance
	c.ready.Store(true)
	return instance, true, nil
}

// cached returns the memoized instance, if any.
func (c *sharedCell) cached() (any, bool) {
	if !c.ready.Load() {
		return nil, false
	}
	return c.instance, true
}
