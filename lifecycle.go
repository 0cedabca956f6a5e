package inject

import (
	"context"
	"fmt"
	"sync"
)

// lifecycleManager manages the lifecycle of disposable shared instances
type lifecycleManager struct {
	closers []func(context.Context) error
	mu      sync.Mutex
}

// newLifecycleManager creates a new lifecycle manager
func newLifecycleManager() *lifecycleManager {
	return &lifecycleManager{
		closers: make([]func(context.Context) error, 0),
	}
}

// track adds an instance to be closed on dispose if it is disposable
func (m *lifecycleManager) track(instance any) {
	var closer func(context.Context) error

	switch d := instance.(type) {
	case Disposable:
		closer = func(context.Context) error { return d.Close() }
	case DisposableWithContext:
		closer = d.Close
	default:
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.closers = append(m.closers, closer)
}

// count returns the number of tracked instances
func (m *lifecycleManager) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.closers)
}

// dispose closes all tracked instances in reverse order
func (m *lifecycleManager) dispose(ctx context.Context) error {
	m.mu.Lock()
	closers := m.closers
	m.closers = nil
	m.mu.Unlock()

	var errs []error

	// Dispose in reverse order (LIFO)
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](ctx); err != nil {
			errs = append(errs, fmt.Errorf("disposal error: %w", err))
		}
	}

	if len(errs) > 0 {
		return DisposalError{Errors: errs}
	}

	return nil
}
