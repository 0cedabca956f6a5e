package inject

import "sync/atomic"

// defaultRegistry holds the process-wide composition root.
var defaultRegistry atomic.Pointer[Registry]

// SetDefault sets the default Registry used by handles created without an
// explicit registry (Inject, zero-value Lazy and OptionalLazy).
// This is similar to slog.SetDefault.
//
// Call it once at startup, after the modules have been applied and before
// any consumer touches a handle. Handles resolved earlier keep their cached
// values. Pass nil to remove the default registry.
func SetDefault(r *Registry) {
	defaultRegistry.Store(r)
}

// Default returns the current default Registry, or nil if none is set.
func Default() *Registry {
	return defaultRegistry.Load()
}
