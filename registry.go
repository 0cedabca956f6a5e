package inject

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry is the composition root. It maps capability keys to registration
// entries and owns every instance cached by Shared entries.
//
// Modules populate a Registry at startup; consumers query it afterwards,
// either directly or through lazy handles. A Registry is safe for concurrent
// use. Registering a key that already exists silently replaces the previous
// entry (last registration wins).
//
// Example:
//
//	registry := inject.NewRegistry()
//	defer registry.Close()
//
//	registry.AddModules(LoggingModule, StorageModule)
//
//	logger, err := inject.Resolve[Logger](registry)
type Registry struct {
	id      string
	options Options

	mu      sync.RWMutex
	entries map[Key]*Descriptor

	lifecycle *lifecycleManager
}

// Options configures a Registry.
type Options struct {
	// OnResolved is called after each successful resolution with the instance
	// returned and the time spent producing it.
	OnResolved func(key Key, instance any, duration time.Duration)

	// OnError is called when Resolve fails. Optional misses are not errors and
	// do not trigger it.
	OnError func(key Key, err error)
}

// NewRegistry creates an empty Registry with default options.
func NewRegistry() *Registry {
	return NewRegistryWithOptions(nil)
}

// NewRegistryWithOptions creates an empty Registry with custom options.
func NewRegistryWithOptions(options *Options) *Registry {
	r := &Registry{
		id:        uuid.NewString(),
		entries:   make(map[Key]*Descriptor),
		lifecycle: newLifecycleManager(),
	}

	if options != nil {
		r.options = *options
	}

	return r
}

// ID returns the unique identifier generated when the registry was created.
func (r *Registry) ID() string {
	return r.id
}

// Register stores a registration entry for key, replacing any existing entry
// and the instance it may have cached.
func (r *Registry) Register(key Key, lifetime Lifetime, factory Factory) {
	descriptor := newDescriptor(key, lifetime, factory)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = descriptor
}

// AddModules applies modules to the registry in order.
func (r *Registry) AddModules(modules ...*Module) {
	for _, module := range modules {
		if module == nil {
			continue
		}

		module.Apply(r)
	}
}

// Resolve returns an instance for key. It fails with a ResolutionError when
// the key is not registered, when the factory fails, or when the produced
// value is not assignable to key.Type.
func (r *Registry) Resolve(key Key) (any, error) {
	start := time.Now()

	instance, err := r.resolve(key)
	if err != nil {
		if r.options.OnError != nil {
			r.options.OnError(key, err)
		}
		return nil, err
	}

	if r.options.OnResolved != nil {
		r.options.OnResolved(key, instance, time.Since(start))
	}

	return instance, nil
}

// Optional is Resolve for dependencies that may legitimately be absent.
// Any failure is reported as (nil, false) instead of an error.
func (r *Registry) Optional(key Key) (any, bool) {
	start := time.Now()

	instance, err := r.resolve(key)
	if err != nil {
		return nil, false
	}

	if r.options.OnResolved != nil {
		r.options.OnResolved(key, instance, time.Since(start))
	}

	return instance, true
}

func (r *Registry) resolve(key Key) (any, error) {
	r.mu.RLock()
	descriptor, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return nil, ResolutionError{Key: key, Cause: ErrCapabilityNotFound}
	}

	// The factory runs without the registry lock so it can resolve other
	// capabilities.
	instance, created, err := descriptor.produce()
	if err != nil {
		return nil, ResolutionError{Key: key, Cause: err}
	}

	if created {
		r.lifecycle.track(instance)
	}

	return instance, nil
}

// Contains reports whether key has a registration.
func (r *Registry) Contains(key Key) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[key]
	return ok
}

// Count returns the number of registered keys.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Descriptors returns a snapshot of all registration entries, ordered by key.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	descriptors := make([]Descriptor, 0, len(r.entries))
	for _, d := range r.entries {
		descriptors = append(descriptors, *d)
	}
	r.mu.RUnlock()

	slices.SortFunc(descriptors, func(a, b Descriptor) int {
		return cmp.Compare(a.Key.String(), b.Key.String())
	})

	return descriptors
}

// Close tears the registry down: every entry and every cached instance is
// discarded together, and cached instances implementing Disposable or
// DisposableWithContext are closed in reverse order of creation.
// The registry is empty afterwards and may be populated again.
func (r *Registry) Close() error {
	return r.CloseContext(context.Background())
}

// CloseContext is Close with a context passed to DisposableWithContext
// instances.
func (r *Registry) CloseContext(ctx context.Context) error {
	r.mu.Lock()
	r.entries = make(map[Key]*Descriptor)
	r.mu.Unlock()

	return r.lifecycle.dispose(ctx)
}
