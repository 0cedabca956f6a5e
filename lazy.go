package inject

import (
	"reflect"
	"sync"
)

// Lazy is a deferred dependency on capability T.
//
// The first successful Get resolves T once and caches the result for the
// lifetime of the handle. Later calls return the cached value without
// consulting the registry, so a Unique capability resolved through two
// handles yields two instances while a Shared one yields the registry's
// single instance through both. Failures are not cached.
//
// The zero value is ready to use: it resolves the unnamed registration of T
// from the default registry. A Lazy must not be copied after first use.
//
// Example:
//
//	type Worker struct {
//	    logger inject.Lazy[Logger]
//	    store  *inject.Lazy[Store]
//	}
//
//	func NewWorker(r *inject.Registry) *Worker {
//	    return &Worker{store: inject.NewLazy[Store](r, inject.Name("primary"))}
//	}
//
//	func (w *Worker) Run() {
//	    w.logger.MustGet().Info("running")
//	}
type Lazy[T any] struct {
	registry *Registry
	key      Key

	mu       sync.Mutex
	resolved bool
	value    T
}

// NewLazy creates a handle resolving T from r on first access. A nil r binds
// the handle to the default registry in effect at first access.
func NewLazy[T any](r *Registry, opts ...KeyOption) *Lazy[T] {
	return &Lazy[T]{
		registry: r,
		key:      keyFor[T](opts),
	}
}

// Inject creates a handle resolving T from the default registry.
func Inject[T any](opts ...KeyOption) *Lazy[T] {
	return NewLazy[T](nil, opts...)
}

// Key returns the key the handle resolves.
func (l *Lazy[T]) Key() Key {
	return handleKey[T](l.key)
}

// Get returns the cached value, resolving it on first access.
func (l *Lazy[T]) Get() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resolved {
		return l.value, nil
	}

	value, err := resolveAs[T](handleRegistry(l.registry), l.Key())
	if err != nil {
		return value, err
	}

	l.value = value
	l.resolved = true
	return value, nil
}

// MustGet is Get that panics if the capability cannot be resolved.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(err)
	}
	return value
}

// Resolved reports whether the handle holds a cached value.
func (l *Lazy[T]) Resolved() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.resolved
}

// OptionalLazy is a deferred dependency on a capability that may not be
// registered. It caches the value only once it has been found.
// The zero value resolves the unnamed registration of T from the default
// registry.
type OptionalLazy[T any] struct {
	registry *Registry
	key      Key

	mu       sync.Mutex
	resolved bool
	value    T
}

// NewOptionalLazy creates an optional handle resolving T from r on first
// access. A nil r binds the handle to the default registry.
func NewOptionalLazy[T any](r *Registry, opts ...KeyOption) *OptionalLazy[T] {
	return &OptionalLazy[T]{
		registry: r,
		key:      keyFor[T](opts),
	}
}

// Key returns the key the handle resolves.
func (l *OptionalLazy[T]) Key() Key {
	return handleKey[T](l.key)
}

// Get returns the value and true once the capability can be resolved, or the
// zero value and false while it cannot.
func (l *OptionalLazy[T]) Get() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resolved {
		return l.value, true
	}

	value, ok := optionalAs[T](handleRegistry(l.registry), l.Key())
	if !ok {
		return value, false
	}

	l.value = value
	l.resolved = true
	return value, true
}

// handleKey fills in the capability type for zero-value handles.
func handleKey[T any](key Key) Key {
	if key.Type == nil {
		key.Type = reflect.TypeFor[T]()
	}
	return key
}

func handleRegistry(r *Registry) *Registry {
	if r != nil {
		return r
	}
	return Default()
}
