package inject

import "reflect"

// Register registers factory for capability T with the given lifetime.
// A Name option disambiguates multiple registrations of the same T.
//
// Example:
//
//	inject.Register[Logger](r, inject.Shared, NewConsoleLogger, inject.Name("console"))
func Register[T any](r *Registry, lifetime Lifetime, factory func() T, opts ...KeyOption) {
	var erased Factory
	if factory != nil {
		erased = func() (any, error) {
			return factory(), nil
		}
	}

	r.Register(keyFor[T](opts), lifetime, erased)
}

// RegisterFunc is Register for factories that can fail. A factory error is
// returned from resolution wrapped in a FactoryError; a Shared registration
// whose factory fails is retried on the next resolution.
func RegisterFunc[T any](r *Registry, lifetime Lifetime, factory func() (T, error), opts ...KeyOption) {
	var erased Factory
	if factory != nil {
		erased = func() (any, error) {
			instance, err := factory()
			if err != nil {
				return nil, err
			}
			return instance, nil
		}
	}

	r.Register(keyFor[T](opts), lifetime, erased)
}

// Resolve resolves capability T from the registry.
//
// A missing registration, a failing factory, or a value of the wrong type is
// reported as a ResolutionError. These indicate a composition bug and should
// not be silently ignored; use Optional for dependencies that may be absent.
func Resolve[T any](r *Registry, opts ...KeyOption) (T, error) {
	return resolveAs[T](r, keyFor[T](opts))
}

// MustResolve resolves capability T from the registry and panics with the
// ResolutionError if it cannot.
//
// Example:
//
//	logger := inject.MustResolve[Logger](registry, inject.Name("file"))
func MustResolve[T any](r *Registry, opts ...KeyOption) T {
	instance, err := Resolve[T](r, opts...)
	if err != nil {
		panic(err)
	}
	return instance
}

// Optional resolves capability T, reporting false instead of failing when it
// is not registered or cannot be produced.
//
// Example:
//
//	if metrics, ok := inject.Optional[Metrics](registry); ok {
//	    metrics.Increment("requests")
//	}
func Optional[T any](r *Registry, opts ...KeyOption) (T, bool) {
	return optionalAs[T](r, keyFor[T](opts))
}

// IsRegistered reports whether capability T has a registration.
func IsRegistered[T any](r *Registry, opts ...KeyOption) bool {
	if r == nil {
		return false
	}
	return r.Contains(keyFor[T](opts))
}

func resolveAs[T any](r *Registry, key Key) (T, error) {
	var zero T

	if r == nil {
		return zero, ResolutionError{Key: key, Cause: ErrRegistryNil}
	}

	instance, err := r.Resolve(key)
	if err != nil {
		return zero, err
	}

	result, ok := instance.(T)
	if !ok {
		return zero, ResolutionError{
			Key:   key,
			Cause: TypeMismatchError{Key: key, Expected: key.Type, Actual: reflect.TypeOf(instance)},
		}
	}

	return result, nil
}

func optionalAs[T any](r *Registry, key Key) (T, bool) {
	var zero T

	if r == nil {
		return zero, false
	}

	instance, ok := r.Optional(key)
	if !ok {
		return zero, false
	}

	result, ok := instance.(T)
	if !ok {
		return zero, false
	}

	return result, true
}
