package inject

import (
	"reflect"
)

// Factory produces an instance of a capability. It is type-erased so a single
// Registry can hold factories for any capability type.
type Factory func() (any, error)

// Descriptor is a registration entry: a key, the factory producing instances
// for it, and the lifetime controlling how those instances are cached.
//
// Descriptors are immutable once registered. Registering the same key again
// replaces the descriptor, together with any instance it had cached.
type Descriptor struct {
	Key      Key
	Lifetime Lifetime
	Factory  Factory

	cell *sharedCell
}

func newDescriptor(key Key, lifetime Lifetime, factory Factory) *Descriptor {
	d := &Descriptor{
		Key:      key,
		Lifetime: lifetime,
		Factory:  factory,
	}

	if lifetime == Shared {
		d.cell = &sharedCell{}
	}

	return d
}

// IsShared reports whether the descriptor memoizes its instance.
func (d *Descriptor) IsShared() bool {
	return d.Lifetime == Shared
}

// IsCached reports whether a Shared descriptor already holds its instance.
func (d *Descriptor) IsCached() bool {
	if d.cell == nil {
		return false
	}
	_, ok := d.cell.cached()
	return ok
}

// produce applies the descriptor's lifetime and returns an instance that has
// passed the type check. created is true when a Shared instance was
// constructed by this call.
func (d *Descriptor) produce() (instance any, created bool, err error) {
	if d.Factory == nil {
		return nil, false, ErrFactoryNil
	}

	switch d.Lifetime {
	case Unique:
		instance, err = d.construct()
		return instance, false, err
	case Shared:
		return d.cell.get(d.construct)
	default:
		return nil, false, LifetimeError{Value: int(d.Lifetime)}
	}
}

// construct invokes the factory once and type-checks the result.
func (d *Descriptor) construct() (any, error) {
	instance, err := d.Factory()
	if err != nil {
		return nil, FactoryError{Key: d.Key, Cause: err}
	}

	if err := checkAssignable(d.Key, instance); err != nil {
		return nil, err
	}

	return instance, nil
}

// checkAssignable verifies that instance satisfies the key's capability type.
// An untyped nil never satisfies a typed key.
func checkAssignable(key Key, instance any) error {
	if key.Type == nil {
		return nil
	}

	actual := reflect.TypeOf(instance)
	if actual == nil || !actual.AssignableTo(key.Type) {
		return TypeMismatchError{Key: key, Expected: key.Type, Actual: actual}
	}

	return nil
}
