package inject

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are wrapped in typed errors when returned. Match them with errors.Is.

var (
	// ErrCapabilityNotFound is the cause of a resolution for a key that has no
	// registration.
	ErrCapabilityNotFound = errors.New("capability not registered")

	// ErrFactoryNil is the cause of a resolution for a key registered with a
	// nil factory.
	ErrFactoryNil = errors.New("factory cannot be nil")

	// ErrRegistryNil is the cause of a resolution against a nil registry, or
	// through a lazy handle when no default registry has been set.
	ErrRegistryNil = errors.New("registry cannot be nil")
)

var (
	_ error = LifetimeError{}
	_ error = ResolutionError{}
	_ error = TypeMismatchError{}
	_ error = FactoryError{}
	_ error = DisposalError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// LifetimeError indicates an invalid lifetime value.
type LifetimeError struct {
	Value any
}

func (e LifetimeError) Error() string {
	return fmt.Sprintf("invalid lifetime: %v", e.Value)
}

// ResolutionError is returned for every failed resolution. Cause holds the
// reason: ErrCapabilityNotFound, a TypeMismatchError, a FactoryError, or a
// LifetimeError.
type ResolutionError struct {
	Key   Key
	Cause error
}

func (e ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString("unable to resolve ")
	b.WriteString(e.Key.String())

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	if errors.Is(e.Cause, ErrCapabilityNotFound) {
		b.WriteString("\nMake sure a module registering this capability is applied before it is resolved.")
	}

	return b.String()
}

func (e ResolutionError) Unwrap() error {
	return e.Cause
}

// TypeMismatchError indicates a factory produced a value that is not
// assignable to the capability type of the key it was registered under.
type TypeMismatchError struct {
	Key      Key
	Expected reflect.Type
	Actual   reflect.Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", formatType(e.Expected), formatType(e.Actual))
}

// FactoryError wraps an error returned by a registered factory.
type FactoryError struct {
	Key   Key
	Cause error
}

func (e FactoryError) Error() string {
	return fmt.Sprintf("factory for %s failed: %v", e.Key, e.Cause)
}

func (e FactoryError) Unwrap() error {
	return e.Cause
}

// DisposalError aggregates the errors returned while closing shared instances.
type DisposalError struct {
	Errors []error
}

func (e DisposalError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("registry disposal failed: %v", e.Errors[0])
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("registry disposal failed with %d errors:", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("\n  %d. %v", i+1, err))
	}
	return sb.String()
}

func (e DisposalError) Unwrap() []error {
	return e.Errors
}

// IsNotFound reports whether err was caused by an unregistered capability.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCapabilityNotFound)
}

// IsTypeMismatch reports whether err was caused by a factory producing a
// value of the wrong type.
func IsTypeMismatch(err error) bool {
	var mismatch TypeMismatchError
	return errors.As(err, &mismatch)
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Interface, reflect.Struct:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
