package testutil

import (
	"testing"

	"github.com/junioryono/inject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertResolvable checks if a capability can be resolved
func AssertResolvable[T any](t *testing.T, registry *inject.Registry, opts ...inject.KeyOption) T {
	t.Helper()
	instance, err := inject.Resolve[T](registry, opts...)
	require.NoError(t, err, "failed to resolve %s", inject.KeyOf[T]())
	require.NotNil(t, instance, "resolved instance is nil")
	return instance
}

// AssertNotFound checks if resolution fails with a not found error
func AssertNotFound[T any](t *testing.T, registry *inject.Registry, opts ...inject.KeyOption) {
	t.Helper()
	_, err := inject.Resolve[T](registry, opts...)
	assert.Error(t, err)
	assert.True(t, inject.IsNotFound(err), "expected not found error, got: %v", err)
}

// AssertAbsent checks if optional resolution reports absence
func AssertAbsent[T any](t *testing.T, registry *inject.Registry, opts ...inject.KeyOption) {
	t.Helper()
	instance, ok := inject.Optional[T](registry, opts...)
	assert.False(t, ok, "expected %s to be absent", inject.KeyOf[T]())
	assert.Zero(t, instance)
}

// AssertPanicsWithError checks if a function panics with specific error
func AssertPanicsWithError(t *testing.T, expectedError error, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			assert.Fail(t, "function did not panic", msgAndArgs...)
			return
		}

		err, ok := r.(error)
		if !ok {
			assert.Fail(t, "panic value is not an error", msgAndArgs...)
			return
		}

		assert.ErrorIs(t, err, expectedError, msgAndArgs...)
	}()
	f()
}

// AssertSameInstance verifies two instances are the same
func AssertSameInstance(t *testing.T, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Same(t, expected, actual, msgAndArgs...)
}

// AssertDifferentInstances verifies two instances are different
func AssertDifferentInstances(t *testing.T, first, second interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	assert.NotSame(t, first, second, msgAndArgs...)
}

// AssertErrorType checks if an error is of a specific type
func AssertErrorType[T error](t *testing.T, err error, msgAndArgs ...interface{}) T {
	t.Helper()
	var target T
	assert.ErrorAs(t, err, &target, msgAndArgs...)
	return target
}
