package testutil

import (
	"testing"

	"github.com/junioryono/inject"
	"github.com/stretchr/testify/assert"
)

// RegistryBuilder provides a fluent interface for building test registries
type RegistryBuilder struct {
	t       *testing.T
	options *inject.Options
	modules []*inject.Module
	extra   []inject.ModuleOption
}

// NewRegistryBuilder creates a new RegistryBuilder
func NewRegistryBuilder(t *testing.T) *RegistryBuilder {
	return &RegistryBuilder{t: t}
}

// WithOptions sets the registry options
func (b *RegistryBuilder) WithOptions(options *inject.Options) *RegistryBuilder {
	b.options = options
	return b
}

// WithModule adds a module to apply
func (b *RegistryBuilder) WithModule(module *inject.Module) *RegistryBuilder {
	b.modules = append(b.modules, module)
	return b
}

// With adds loose registrations, applied after the modules
func (b *RegistryBuilder) With(options ...inject.ModuleOption) *RegistryBuilder {
	b.extra = append(b.extra, options...)
	return b
}

// Build creates the registry and closes it when the test ends
func (b *RegistryBuilder) Build() *inject.Registry {
	b.t.Helper()

	registry := inject.NewRegistryWithOptions(b.options)
	registry.AddModules(b.modules...)
	registry.AddModules(inject.NewModule("test", b.extra...))

	b.t.Cleanup(func() {
		assert.NoError(b.t, registry.Close())
	})

	return registry
}
