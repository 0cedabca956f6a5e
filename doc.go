// Package inject provides a small dependency resolution registry for Go
// applications.
//
// Modules register factories for abstract capabilities, usually interfaces,
// and consumers retrieve instances by naming only the capability they need.
//
// # Overview
//
// The package provides:
//   - A Registry mapping capability keys to factories
//   - Two lifetimes: Unique (new instance per resolution) and Shared (one
//     memoized instance per registry)
//   - Named registrations to disambiguate several implementations of a type
//   - Modules grouping related registrations
//   - Lazy handles deferring resolution until first use
//   - Loud resolution (Resolve, MustResolve) and tolerant resolution (Optional)
//
// # Basic Usage
//
// Create a registry, apply modules, and resolve:
//
//	var AppModule = inject.NewModule("app",
//	    inject.AddUnique[Greeter](NewGreeter),
//	    inject.AddShared[Clock](NewClock),
//	)
//
//	registry := inject.NewRegistry()
//	defer registry.Close()
//	registry.AddModules(AppModule)
//
//	greeter, err := inject.Resolve[Greeter](registry)
//
// # Capability Keys
//
// A Key combines the declared capability type with an optional name. By
// default the key is derived from the type parameter alone; the Name option
// selects a named registration:
//
//	inject.Register[Logger](registry, inject.Shared, NewConsoleLogger, inject.Name("console"))
//	inject.Register[Logger](registry, inject.Shared, NewFileLogger, inject.Name("file"))
//
//	file := inject.MustResolve[Logger](registry, inject.Name("file"))
//
// Registering the same key twice is not an error: the last registration wins,
// whether it comes from the same module or a module applied later.
//
// # Lifetimes
//
//   - Unique: the factory runs on every resolution
//   - Shared: the factory runs once; every resolution returns the same
//     instance, even when the first resolutions race from several goroutines
//
// A Shared factory that fails is not cached and runs again on the next
// resolution.
//
// # Failure Policy
//
// Resolve reports a missing registration, a failing factory, or a value of
// the wrong type as a ResolutionError. These are composition bugs, so they
// should fail loudly at first use; MustResolve panics with the same error.
// Optional is the only sanctioned way to express that a dependency may
// legitimately not exist:
//
//	if metrics, ok := inject.Optional[Metrics](registry); ok {
//	    metrics.Increment("started")
//	}
//
// # Lazy Handles
//
// A Lazy resolves its capability on first access and keeps the result for
// its own lifetime, independent of the registry's Shared cache:
//
//	type Consumer struct {
//	    greeter *inject.Lazy[Greeter]
//	}
//
//	c := &Consumer{greeter: inject.NewLazy[Greeter](registry)}
//	c.greeter.MustGet().Greet()
//
// Handles created with Inject, or declared as zero values, resolve from the
// default registry installed with SetDefault.
//
// # Thread Safety
//
// Registry, Lazy and OptionalLazy are safe for concurrent use. Factories run
// without registry locks held, so a factory may resolve other capabilities.
// Circular dependencies between factories are not detected and are a caller
// error.
//
// # Teardown
//
// Close discards all entries and cached instances together, closing cached
// instances that implement Disposable or DisposableWithContext in reverse
// creation order.
package inject
