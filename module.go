package inject

// ModuleOption represents a registration action within a module.
// Any func(*Registry) can serve as one, which lets a module register
// factories that resolve other capabilities from the same registry.
type ModuleOption func(*Registry)

// Module is a named bundle of registrations applied to a Registry at
// composition time. Applying a module has no effect other than installing
// its entries; modules applied later win on key collisions.
type Module struct {
	name    string
	options []ModuleOption
}

// NewModule creates a new module with the given name and registrations.
// Modules are a way to group related registrations together.
//
// Example:
//
//	var LoggingModule = inject.NewModule("logging",
//	    inject.AddShared[Logger](NewConsoleLogger, inject.Name("console")),
//	    inject.AddShared[Logger](NewFileLogger, inject.Name("file")),
//	)
//
//	var AppModule = inject.NewModule("app",
//	    inject.Include(LoggingModule),
//	    inject.AddUnique[Greeter](NewGreeter),
//	    func(r *inject.Registry) {
//	        inject.Register[Worker](r, inject.Unique, func() Worker {
//	            return NewWorker(inject.MustResolve[Logger](r, inject.Name("file")))
//	        })
//	    },
//	)
func NewModule(name string, options ...ModuleOption) *Module {
	return &Module{
		name:    name,
		options: options,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// Apply installs the module's registrations into r, in declaration order.
// Nil options are skipped.
func (m *Module) Apply(r *Registry) {
	for _, option := range m.options {
		if option == nil {
			continue
		}

		option(r)
	}
}

// Include nests a module inside another.
func Include(module *Module) ModuleOption {
	return func(r *Registry) {
		if module == nil {
			return
		}

		module.Apply(r)
	}
}

// Provide creates a ModuleOption registering an untyped factory under key.
func Provide(key Key, lifetime Lifetime, factory Factory) ModuleOption {
	return func(r *Registry) {
		r.Register(key, lifetime, factory)
	}
}

// AddUnique creates a ModuleOption for adding a Unique capability.
func AddUnique[T any](factory func() T, opts ...KeyOption) ModuleOption {
	return func(r *Registry) {
		Register(r, Unique, factory, opts...)
	}
}

// AddShared creates a ModuleOption for adding a Shared capability.
func AddShared[T any](factory func() T, opts ...KeyOption) ModuleOption {
	return func(r *Registry) {
		Register(r, Shared, factory, opts...)
	}
}

// AddUniqueFunc creates a ModuleOption for adding a Unique capability whose
// factory can fail.
func AddUniqueFunc[T any](factory func() (T, error), opts ...KeyOption) ModuleOption {
	return func(r *Registry) {
		RegisterFunc(r, Unique, factory, opts...)
	}
}

// AddSharedFunc creates a ModuleOption for adding a Shared capability whose
// factory can fail.
func AddSharedFunc[T any](factory func() (T, error), opts ...KeyOption) ModuleOption {
	return func(r *Registry) {
		RegisterFunc(r, Shared, factory, opts...)
	}
}
