package inject

import (
	"reflect"
)

// Key identifies a capability inside a Registry.
//
// A key pairs the declared capability type with an optional name. Keys are
// plain comparable values, so two keys built independently for the same type
// and name are equal and address the same registration.
//
// A key with a nil Type is a purely name-based key; values resolved through
// it are not type-checked by the Registry.
type Key struct {
	// Type is the capability type consumers ask for, usually an interface.
	Type reflect.Type

	// Name disambiguates several registrations of the same Type.
	Name string
}

// KeyOf returns the key for capability type T. If a name is given, the first
// one disambiguates the key; additional names are ignored.
//
// Example:
//
//	console := inject.KeyOf[Logger]("console")
//	file := inject.KeyOf[Logger]("file")
func KeyOf[T any](name ...string) Key {
	key := Key{Type: reflect.TypeFor[T]()}
	if len(name) > 0 {
		key.Name = name[0]
	}
	return key
}

// IsNamed reports whether the key carries a disambiguating name.
func (k Key) IsNamed() bool {
	return k.Name != ""
}

// String returns a readable form of the key such as "app.Logger[console]".
func (k Key) String() string {
	var typeName string
	if k.Type == nil {
		typeName = "<untyped>"
	} else {
		typeName = k.Type.String()
	}

	if k.Name == "" {
		return typeName
	}

	return typeName + "[" + k.Name + "]"
}

// KeyOption modifies how a key is derived for registration and resolution.
type KeyOption interface {
	applyKeyOption(*keyOptions)
}

type keyOptions struct {
	Name string
}

// Name is a KeyOption selecting a named registration. The same option is
// accepted when registering and when resolving.
//
//	inject.Register(r, inject.Shared, NewFileLogger, inject.Name("file"))
//	logger, err := inject.Resolve[Logger](r, inject.Name("file"))
func Name(name string) KeyOption {
	return keyNameOption(name)
}

type keyNameOption string

func (o keyNameOption) String() string {
	return "Name(" + string(o) + ")"
}

func (o keyNameOption) applyKeyOption(opts *keyOptions) {
	opts.Name = string(o)
}

// keyFor derives the key for T from the given options.
func keyFor[T any](opts []KeyOption) Key {
	var o keyOptions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyKeyOption(&o)
	}

	return Key{Type: reflect.TypeFor[T](), Name: o.Name}
}
