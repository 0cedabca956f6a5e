package inject

import (
	"encoding/json"
	"fmt"
)

// Lifetime specifies how a Registry caches the instances a factory produces.
type Lifetime int

const (
	// Unique invokes the factory on every resolution. No instance is cached
	// and no state is shared between resolutions. This is the zero value.
	Unique Lifetime = iota

	// Shared invokes the factory once, on the first successful resolution,
	// and returns the memoized instance for the rest of the Registry's life.
	// Concurrent first resolutions never construct the instance twice.
	Shared
)

// String returns the string representation of the Lifetime.
func (l Lifetime) String() string {
	switch l {
	case Unique:
		return "Unique"
	case Shared:
		return "Shared"
	default:
		return fmt.Sprintf("Unknown(%d)", int(l))
	}
}

// IsValid checks if the lifetime is one of the declared values.
func (l Lifetime) IsValid() bool {
	return l >= Unique && l <= Shared
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifetime) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, LifetimeError{Value: int(l)}
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// The aliases "prototype" and "transient" map to Unique, "singleton" to Shared.
func (l *Lifetime) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Unique", "unique", "prototype", "transient":
		*l = Unique
	case "Shared", "shared", "singleton":
		*l = Shared
	default:
		return LifetimeError{Value: string(text)}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Lifetime) MarshalJSON() ([]byte, error) {
	text, err := l.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Lifetime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	return l.UnmarshalText([]byte(s))
}
