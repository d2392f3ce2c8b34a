package microdi

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Lifetime governs how instances of a registration are cached and shared.
type Lifetime int

const (
	// LifetimeSingleton instances are cached once in the container that owns the
	// registration and shared by all of its descendants.
	LifetimeSingleton Lifetime = iota

	// LifetimeTransient instances are built on every resolve and never cached.
	LifetimeTransient

	// LifetimeSingletonPerContainer instances are cached in each container that
	// resolves them, even when the registration is inherited.
	LifetimeSingletonPerContainer

	// LifetimeExternal instances were handed to RegisterInstance and are returned as-is.
	LifetimeExternal
)

var lifetimeNames = map[Lifetime]string{
	LifetimeSingleton:             "singleton",
	LifetimeTransient:             "transient",
	LifetimeSingletonPerContainer: "singleton_per_container",
	LifetimeExternal:              "external",
}

// String returns the string representation of the lifetime.
func (l Lifetime) String() string {
	if name, ok := lifetimeNames[l]; ok {
		return name
	}

	return fmt.Sprintf("lifetime(%d)", int(l))
}

// ParseLifetime parses the names produced by Lifetime.String.
func ParseLifetime(s string) (Lifetime, error) {
	for l, name := range lifetimeNames {
		if name == s {
			return l, nil
		}
	}

	return 0, fmt.Errorf("unknown lifetime %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Lifetime) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	parsed, err := ParseLifetime(s)
	if err != nil {
		return err
	}

	*l = parsed

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (l Lifetime) MarshalYAML() (any, error) {
	return l.String(), nil
}

// caches reports whether instances of this lifetime are held by a container.
func (l Lifetime) caches() bool {
	return l == LifetimeSingleton || l == LifetimeSingletonPerContainer
}
