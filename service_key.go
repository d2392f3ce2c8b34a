package microdi

// ServiceKey provides type-safe service identification.
// Use NewServiceKey to create typed keys for your services.
type ServiceKey[T any] struct {
	name string
}

// NewServiceKey creates a new typed service key.
// The type parameter T ensures type safety when registering and resolving services.
//
// Example:
//
//	var DatabaseKey = NewServiceKey[*Database]("database")
//	var UserServiceKey = NewServiceKey[*UserService]("userService")
func NewServiceKey[T any](name string) ServiceKey[T] {
	return ServiceKey[T]{name: name}
}

// Name returns the string name of the service key.
func (k ServiceKey[T]) Name() string {
	return k.name
}

// Ref returns a dependency on the key.
func (k ServiceKey[T]) Ref() Dependency {
	return Ref(k.name)
}

// RegisterWithKey registers a typed constructor under a typed service key.
//
// Example:
//
//	var DatabaseKey = NewServiceKey[*Database]("database")
//	RegisterWithKey(c, DatabaseKey, func(args ...any) (*Database, error) {
//	    return &Database{}, nil
//	}, Singleton())
func RegisterWithKey[T any](c *Container, key ServiceKey[T], fn func(args ...any) (T, error), opts ...RegisterOption) (*Registration, error) {
	return RegisterFunc(c, key.name, fn, opts...)
}

// RegisterInstanceWithKey registers an external instance under a typed key.
func RegisterInstanceWithKey[T any](c *Container, key ServiceKey[T], instance T) error {
	return c.RegisterInstance(key.name, instance)
}

// ResolveWithKey resolves a service using a typed service key.
//
// Example:
//
//	db, err := ResolveWithKey(c, DatabaseKey)
func ResolveWithKey[T any](c *Container, key ServiceKey[T], args ...any) (T, error) {
	return Resolve[T](c, key.name, args...)
}

// MustWithKey resolves a service using a typed service key and panics on error.
//
// Example:
//
//	db := MustWithKey(c, DatabaseKey)
func MustWithKey[T any](c *Container, key ServiceKey[T], args ...any) T {
	return Must[T](c, key.name, args...)
}

// HasKey checks if a service is registered using a typed service key.
func HasKey[T any](c *Container, key ServiceKey[T]) bool {
	ok, err := c.IsRegistered(key.name)

	return err == nil && ok
}

// InspectKey returns diagnostic information about a service using a typed service key.
func InspectKey[T any](c *Container, key ServiceKey[T]) RegistrationInfo {
	return c.Inspect(key.name)
}
