package microdi

import (
	"fmt"
)

// Lazy wraps a dependency that is resolved on first access.
// This is useful for breaking circular dependencies or deferring
// resolution of expensive services until they're actually needed.
//
// Inject it with LazyOf:
//
//	c.Register("a", A, microdi.InjectDeps(microdi.LazyOf[*B]("b")))
type Lazy[T any] struct {
	factory  Factory
	name     string
	value    T
	err      error
	resolved bool
}

// LazyOf depends on a *Lazy[T] for key, bound to the resolving container.
func LazyOf[T any](key string) Dependency {
	return lazyDep[T]{key: key}
}

type lazyDep[T any] struct {
	key string
}

func (d lazyDep[T]) resolve(c *Container, st *resolution) (any, error) {
	f, err := factoryDep(d).resolve(c, st)
	if err != nil {
		return nil, err
	}

	return NewLazy[T](f.(Factory), d.key), nil
}

func (d lazyDep[T]) String() string { return fmt.Sprintf("resolver:lazy(%s)", d.key) }

// NewLazy creates a new lazy dependency wrapper.
func NewLazy[T any](factory Factory, name string) *Lazy[T] {
	return &Lazy[T]{
		factory: factory,
		name:    name,
	}
}

// Get resolves the dependency and returns it.
// A successful resolution happens only once; subsequent calls return the cached value.
func (l *Lazy[T]) Get() (T, error) {
	if l.resolved {
		return l.value, nil
	}

	instance, err := l.factory()
	if err != nil {
		var zero T

		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		var zero T

		return zero, fmt.Errorf("lazy dependency %s: expected type %T, got %T", l.name, zero, instance)
	}

	l.value = typed
	l.resolved = true

	return l.value, nil
}

// MustGet resolves the dependency and returns it, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", l.name, err))
	}

	return value
}

// IsResolved returns true if the dependency has been resolved.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved
}

// Name returns the name of the dependency.
func (l *Lazy[T]) Name() string {
	return l.name
}

// Provider wraps a dependency that resolves again on each access.
// Each call returns whatever the target's lifetime dictates.
type Provider[T any] struct {
	factory Factory
	name    string
}

// ProviderOf depends on a *Provider[T] for key, bound to the resolving container.
func ProviderOf[T any](key string) Dependency {
	return providerDep[T]{key: key}
}

type providerDep[T any] struct {
	key string
}

func (d providerDep[T]) resolve(c *Container, st *resolution) (any, error) {
	f, err := factoryDep(d).resolve(c, st)
	if err != nil {
		return nil, err
	}

	return NewProvider[T](f.(Factory), d.key), nil
}

func (d providerDep[T]) String() string { return fmt.Sprintf("resolver:provider(%s)", d.key) }

// NewProvider creates a new provider for transient dependencies.
func NewProvider[T any](factory Factory, name string) *Provider[T] {
	return &Provider[T]{
		factory: factory,
		name:    name,
	}
}

// Provide resolves and returns an instance of the dependency, passing args
// to its blueprint.
func (p *Provider[T]) Provide(args ...any) (T, error) {
	return TypedFactory[T](p.factory)(args...)
}

// MustProvide resolves and returns a new instance, panicking on error.
func (p *Provider[T]) MustProvide(args ...any) T {
	value, err := p.Provide(args...)
	if err != nil {
		panic(fmt.Sprintf("provider %s failed: %v", p.name, err))
	}

	return value
}

// Name returns the name of the dependency.
func (p *Provider[T]) Name() string {
	return p.name
}
