package microdi

import "fmt"

// Resolver is a pluggable strategy that supplies a dependency value.
// Resolve receives the container performing the resolution, which may be a
// descendant of the container the resolver was added to.
type Resolver interface {
	Resolve(c *Container) (any, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(c *Container) (any, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(c *Container) (any, error) {
	return f(c)
}

// Factory is the value injected for a FactoryFor dependency. Every call
// performs a fresh Resolve of the target key with args appended.
type Factory func(args ...any) (any, error)

// Dependency is one positional dependency of a registration.
type Dependency interface {
	resolve(c *Container, st *resolution) (any, error)
	String() string
}

// Ref depends on the instance registered under key.
func Ref(key string) Dependency {
	return refDep{key: key}
}

// Delegate depends on the value returned by fn, called with the resolving container.
func Delegate(fn func(c *Container) (any, error)) Dependency {
	return delegateDep{fn: fn}
}

// FactoryFor depends on a Factory that resolves key on demand.
func FactoryFor(key string) Dependency {
	return factoryDep{key: key}
}

// UseResolver depends on the value of the nearest resolver plugin added
// under name.
func UseResolver(name string) Dependency {
	return namedDep{name: name}
}

// OwningContainer injects the container performing the resolution.
var OwningContainer Dependency = owningContainerDep{}

type refDep struct {
	key string
}

func (d refDep) resolve(c *Container, st *resolution) (any, error) {
	return c.resolve(d.key, st, nil)
}

func (d refDep) String() string { return d.key }

type delegateDep struct {
	fn func(c *Container) (any, error)
}

func (d delegateDep) resolve(c *Container, _ *resolution) (any, error) {
	return d.fn(c)
}

func (d delegateDep) String() string { return "resolver:delegate" }

type factoryDep struct {
	key string
}

func (d factoryDep) resolve(c *Container, _ *resolution) (any, error) {
	key := d.key

	return Factory(func(args ...any) (any, error) {
		return c.Resolve(key, args...)
	}), nil
}

func (d factoryDep) String() string { return fmt.Sprintf("resolver:factory(%s)", d.key) }

type namedDep struct {
	name string
}

func (d namedDep) resolve(c *Container, _ *resolution) (any, error) {
	r, ok := c.lookupResolver(d.name)
	if !ok {
		return nil, ErrUnknownResolver(d.name)
	}

	return r.Resolve(c)
}

func (d namedDep) String() string { return "resolver:" + d.name }

type owningContainerDep struct{}

func (owningContainerDep) resolve(c *Container, _ *resolution) (any, error) {
	return c, nil
}

func (owningContainerDep) String() string { return "owningContainer" }

// ResolverBlueprint is the blueprint form of a Dependency: the dependency's
// value replaces construction for the registered key.
type ResolverBlueprint struct {
	Dep Dependency
}

// ResolverKey registers dep as the whole body of a key.
//
//	c.Register("clock", microdi.ResolverKey(microdi.Delegate(func(*microdi.Container) (any, error) {
//	    return time.Now, nil
//	})))
func ResolverKey(dep Dependency) ResolverBlueprint {
	return ResolverBlueprint{Dep: dep}
}

// checkDependency rejects a nil dependency or a Delegate without a function
// before it is bound to key.
func checkDependency(call, key string, dep Dependency) error {
	if isNil(dep) {
		return errNullRegistration(call, "dependency", key)
	}

	if d, ok := dep.(delegateDep); ok && d.fn == nil {
		return errNullRegistration(call, "Delegate function", key)
	}

	return nil
}
