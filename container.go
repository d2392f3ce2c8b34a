package microdi

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Container is a scoped registry of keyed construction recipes plus the
// instances it owns. Lookups walk from a container up through its parents
// and the nearest registration wins.
//
// A Container is not safe for concurrent use.
type Container struct {
	id     string
	name   string
	parent *Container

	registrations map[string]*Registration
	resolvers     map[string]Resolver
	groups        *groupRegistry

	// caches are keyed by registration so a replaced key never serves the
	// previous registration's instance
	singletons   map[*Registration]any
	perContainer map[*Registration]any

	// owned lists every instance this container disposes, in creation order
	owned []ownedInstance

	children []*Container
	disposed bool

	logger          *zap.Logger
	middleware      *middlewareChain
	defaultLifetime Lifetime
}

type ownedInstance struct {
	key      string
	instance any
}

// New creates a root container.
func New(opts ...Option) *Container {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return newContainer(nil, o.name, o.logger, newMiddlewareChain(o.middleware...), o.defaultLifetime)
}

func newContainer(parent *Container, name string, logger *zap.Logger, mw *middlewareChain, lifetime Lifetime) *Container {
	id := uuid.NewString()
	if name == "" {
		name = id
	}

	return &Container{
		id:              id,
		name:            name,
		parent:          parent,
		registrations:   make(map[string]*Registration),
		resolvers:       make(map[string]Resolver),
		groups:          newGroupRegistry(),
		singletons:      make(map[*Registration]any),
		perContainer:    make(map[*Registration]any),
		logger:          logger.With(zap.String("container", name)),
		middleware:      mw,
		defaultLifetime: lifetime,
	}
}

// ID returns the container's unique identifier.
func (c *Container) ID() string {
	return c.id
}

// Name returns the container's name; it defaults to the ID.
func (c *Container) Name() string {
	return c.name
}

// Parent returns the parent container, or nil for a root.
func (c *Container) Parent() *Container {
	return c.parent
}

// IsDisposed reports whether the container or one of its ancestors has
// been disposed.
func (c *Container) IsDisposed() bool {
	return c.isDisposed()
}

func (c *Container) isDisposed() bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.disposed {
			return true
		}
	}

	return false
}

// Use adds middleware to the container.
// Middleware is called in the order they are added.
func (c *Container) Use(middleware Middleware) {
	c.middleware.add(middleware)
}

// CreateChildContainer returns a new container whose lookups fall back to c.
// The child inherits the logger, middleware and default lifetime.
func (c *Container) CreateChildContainer() (*Container, error) {
	if c.isDisposed() {
		return nil, ErrContainerDisposed
	}

	child := newContainer(c, "", c.logger, c.middleware.clone(), c.defaultLifetime)
	c.children = append(c.children, child)

	c.logger.Debug("child container created", zap.String("child", child.name))

	return child, nil
}

// Register stores a blueprint under key and returns its handle for further
// configuration. Registering an existing key replaces it.
//
// blueprint may be a Blueprint, a func(args ...any) (any, error), a
// *Template or a ResolverBlueprint (see ResolverKey). Plain values belong in
// RegisterInstance.
func (c *Container) Register(key string, blueprint any, opts ...RegisterOption) (*Registration, error) {
	if key == "" {
		return nil, errInvalidKey("Register(key, blueprint)", "key")
	}

	if isNil(blueprint) {
		return nil, errNullRegistration("Register(key, blueprint)", "blueprint", key)
	}

	if c.isDisposed() {
		return nil, ErrContainerDisposed
	}

	reg := &Registration{
		key:      key,
		owner:    c,
		lifetime: c.defaultLifetime,
	}

	switch b := blueprint.(type) {
	case ResolverBlueprint:
		if b.Dep == nil {
			return nil, errNullRegistration("Register(key, blueprint)", "resolver", key)
		}

		if err := checkDependency("Register(key, blueprint)", key, b.Dep); err != nil {
			return nil, err
		}
		reg.resolver = b.Dep
	case Blueprint:
		reg.blueprint = b
	case func(args ...any) (any, error):
		reg.blueprint = Constructor(b)
	default:
		return nil, errUnsupportedInstanceType(key, kindName(blueprint))
	}

	for _, opt := range opts {
		if err := opt(reg); err != nil {
			return nil, err
		}
	}

	c.store(reg)

	c.logger.Debug("registered", zap.String("key", key), zap.Stringer("lifetime", reg.lifetime))

	return reg, nil
}

// RegisterInstance stores a ready-made instance under key. The container
// never disposes it.
func (c *Container) RegisterInstance(key string, instance any) error {
	return c.registerInstance("RegisterInstance(key, instance)", key, instance, false)
}

// RegisterOwnedInstance stores a ready-made instance under key and hands its
// ownership to the container, which disposes it on Dispose.
func (c *Container) RegisterOwnedInstance(key string, instance any) error {
	return c.registerInstance("RegisterOwnedInstance(key, instance)", key, instance, true)
}

func (c *Container) registerInstance(call, key string, instance any, owned bool) error {
	if key == "" {
		return errInvalidKey(call, "key")
	}

	if isNil(instance) {
		return errNullRegistration(call, "instance", key)
	}

	if c.isDisposed() {
		return ErrContainerDisposed
	}

	c.store(&Registration{
		key:      key,
		owner:    c,
		lifetime: LifetimeExternal,
		instance: instance,
		owned:    owned,
	})

	if owned {
		c.own(key, instance)
	}

	c.logger.Debug("registered instance", zap.String("key", key), zap.Bool("owned", owned))

	return nil
}

// store installs reg, detaching a replaced registration from its group.
func (c *Container) store(reg *Registration) {
	if prev, ok := c.registrations[reg.key]; ok && prev.group != "" {
		c.groups.remove(prev.group, prev.key)
	}

	c.registrations[reg.key] = reg

	if reg.group != "" {
		c.groups.add(reg.group, reg.key)
	}
}

// AddResolver makes a resolver plugin available to UseResolver(name)
// dependencies resolved through this container or its descendants.
func (c *Container) AddResolver(name string, resolver Resolver) error {
	if name == "" {
		return errInvalidKey("AddResolver(name, resolver)", "name")
	}

	if isNil(resolver) {
		return errNullRegistration("AddResolver(name, resolver)", "resolver", name)
	}

	if c.isDisposed() {
		return ErrContainerDisposed
	}

	c.resolvers[name] = resolver

	return nil
}

// IsRegistered reports whether key is registered on this container or an
// ancestor. Nothing is constructed.
func (c *Container) IsRegistered(key string) (bool, error) {
	if key == "" {
		return false, errInvalidKey("IsRegistered(key)", "key")
	}

	_, ok := c.lookup(key)

	return ok, nil
}

// lookup finds the nearest registration for key.
func (c *Container) lookup(key string) (*Registration, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if reg, ok := cur.registrations[key]; ok {
			return reg, true
		}
	}

	return nil, false
}

// lookupResolver finds the nearest resolver plugin for name.
func (c *Container) lookupResolver(name string) (Resolver, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if r, ok := cur.resolvers[name]; ok {
			return r, true
		}
	}

	return nil, false
}

func (c *Container) own(key string, instance any) {
	c.owned = append(c.owned, ownedInstance{key: key, instance: instance})
}

// String implements fmt.Stringer.
func (c *Container) String() string {
	return fmt.Sprintf("Container(%s)", c.name)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// kindName names a rejected blueprint value in error messages.
func kindName(v any) string {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
