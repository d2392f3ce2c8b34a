package microdi

import (
	"context"
	"slices"

	"go.uber.org/zap"
)

// resolution tracks the keys under construction for one top-level Resolve.
type resolution struct {
	stack []string
}

func (r *resolution) push(key string) error {
	if i := slices.Index(r.stack, key); i >= 0 {
		cycle := append(slices.Clone(r.stack[i:]), key)

		return ErrCircularDependency(cycle)
	}

	r.stack = append(r.stack, key)

	return nil
}

func (r *resolution) pop() {
	r.stack = r.stack[:len(r.stack)-1]
}

// Resolve returns the instance for key, building it and its dependencies as
// their lifetimes require. args are passed to the key's blueprint after its
// declared dependencies.
func (c *Container) Resolve(key string, args ...any) (any, error) {
	if key == "" {
		return nil, errInvalidKey("Resolve(key, ...args)", "key")
	}

	ctx := context.Background()

	// Call middleware before resolve
	if err := c.middleware.beforeResolve(ctx, key); err != nil {
		return nil, err
	}

	instance, err := c.resolve(key, &resolution{}, args)

	// Call middleware after resolve
	if mwErr := c.middleware.afterResolve(ctx, key, instance, err); mwErr != nil {
		return nil, mwErr
	}

	return instance, err
}

// resolve performs the resolution without middleware. Nested dependencies
// come through here with the same resolution state.
func (c *Container) resolve(key string, st *resolution, args []any) (any, error) {
	if key == "" {
		return nil, errInvalidKey("Resolve(key, ...args)", "key")
	}

	if c.isDisposed() {
		return nil, ErrContainerDisposed
	}

	reg, ok := c.lookup(key)
	if !ok {
		return nil, ErrUnregistered(key)
	}

	err := st.push(key)
	if err != nil {
		return nil, err
	}
	defer st.pop()

	var instance any

	switch reg.lifetime {
	case LifetimeExternal:
		if len(args) > 0 {
			return nil, ErrAlreadyBuilt(key)
		}

		return reg.instance, nil

	case LifetimeSingleton:
		// the owning container holds the cache and supplies the dependencies
		instance, err = reg.owner.cached(reg, reg.owner.singletons, st, args)

	case LifetimeSingletonPerContainer:
		instance, err = c.cached(reg, c.perContainer, st, args)

	default:
		instance, err = c.construct(reg, st, args)
	}

	if err != nil {
		return nil, err
	}

	if c.isDisposed() {
		return nil, ErrContainerDisposed
	}

	return instance, nil
}

// cached returns the instance of reg held in cache, building and storing it
// on first use. Nothing is stored when construction fails.
func (c *Container) cached(reg *Registration, cache map[*Registration]any, st *resolution, args []any) (any, error) {
	if instance, ok := cache[reg]; ok {
		if len(args) > 0 {
			return nil, ErrAlreadyBuilt(reg.key)
		}

		return instance, nil
	}

	instance, err := c.construct(reg, st, args)
	if err != nil {
		return nil, err
	}

	// construction may have disposed c; its caches are gone
	if c.isDisposed() {
		return nil, ErrContainerDisposed
	}

	cache[reg] = instance
	c.own(reg.key, instance)

	return instance, nil
}

// construct builds a new instance of reg against c.
func (c *Container) construct(reg *Registration, st *resolution, args []any) (any, error) {
	if reg.resolver != nil {
		return reg.resolver.resolve(c, st)
	}

	deps := make([]any, 0, len(reg.deps)+len(args))

	for _, dep := range reg.deps {
		// the fluent InjectDeps can not report this at registration
		if err := checkDependency("InjectDeps(deps...)", reg.key, dep); err != nil {
			return nil, err
		}

		value, err := dep.resolve(c, st)
		if err != nil {
			return nil, err
		}

		deps = append(deps, value)
	}

	deps = append(deps, args...)

	instance, err := reg.blueprint.Construct(deps)
	if err != nil {
		c.logger.Debug("construction failed", zap.String("key", reg.key), zap.Error(err))

		return nil, NewConstructionError(reg.key, err)
	}

	c.logger.Debug("constructed",
		zap.String("key", reg.key),
		zap.Stringer("lifetime", reg.lifetime),
		zap.Int("dependencies", len(reg.deps)),
	)

	return instance, nil
}
