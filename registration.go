package microdi

// Registration describes how one key's value is built. It is configured
// through its fluent methods right after Register and must not be changed
// once the key has been resolved.
type Registration struct {
	key       string
	owner     *Container
	blueprint Blueprint
	resolver  Dependency // set when the whole body is a resolver dependency
	deps      []Dependency
	lifetime  Lifetime
	group     string

	// LifetimeExternal only.
	instance any
	owned    bool
}

// Key returns the registered key.
func (r *Registration) Key() string {
	return r.key
}

// Lifetime returns the configured lifetime.
func (r *Registration) Lifetime() Lifetime {
	return r.lifetime
}

// Group returns the group name, or "" when the registration is in none.
func (r *Registration) Group() string {
	return r.group
}

// Dependencies returns the declared dependencies in order.
func (r *Registration) Dependencies() []Dependency {
	out := make([]Dependency, len(r.deps))
	copy(out, r.deps)

	return out
}

// Inject appends key dependencies.
func (r *Registration) Inject(keys ...string) *Registration {
	for _, key := range keys {
		r.deps = append(r.deps, Ref(key))
	}

	return r
}

// InjectDeps appends arbitrary dependencies: Ref, Delegate, FactoryFor,
// UseResolver or OwningContainer. A nil dependency is reported when the
// registration resolves; the InjectDeps option reports it at Register.
func (r *Registration) InjectDeps(deps ...Dependency) *Registration {
	r.deps = append(r.deps, deps...)

	return r
}

// Transient builds a new instance on every resolve.
func (r *Registration) Transient() *Registration {
	r.lifetime = LifetimeTransient

	return r
}

// Singleton caches one instance in the owning container.
func (r *Registration) Singleton() *Registration {
	r.lifetime = LifetimeSingleton

	return r
}

// SingletonPerContainer caches one instance in each resolving container.
func (r *Registration) SingletonPerContainer() *Registration {
	r.lifetime = LifetimeSingletonPerContainer

	return r
}

// InGroup adds the registration to a named group of its owning container.
// A registration belongs to at most one group; a second call fails even
// with the same name.
func (r *Registration) InGroup(name string) (*Registration, error) {
	if name == "" {
		return r, errInvalidKey("InGroup(groupName)", "name")
	}

	if r.group != "" {
		return r, ErrDuplicateGroup(r.key, r.group)
	}

	r.group = name

	// options run before Register stores r; store adds the group then
	if r.owner.registrations[r.key] == r {
		r.owner.groups.add(name, r.key)
	}

	return r, nil
}
