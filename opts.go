package microdi

import "go.uber.org/zap"

// RegisterOption is a configuration option for service registration.
// Options are applied in order after the registration is stored.
type RegisterOption func(r *Registration) error

// Singleton makes the service a singleton (default).
func Singleton() RegisterOption {
	return func(r *Registration) error {
		r.Singleton()

		return nil
	}
}

// Transient makes the service created on each resolve.
func Transient() RegisterOption {
	return func(r *Registration) error {
		r.Transient()

		return nil
	}
}

// SingletonPerContainer caches one instance in every resolving container.
func SingletonPerContainer() RegisterOption {
	return func(r *Registration) error {
		r.SingletonPerContainer()

		return nil
	}
}

// Inject declares key dependencies.
func Inject(keys ...string) RegisterOption {
	return func(r *Registration) error {
		r.Inject(keys...)

		return nil
	}
}

// InjectDeps declares dependencies of any kind.
func InjectDeps(deps ...Dependency) RegisterOption {
	return func(r *Registration) error {
		for _, dep := range deps {
			if err := checkDependency("InjectDeps(deps...)", r.key, dep); err != nil {
				return err
			}
		}

		r.InjectDeps(deps...)

		return nil
	}
}

// InGroup adds service to a named group.
func InGroup(group string) RegisterOption {
	return func(r *Registration) error {
		_, err := r.InGroup(group)

		return err
	}
}

// Option configures a Container.
type Option func(o *options)

type options struct {
	name            string
	logger          *zap.Logger
	defaultLifetime Lifetime
	middleware      []Middleware
}

func defaultOptions() options {
	return options{
		logger:          zap.NewNop(),
		defaultLifetime: LifetimeSingleton,
	}
}

// WithName labels the container in logs and inspection output.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDefaultLifetime sets the lifetime given to new registrations.
// LifetimeExternal is reserved for instances and is ignored.
func WithDefaultLifetime(l Lifetime) Option {
	return func(o *options) {
		if l != LifetimeExternal {
			o.defaultLifetime = l
		}
	}
}

// WithMiddleware installs resolve/dispose hooks.
func WithMiddleware(mw ...Middleware) Option {
	return func(o *options) {
		o.middleware = append(o.middleware, mw...)
	}
}
