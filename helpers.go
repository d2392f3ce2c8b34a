package microdi

import (
	"fmt"

	"github.com/xraph/go-utils/errs"
	logger "github.com/xraph/go-utils/log"
)

// Resolve with type safety.
func Resolve[T any](c *Container, key string, args ...any) (T, error) {
	var zero T

	instance, err := c.Resolve(key, args...)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(key, instance)
	}

	return typed, nil
}

// Must resolves or panics - use only during startup.
func Must[T any](c *Container, key string, args ...any) T {
	instance, err := Resolve[T](c, key, args...)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", key, err))
	}

	return instance
}

// ResolveGroup resolves a group and asserts every member to T.
func ResolveGroup[T any](c *Container, group string) ([]T, error) {
	instances, err := c.ResolveGroup(group)
	if err != nil {
		return nil, err
	}

	typed := make([]T, len(instances))

	for i, instance := range instances {
		v, ok := instance.(T)
		if !ok {
			return nil, ErrTypeMismatch(group, instance).WithContext("index", i).(*errs.Error)
		}

		typed[i] = v
	}

	return typed, nil
}

// RegisterFunc registers a typed constructor.
//
//	microdi.RegisterFunc(c, "repo", func(args ...any) (*Repo, error) {
//	    return &Repo{db: args[0].(*DB)}, nil
//	}, microdi.Inject("db"))
func RegisterFunc[T any](c *Container, key string, fn func(args ...any) (T, error), opts ...RegisterOption) (*Registration, error) {
	if fn == nil {
		return nil, errNullRegistration("Register(key, blueprint)", "blueprint", key)
	}

	return c.Register(key, Constructor(func(args ...any) (any, error) {
		return fn(args...)
	}), opts...)
}

// TypedFactory converts a Factory injected through FactoryFor into a typed
// function.
func TypedFactory[T any](f Factory) func(args ...any) (T, error) {
	return func(args ...any) (T, error) {
		var zero T

		instance, err := f(args...)
		if err != nil {
			return zero, err
		}

		typed, ok := instance.(T)
		if !ok {
			return zero, fmt.Errorf("%w: factory produced %T", ErrTypeMismatchSentinel, instance)
		}

		return typed, nil
	}
}

// Arg returns args[i] asserted to T. It is meant for constructors.
func Arg[T any](args []any, i int) (T, error) {
	var zero T

	if i < 0 || i >= len(args) {
		return zero, fmt.Errorf("argument %d out of range (%d arguments)", i, len(args))
	}

	typed, ok := args[i].(T)
	if !ok {
		return zero, fmt.Errorf("%w: argument %d is %T, want %T", ErrTypeMismatchSentinel, i, args[i], zero)
	}

	return typed, nil
}

// LoggerKey is the key GetLogger resolves.
const LoggerKey = "logger"

// GetLogger resolves the application logger registered under LoggerKey.
func GetLogger(c *Container) (logger.Logger, error) {
	return Resolve[logger.Logger](c, LoggerKey)
}
