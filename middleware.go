package microdi

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Middleware provides hooks for intercepting container operations.
// Middleware can be used for logging, metrics, testing, etc.
type Middleware interface {
	// BeforeResolve is called before a top-level resolve.
	// Return error to abort resolution.
	BeforeResolve(ctx context.Context, key string) error

	// AfterResolve is called after a top-level resolve.
	// Called even if resolution failed (instance and err may both be set).
	AfterResolve(ctx context.Context, key string, instance any, err error) error

	// AfterDispose is called once a container has been disposed.
	AfterDispose(ctx context.Context, containerID string, err error)
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	middleware []Middleware
}

// newMiddlewareChain creates a chain seeded with mw.
func newMiddlewareChain(mw ...Middleware) *middlewareChain {
	return &middlewareChain{
		middleware: append(make([]Middleware, 0, len(mw)), mw...),
	}
}

// add appends middleware to the chain.
func (m *middlewareChain) add(middleware Middleware) {
	m.middleware = append(m.middleware, middleware)
}

// clone copies the chain for a child container.
func (m *middlewareChain) clone() *middlewareChain {
	return newMiddlewareChain(m.middleware...)
}

// beforeResolve calls BeforeResolve on all middleware.
func (m *middlewareChain) beforeResolve(ctx context.Context, key string) error {
	for _, mw := range m.middleware {
		if err := mw.BeforeResolve(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// afterResolve calls AfterResolve on all middleware.
func (m *middlewareChain) afterResolve(ctx context.Context, key string, instance any, err error) error {
	for _, mw := range m.middleware {
		if mwErr := mw.AfterResolve(ctx, key, instance, err); mwErr != nil {
			return mwErr
		}
	}
	return nil
}

// afterDispose calls AfterDispose on all middleware.
func (m *middlewareChain) afterDispose(ctx context.Context, containerID string, err error) {
	for _, mw := range m.middleware {
		mw.AfterDispose(ctx, containerID, err)
	}
}

// FuncMiddleware wraps functions as Middleware.
type FuncMiddleware struct {
	BeforeResolveFunc func(ctx context.Context, key string) error
	AfterResolveFunc  func(ctx context.Context, key string, instance any, err error) error
	AfterDisposeFunc  func(ctx context.Context, containerID string, err error)
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(ctx context.Context, key string) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(ctx, key)
	}
	return nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(ctx context.Context, key string, instance any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(ctx, key, instance, err)
	}
	return nil
}

// AfterDispose implements Middleware.
func (f *FuncMiddleware) AfterDispose(ctx context.Context, containerID string, err error) {
	if f.AfterDisposeFunc != nil {
		f.AfterDisposeFunc(ctx, containerID, err)
	}
}

// LoggingMiddleware logs every top-level resolve with its duration.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	starts := make(map[string][]time.Time)

	return &FuncMiddleware{
		BeforeResolveFunc: func(_ context.Context, key string) error {
			starts[key] = append(starts[key], time.Now())
			return nil
		},
		AfterResolveFunc: func(_ context.Context, key string, instance any, err error) error {
			fields := []zap.Field{zap.String("key", key)}

			if stack := starts[key]; len(stack) > 0 {
				fields = append(fields, zap.Duration("elapsed", time.Since(stack[len(stack)-1])))
				if len(stack) == 1 {
					delete(starts, key)
				} else {
					starts[key] = stack[:len(stack)-1]
				}
			}

			if err != nil {
				logger.Warn("resolve failed", append(fields, zap.Error(err))...)
				return nil
			}

			logger.Debug("resolved", append(fields, zap.String("type", typeName(instance)))...)
			return nil
		},
		AfterDisposeFunc: func(_ context.Context, containerID string, err error) {
			if err != nil {
				logger.Warn("container disposed with errors", zap.String("container", containerID), zap.Error(err))
				return
			}
			logger.Debug("container disposed", zap.String("container", containerID))
		},
	}
}
