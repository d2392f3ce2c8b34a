package microdi

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Disposable is implemented by instances that release resources when the
// container owning them is disposed.
type Disposable interface {
	Dispose() error
}

// disposer is the error-less variant of Disposable.
type disposer interface {
	Dispose()
}

// Dispose disposes every instance the container owns, newest first, then
// every child container. The container and its descendants reject further
// use afterwards. Instances registered with RegisterInstance are left alone.
// Calling Dispose again is a no-op.
func (c *Container) Dispose() error {
	if c.disposed {
		return nil
	}

	c.disposed = true

	var err error

	// Dispose of owned instances in reverse order
	for i := len(c.owned) - 1; i >= 0; i-- {
		o := c.owned[i]
		if dErr := disposeInstance(o.instance); dErr != nil {
			c.logger.Warn("failed to dispose instance", zap.String("key", o.key), zap.Error(dErr))
			err = multierr.Append(err, fmt.Errorf("failed to dispose %s: %w", o.key, dErr))
		}
	}

	// children detach themselves from c while disposing
	for _, child := range slices.Clone(c.children) {
		err = multierr.Append(err, child.Dispose())
	}

	if c.parent != nil {
		c.parent.removeChild(c)
	}

	c.owned = nil
	c.singletons = nil
	c.perContainer = nil
	c.children = nil

	c.logger.Debug("disposed")
	c.middleware.afterDispose(context.Background(), c.id, err)

	return err
}

func (c *Container) removeChild(child *Container) {
	c.children = slices.DeleteFunc(c.children, func(cc *Container) bool {
		return cc == child
	})
}

func disposeInstance(instance any) error {
	switch d := instance.(type) {
	case Disposable:
		return d.Dispose()
	case disposer:
		d.Dispose()
	}

	return nil
}
