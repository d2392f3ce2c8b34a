package microdi

import "fmt"

// ServiceRegistration holds configuration for a service to be registered.
type ServiceRegistration struct {
	Key       string
	Blueprint any
	Options   []RegisterOption
}

// Service creates a ServiceRegistration for batch registration.
//
// Example:
//
//	microdi.RegisterServices(c,
//	    microdi.Service("db", NewDatabase, microdi.Singleton()),
//	    microdi.Service("repo", NewRepo, microdi.Inject("db"), microdi.Transient()),
//	)
func Service(key string, blueprint any, opts ...RegisterOption) ServiceRegistration {
	return ServiceRegistration{
		Key:       key,
		Blueprint: blueprint,
		Options:   opts,
	}
}

// RegisterServices registers multiple services in order and stops at the
// first failure. Services registered before the failure stay registered.
func RegisterServices(c *Container, services ...ServiceRegistration) error {
	for _, svc := range services {
		if _, err := c.Register(svc.Key, svc.Blueprint, svc.Options...); err != nil {
			return fmt.Errorf("failed to register service %s: %w", svc.Key, err)
		}
	}

	return nil
}
