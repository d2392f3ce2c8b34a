package microdi

import "sort"

// RegistrationInfo contains diagnostic information about a key as seen from
// one container.
type RegistrationInfo struct {
	Key          string
	Registered   bool
	Lifetime     Lifetime
	Group        string
	Dependencies []string
	// Owner is the name of the container holding the registration.
	Owner string
	// Inherited is true when the registration lives in an ancestor.
	Inherited bool
	// Cached is true when an instance is held for the inspecting container:
	// the owner's singleton or this container's per-container instance.
	Cached bool
}

// Inspect returns diagnostic information about key without constructing it.
func (c *Container) Inspect(key string) RegistrationInfo {
	reg, ok := c.lookup(key)
	if !ok {
		return RegistrationInfo{Key: key}
	}

	deps := make([]string, len(reg.deps))
	for i, d := range reg.deps {
		deps[i] = d.String()
	}

	info := RegistrationInfo{
		Key:          key,
		Registered:   true,
		Lifetime:     reg.lifetime,
		Group:        reg.group,
		Dependencies: deps,
		Owner:        reg.owner.name,
		Inherited:    reg.owner != c,
	}

	if reg.lifetime.caches() {
		cache := c.perContainer
		if reg.lifetime == LifetimeSingleton {
			cache = reg.owner.singletons
		}

		_, info.Cached = cache[reg]
	}

	return info
}

// Keys returns every key visible from the container, sorted.
func (c *Container) Keys() []string {
	seen := make(map[string]struct{})

	for cur := c; cur != nil; cur = cur.parent {
		for key := range cur.registrations {
			seen[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// RegistrationQuery defines criteria for querying registrations.
type RegistrationQuery struct {
	// Lifetime filters by lifetime when non-nil.
	Lifetime *Lifetime

	// Group filters by group.
	// Empty string matches all groups.
	Group string

	// LocalOnly skips registrations inherited from ancestors.
	LocalOnly bool

	// Cached filters by whether an instance is held.
	// nil matches all registrations.
	Cached *bool
}

// Query returns detailed information about registrations matching the query criteria.
//
// Example:
//
//	// Find every singleton already built
//	lifetime, cached := microdi.LifetimeSingleton, true
//	results := microdi.Query(c, microdi.RegistrationQuery{
//	    Lifetime: &lifetime,
//	    Cached:   &cached,
//	})
func Query(c *Container, query RegistrationQuery) []RegistrationInfo {
	var results []RegistrationInfo

	for _, key := range c.Keys() {
		info := c.Inspect(key)

		if query.Lifetime != nil && info.Lifetime != *query.Lifetime {
			continue
		}

		if query.Group != "" && info.Group != query.Group {
			continue
		}

		if query.LocalOnly && info.Inherited {
			continue
		}

		if query.Cached != nil && info.Cached != *query.Cached {
			continue
		}

		results = append(results, info)
	}

	return results
}

// QueryKeys returns the keys of registrations matching the query criteria.
func QueryKeys(c *Container, query RegistrationQuery) []string {
	results := Query(c, query)
	keys := make([]string, len(results))
	for i, info := range results {
		keys[i] = info.Key
	}
	return keys
}

// FindByGroup returns all registrations in a specific group.
func FindByGroup(c *Container, group string) []RegistrationInfo {
	return Query(c, RegistrationQuery{Group: group})
}

// FindByLifetime returns all registrations with a specific lifetime.
func FindByLifetime(c *Container, lifetime Lifetime) []RegistrationInfo {
	return Query(c, RegistrationQuery{Lifetime: &lifetime})
}
