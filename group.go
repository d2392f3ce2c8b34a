package microdi

// groupRegistry keeps the insertion-ordered keys of each group declared in
// one container.
type groupRegistry struct {
	lists map[string][]string
}

func newGroupRegistry() *groupRegistry {
	return &groupRegistry{lists: make(map[string][]string)}
}

func (g *groupRegistry) add(group, key string) {
	g.lists[group] = append(g.lists[group], key)
}

// remove drops key from group, used when a registration is replaced.
func (g *groupRegistry) remove(group, key string) {
	keys := g.lists[group]
	for i, k := range keys {
		if k == key {
			keys = append(keys[:i:i], keys[i+1:]...)

			break
		}
	}

	if len(keys) == 0 {
		delete(g.lists, group)

		return
	}

	g.lists[group] = keys
}

func (g *groupRegistry) get(group string) ([]string, bool) {
	keys, ok := g.lists[group]

	return keys, ok
}

// ResolveGroup resolves every key of a group in registration order.
//
// The key list comes from the nearest container (this one, then its
// ancestors) that declares the group; a local declaration replaces the
// ancestor's list entirely. Each key is then resolved against this
// container, so key-level overrides still apply.
func (c *Container) ResolveGroup(name string) ([]any, error) {
	if name == "" {
		return nil, errInvalidKey("ResolveGroup(groupName)", "groupName")
	}

	if c.isDisposed() {
		return nil, ErrContainerDisposed
	}

	keys, ok := c.lookupGroup(name)
	if !ok {
		return nil, ErrUnregisteredGroup(name)
	}

	// copy: resolving may register into the same group
	keys = append([]string(nil), keys...)

	instances := make([]any, 0, len(keys))

	for _, key := range keys {
		instance, err := c.Resolve(key)
		if err != nil {
			return nil, err
		}

		instances = append(instances, instance)
	}

	return instances, nil
}

func (c *Container) lookupGroup(name string) ([]string, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if keys, ok := cur.groups.get(name); ok {
			return keys, true
		}
	}

	return nil, false
}
