package microdi

import (
	"errors"
	"slices"

	"github.com/xraph/go-utils/errs"
	"go.uber.org/multierr"
)

// DependencyGraph holds the key-reference edges between registrations.
// Lazy dependencies (factories, delegates, plugins) are not edges: they
// resolve outside the dependent's construction.
type DependencyGraph struct {
	nodes map[string]*node
	order []string // Preserve insertion order
}

type node struct {
	name         string
	dependencies []string
}

// NewDependencyGraph creates a new dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[string]*node),
		order: make([]string, 0),
	}
}

// AddNode adds a node with its dependencies.
func (g *DependencyGraph) AddNode(name string, dependencies []string) {
	if _, ok := g.nodes[name]; !ok {
		g.order = append(g.order, name)
	}

	g.nodes[name] = &node{
		name:         name,
		dependencies: dependencies,
	}
}

// GetDependencies returns the dependency names for a node.
func (g *DependencyGraph) GetDependencies(name string) []string {
	if node, ok := g.nodes[name]; ok {
		return node.dependencies
	}

	return nil
}

// HasNode checks if a node exists in the graph.
func (g *DependencyGraph) HasNode(name string) bool {
	_, ok := g.nodes[name]

	return ok
}

// TopologicalSort returns nodes in dependency order.
// Nodes without dependencies maintain their insertion order.
// Returns error if circular dependency detected.
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	visited := make(map[string]bool)
	var path []string
	result := make([]string, 0, len(g.nodes))

	for _, name := range g.order {
		if err := g.visit(name, visited, &path, &result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// visit performs DFS traversal; path holds the nodes currently being visited.
func (g *DependencyGraph) visit(name string, visited map[string]bool, path, result *[]string) error {
	if visited[name] {
		return nil
	}

	if i := slices.Index(*path, name); i >= 0 {
		cycle := append(slices.Clone((*path)[i:]), name)

		return ErrCircularDependency(cycle)
	}

	node := g.nodes[name]
	if node == nil {
		// Unknown node, reported separately by Validate
		return nil
	}

	*path = append(*path, name)

	// Visit dependencies first
	for _, dep := range node.dependencies {
		if err := g.visit(dep, visited, path, result); err != nil {
			return err
		}
	}

	*path = (*path)[:len(*path)-1]
	visited[name] = true
	*result = append(*result, name)

	return nil
}

// graphNode identifies a registration together with the container its
// dependencies resolve against.
type graphNode struct {
	reg   *Registration
	scope *Container
}

// graphBuilder walks registrations the way resolve does: a Singleton's
// dependencies come from its owner, everything else from the resolving
// container.
type graphBuilder struct {
	root  *Container
	g     *DependencyGraph
	names map[graphNode]string
	keys  map[string]string // node or edge name -> key
}

func (b *graphBuilder) scopeOf(reg *Registration, from *Container) *Container {
	if reg.lifetime == LifetimeSingleton {
		return reg.owner
	}

	return from
}

// name is the plain key for the node resolve reaches from root, and
// key@container for one only reachable through an ancestor's singleton.
func (b *graphBuilder) name(key string, n graphNode) string {
	if top, ok := b.root.lookup(key); ok && top == n.reg && b.scopeOf(top, b.root) == n.scope {
		return key
	}

	return key + "@" + n.scope.name
}

// add visits key as resolved from container from and returns its node name.
func (b *graphBuilder) add(key string, from *Container) string {
	reg, ok := from.lookup(key)
	if !ok {
		name := key
		if from != b.root {
			name = key + "@" + from.name
		}

		b.keys[name] = key

		return name
	}

	n := graphNode{reg: reg, scope: b.scopeOf(reg, from)}
	if name, ok := b.names[n]; ok {
		return name
	}

	name := b.name(key, n)
	b.names[n] = name
	b.keys[name] = key
	b.g.AddNode(name, nil)

	var deps []string

	for _, d := range reg.deps {
		if ref, ok := d.(refDep); ok {
			deps = append(deps, b.add(ref.key, n.scope))
		}
	}

	b.g.AddNode(name, deps)

	return name
}

func (c *Container) buildGraph() *graphBuilder {
	b := &graphBuilder{
		root:  c,
		g:     NewDependencyGraph(),
		names: make(map[graphNode]string),
		keys:  make(map[string]string),
	}

	for _, key := range c.Keys() {
		b.add(key, c)
	}

	return b
}

// Graph builds the dependency graph of every key visible from c. A key
// reached through an ancestor's singleton, where it resolves differently
// than from c, appears as key@container.
func (c *Container) Graph() *DependencyGraph {
	return c.buildGraph().g
}

// Validate checks the registrations visible from c without constructing
// anything: every key dependency must be registered and no cycle may exist.
func (c *Container) Validate() error {
	if c.isDisposed() {
		return ErrContainerDisposed
	}

	b := c.buildGraph()
	g := b.g

	var err error

	for _, name := range g.order {
		for _, dep := range g.GetDependencies(name) {
			if !g.HasNode(dep) {
				err = multierr.Append(err, ErrUnregistered(b.keys[dep]).WithContext("required_by", b.keys[name]))
			}
		}
	}

	if _, sortErr := g.TopologicalSort(); sortErr != nil {
		err = multierr.Append(err, b.plainCycle(sortErr))
	}

	return err
}

// plainCycle reports a cycle by key, the way Resolve does.
func (b *graphBuilder) plainCycle(err error) error {
	var derr *errs.Error
	if !errors.As(err, &derr) {
		return err
	}

	cycle, ok := derr.Ctx["cycle"].([]string)
	if !ok {
		return err
	}

	keys := make([]string, len(cycle))
	for i, name := range cycle {
		keys[i] = b.keys[name]
	}

	return ErrCircularDependency(keys)
}
