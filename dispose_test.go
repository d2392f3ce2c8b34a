package microdi

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type plainDisposer struct {
	calls int
}

func (p *plainDisposer) Dispose() {
	p.calls++
}

func TestDispose_Singletons(t *testing.T) {
	c := New()
	mustRegister(t, c, "a", mockConstructor("a"))
	mustRegister(t, c, "b", mockConstructor("b"), Transient())

	a, err := Resolve[*mockService](c, "a")
	require.NoError(t, err)
	b, err := Resolve[*mockService](c, "b")
	require.NoError(t, err)

	require.NoError(t, c.Dispose())

	assert.True(t, a.disposed)
	assert.False(t, b.disposed, "transients are never owned")
	assert.True(t, c.IsDisposed())
}

func TestDispose_UnresolvedSingletonsAreNotBuilt(t *testing.T) {
	c := New()
	built := false
	mustRegister(t, c, "a", Constructor(func(...any) (any, error) {
		built = true

		return &mockService{}, nil
	}))

	require.NoError(t, c.Dispose())
	assert.False(t, built)
}

func TestDispose_ExternalAndOwnedInstances(t *testing.T) {
	c := New()
	external := &mockService{name: "external"}
	owned := &mockService{name: "owned"}

	require.NoError(t, c.RegisterInstance("external", external))
	require.NoError(t, c.RegisterOwnedInstance("owned", owned))

	require.NoError(t, c.Dispose())

	assert.False(t, external.disposed)
	assert.True(t, owned.disposed)
}

func TestDispose_TemplateObjects(t *testing.T) {
	c := New()
	var disposed []*Object
	tmpl := NewTemplate(nil).WithDispose(func(obj *Object) error {
		disposed = append(disposed, obj)

		return nil
	})
	mustRegister(t, c, "a", tmpl)

	a, err := c.Resolve("a")
	require.NoError(t, err)

	require.NoError(t, c.Dispose())
	assert.Equal(t, []*Object{a.(*Object)}, disposed)
}

func TestDispose_PlainDisposer(t *testing.T) {
	c := New()
	p := &plainDisposer{}
	require.NoError(t, c.RegisterOwnedInstance("p", p))

	require.NoError(t, c.Dispose())
	assert.Equal(t, 1, p.calls)
}

func TestDispose_PerContainerInstanceOnlyInChild(t *testing.T) {
	root := New()
	mustRegister(t, root, "a", mockConstructor("a"), SingletonPerContainer())

	child := mustChild(t, root)

	rootA, err := Resolve[*mockService](root, "a")
	require.NoError(t, err)
	childA, err := Resolve[*mockService](child, "a")
	require.NoError(t, err)

	require.NoError(t, child.Dispose())

	assert.True(t, childA.disposed)
	assert.False(t, rootA.disposed)

	require.NoError(t, root.Dispose())
	assert.True(t, rootA.disposed)
}

func TestDispose_SingletonOwnedByRegisteringContainer(t *testing.T) {
	root := New()
	mustRegister(t, root, "a", mockConstructor("a"))

	child := mustChild(t, root)
	a, err := Resolve[*mockService](child, "a")
	require.NoError(t, err)

	require.NoError(t, child.Dispose())
	assert.False(t, a.disposed, "the root owns the singleton")

	require.NoError(t, root.Dispose())
	assert.True(t, a.disposed)
}

func TestDispose_RejectsFurtherUse(t *testing.T) {
	c := New()
	mustRegister(t, c, "a", newTemplate(nil))
	require.NoError(t, c.Dispose())

	_, err := c.Resolve("a")
	assert.ErrorIs(t, err, ErrContainerDisposed)
	assert.EqualError(t, err, "Container has been disposed")

	_, err = c.Register("b", newTemplate(nil))
	assert.ErrorIs(t, err, ErrContainerDisposed)

	err = c.RegisterInstance("b", 1)
	assert.ErrorIs(t, err, ErrContainerDisposed)

	err = c.AddResolver("r", ResolverFunc(func(*Container) (any, error) { return nil, nil }))
	assert.ErrorIs(t, err, ErrContainerDisposed)

	_, err = c.CreateChildContainer()
	assert.ErrorIs(t, err, ErrContainerDisposed)

	assert.ErrorIs(t, c.Validate(), ErrContainerDisposed)
}

func TestDispose_ValidatesArgumentsFirst(t *testing.T) {
	c := New()
	require.NoError(t, c.Dispose())

	_, err := c.Resolve("")
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = c.Register("a", nil)
	assert.ErrorIs(t, err, ErrNullRegistration)
}

func TestDispose_CascadesToChildren(t *testing.T) {
	root := New()
	mustRegister(t, root, "a", mockConstructor("a"), SingletonPerContainer())

	child := mustChild(t, root)
	grandchild := mustChild(t, child)

	a, err := Resolve[*mockService](grandchild, "a")
	require.NoError(t, err)

	require.NoError(t, root.Dispose())

	assert.True(t, a.disposed)
	assert.True(t, child.IsDisposed())
	assert.True(t, grandchild.IsDisposed())

	_, err = grandchild.Resolve("a")
	assert.ErrorIs(t, err, ErrContainerDisposed)
}

func TestDispose_ChildOfDisposedParentRejectsUse(t *testing.T) {
	root := New()
	child := mustChild(t, root)
	mustRegister(t, child, "a", newTemplate(nil))

	// detach the child from the tree without disposing it directly
	root.removeChild(child)
	require.NoError(t, root.Dispose())

	assert.False(t, child.disposed)
	assert.True(t, child.IsDisposed())

	_, err := child.Resolve("a")
	assert.ErrorIs(t, err, ErrContainerDisposed)
}

func TestDispose_ChildLeavesParentAndSiblings(t *testing.T) {
	root := New()
	mustRegister(t, root, "a", newTemplate(nil))

	child1 := mustChild(t, root)
	child2 := mustChild(t, root)

	require.NoError(t, child1.Dispose())

	assert.False(t, root.IsDisposed())
	assert.False(t, child2.IsDisposed())
	assert.Equal(t, []*Container{child2}, root.children)

	_, err := root.Resolve("a")
	require.NoError(t, err)
	_, err = child2.Resolve("a")
	require.NoError(t, err)

	_, err = child1.Resolve("a")
	assert.ErrorIs(t, err, ErrContainerDisposed)
}

func TestDispose_Twice(t *testing.T) {
	c := New()
	s := &mockService{}
	calls := 0
	s.onDispose = func() { calls++ }
	require.NoError(t, c.RegisterOwnedInstance("s", s))

	require.NoError(t, c.Dispose())
	require.NoError(t, c.Dispose())
	assert.Equal(t, 1, calls)
}

func TestDispose_ReverseCreationOrder(t *testing.T) {
	c := New()
	var order []string

	for _, key := range []string{"a", "b", "c"} {
		name := key
		mustRegister(t, c, key, Constructor(func(...any) (any, error) {
			return &mockService{name: name, onDispose: func() { order = append(order, name) }}, nil
		}))
	}

	// resolve out of registration order
	for _, key := range []string{"b", "a", "c"} {
		_, err := c.Resolve(key)
		require.NoError(t, err)
	}

	require.NoError(t, c.Dispose())
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestDispose_DependentsBeforeDependencies(t *testing.T) {
	c := New()
	var order []string

	mustRegister(t, c, "db", Constructor(func(...any) (any, error) {
		return &mockService{onDispose: func() { order = append(order, "db") }}, nil
	}))
	mustRegister(t, c, "repo", Constructor(func(...any) (any, error) {
		return &mockService{onDispose: func() { order = append(order, "repo") }}, nil
	}), Inject("db"))

	_, err := c.Resolve("repo")
	require.NoError(t, err)

	require.NoError(t, c.Dispose())
	assert.Equal(t, []string{"repo", "db"}, order)
}

func TestDispose_AggregatesErrors(t *testing.T) {
	c := New()
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	ok := &mockService{}

	require.NoError(t, c.RegisterOwnedInstance("a", &mockService{disposeErr: errA}))
	require.NoError(t, c.RegisterOwnedInstance("ok", ok))
	require.NoError(t, c.RegisterOwnedInstance("b", &mockService{disposeErr: errB}))

	child := mustChild(t, c)
	errChild := errors.New("child failed")
	require.NoError(t, child.RegisterOwnedInstance("c", &mockService{disposeErr: errChild}))

	err := c.Dispose()
	require.Error(t, err)

	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.ErrorIs(t, err, errChild)
	assert.Len(t, multierr.Errors(err), 3)
	assert.True(t, ok.disposed, "a failure does not stop disposal")
	assert.Contains(t, err.Error(), "failed to dispose a")
	assert.True(t, child.IsDisposed())
}

func TestDispose_AfterDisposeMiddleware(t *testing.T) {
	var ids []string
	var errs []error

	mw := &FuncMiddleware{
		AfterDisposeFunc: func(_ context.Context, containerID string, err error) {
			ids = append(ids, containerID)
			errs = append(errs, err)
		},
	}

	root := New(WithMiddleware(mw))
	child := mustChild(t, root)

	boom := errors.New("boom")
	require.NoError(t, child.RegisterOwnedInstance("s", &mockService{disposeErr: boom}))

	err := root.Dispose()
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []string{child.ID(), root.ID()}, ids)
	assert.ErrorIs(t, errs[0], boom)
	assert.ErrorIs(t, errs[1], boom)
}

func TestDispose_DuringConstruction(t *testing.T) {
	c := New()

	var built *mockService
	mustRegister(t, c, "a", ResolverKey(Delegate(func(rc *Container) (any, error) {
		require.NoError(t, rc.Dispose())
		built = &mockService{name: "a"}

		return built, nil
	})))

	_, err := c.Resolve("a")
	require.ErrorIs(t, err, ErrContainerDisposed)
	require.NotNil(t, built)

	assert.False(t, c.Inspect("a").Cached)
	assert.Empty(t, c.owned)
	assert.False(t, built.disposed)
}

func TestDispose_ChildDuringPerContainerConstruction(t *testing.T) {
	root := New()
	child := mustChild(t, root)
	mustRegister(t, child, "a", ResolverKey(Delegate(func(rc *Container) (any, error) {
		require.NoError(t, rc.Dispose())

		return &mockService{name: "a"}, nil
	})), SingletonPerContainer())

	_, err := child.Resolve("a")
	require.ErrorIs(t, err, ErrContainerDisposed)
	assert.False(t, root.IsDisposed())
	assert.Empty(t, root.owned)
}
