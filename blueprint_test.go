package microdi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_Delegation(t *testing.T) {
	tmpl := NewTemplate(map[string]any{"color": "red", "size": 1})
	obj := tmpl.Derive()

	v, ok := obj.Get("color")
	assert.True(t, ok)
	assert.Equal(t, "red", v)

	obj.Set("color", "blue")
	v, _ = obj.Get("color")
	assert.Equal(t, "blue", v)

	// the template is untouched
	v, _ = tmpl.Get("color")
	assert.Equal(t, "red", v)

	_, ok = obj.Get("missing")
	assert.False(t, ok)

	assert.Same(t, tmpl, obj.Template())
	assert.True(t, obj.DerivesFrom(tmpl))
	assert.False(t, obj.DerivesFrom(NewTemplate(nil)))
}

func TestTemplate_CopiesAttributes(t *testing.T) {
	attrs := map[string]any{"a": 1}
	tmpl := NewTemplate(attrs)
	attrs["a"] = 2

	v, _ := tmpl.Get("a")
	assert.Equal(t, 1, v)
}

func TestTemplate_Construct(t *testing.T) {
	tmpl := NewTemplate(nil).WithInit(func(obj *Object, args ...any) error {
		obj.Set("sum", args[0].(int)+args[1].(int))

		return nil
	})

	v, err := tmpl.Construct([]any{2, 3})
	require.NoError(t, err)

	sum, _ := v.(*Object).Get("sum")
	assert.Equal(t, 5, sum)

	other, err := tmpl.Construct([]any{1, 1})
	require.NoError(t, err)
	assert.NotSame(t, v, other)
}

func TestTemplate_InitError(t *testing.T) {
	boom := errors.New("boom")
	tmpl := NewTemplate(nil).WithInit(func(*Object, ...any) error { return boom })

	_, err := tmpl.Construct(nil)
	assert.ErrorIs(t, err, boom)
}

func TestObject_Dispose(t *testing.T) {
	assert.NoError(t, NewTemplate(nil).Derive().Dispose())

	var got *Object
	tmpl := NewTemplate(nil).WithDispose(func(obj *Object) error {
		got = obj

		return nil
	})
	obj := tmpl.Derive()
	require.NoError(t, obj.Dispose())
	assert.Same(t, obj, got)
}

func TestConstructor(t *testing.T) {
	var bp Blueprint = Constructor(func(args ...any) (any, error) {
		return len(args), nil
	})

	v, err := bp.Construct([]any{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
