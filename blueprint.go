package microdi

// Blueprint produces a new instance from the assembled argument list:
// declared dependencies first, then any extra arguments of the top-level
// Resolve call.
type Blueprint interface {
	Construct(args []any) (any, error)
}

// Constructor is a Blueprint backed by a plain function.
//
//	c.Register("repo", microdi.Constructor(func(args ...any) (any, error) {
//	    return &Repo{db: args[0].(*DB)}, nil
//	}), microdi.Inject("db"))
type Constructor func(args ...any) (any, error)

// Construct implements Blueprint.
func (f Constructor) Construct(args []any) (any, error) {
	return f(args...)
}

// Template is a Blueprint that derives instances by delegation: every
// constructed Object reads its own attributes first and falls back to the
// template's. Nothing is copied.
type Template struct {
	attrs   map[string]any
	init    func(obj *Object, args ...any) error
	dispose func(obj *Object) error
}

// NewTemplate creates a template with the given shared attributes.
func NewTemplate(attrs map[string]any) *Template {
	t := &Template{attrs: make(map[string]any, len(attrs))}
	for k, v := range attrs {
		t.attrs[k] = v
	}

	return t
}

// WithInit sets the initializer run on every derived object with the
// assembled argument list.
func (t *Template) WithInit(fn func(obj *Object, args ...any) error) *Template {
	t.init = fn

	return t
}

// WithDispose sets the disposal operation exposed by derived objects.
func (t *Template) WithDispose(fn func(obj *Object) error) *Template {
	t.dispose = fn

	return t
}

// Get returns a template attribute.
func (t *Template) Get(name string) (any, bool) {
	v, ok := t.attrs[name]

	return v, ok
}

// Derive returns a new object delegating to the template, without running
// the initializer.
func (t *Template) Derive() *Object {
	return &Object{template: t, attrs: make(map[string]any)}
}

// Construct implements Blueprint.
func (t *Template) Construct(args []any) (any, error) {
	obj := t.Derive()
	if t.init != nil {
		if err := t.init(obj, args...); err != nil {
			return nil, err
		}
	}

	return obj, nil
}

// Object is an instance derived from a Template.
type Object struct {
	template *Template
	attrs    map[string]any
}

// Get returns the object's own attribute, or the template's when unset.
func (o *Object) Get(name string) (any, bool) {
	if v, ok := o.attrs[name]; ok {
		return v, true
	}

	return o.template.Get(name)
}

// Set assigns an attribute on the object only; the template is untouched.
func (o *Object) Set(name string, value any) {
	o.attrs[name] = value
}

// Template returns the template the object delegates to.
func (o *Object) Template() *Template {
	return o.template
}

// DerivesFrom reports whether the object was derived from t.
func (o *Object) DerivesFrom(t *Template) bool {
	return o.template == t
}

// Dispose runs the template's disposal operation, if any.
func (o *Object) Dispose() error {
	if o.template.dispose == nil {
		return nil
	}

	return o.template.dispose(o)
}
