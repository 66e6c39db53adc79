package invoker

import "reflect"

type fieldInvoker struct {
	base
	route  Route
	denied *PermissionError
}

func (f *fieldInvoker) Variant() Variant { return Field }

// Route returns the route to the field, ending with the field's own index.
func (f *fieldInvoker) Route() Route { return f.route }

func (f *fieldInvoker) fail(op string, err error) error {
	return &InvocationError{Op: op, Property: f.property, Type: f.route.owner, Err: err}
}

type fieldGetter struct{ fieldInvoker }

// NewFieldGetter returns a getter reading the field at route directly,
// bypassing any accessor logic. Unexported fields are read through their
// address; if the policy does not allow that, every call fails with a
// *PermissionError without touching the target.
func NewFieldGetter(property string, typ reflect.Type, route Route, allowPrivate bool) Getter {
	return &fieldGetter{fieldInvoker{
		base:   base{property: property, typ: typ},
		route:  route,
		denied: route.deny(property, allowPrivate),
	}}
}

func (g *fieldGetter) Get(target any) (any, error) {
	if g.denied != nil {
		return nil, g.denied
	}
	v, err := g.route.resolve(target, false)
	if err != nil {
		return nil, g.fail("get", err)
	}
	return v.Interface(), nil
}

type fieldSetter struct{ fieldInvoker }

// NewFieldSetter returns a setter writing the field at route directly.
func NewFieldSetter(property string, typ reflect.Type, route Route, allowPrivate bool) Setter {
	return &fieldSetter{fieldInvoker{
		base:   base{property: property, typ: typ},
		route:  route,
		denied: route.deny(property, allowPrivate),
	}}
}

func (s *fieldSetter) Set(target any, value any) error {
	if s.denied != nil {
		return s.denied
	}
	arg, err := adapt(value, s.typ)
	if err != nil {
		return s.fail("set", err)
	}
	v, err := s.route.resolve(target, true)
	if err != nil {
		return s.fail("set", err)
	}
	v.Set(arg)
	return nil
}
