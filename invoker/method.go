package invoker

import (
	"fmt"
	"reflect"
)

// Accessor identifies an accessor method: the route to its receiver, the
// method name, and whether its last result is an error.
type Accessor struct {
	Route        Route
	Name         string
	ReturnsError bool
}

type methodInvoker struct {
	base
	accessor Accessor
	denied   *PermissionError
}

func (m *methodInvoker) Variant() Variant { return Method }

// Accessor returns the accessor method the invoker calls.
func (m *methodInvoker) Accessor() Accessor { return m.accessor }

func (m *methodInvoker) fail(op string, err error) error {
	return &InvocationError{Op: op, Property: m.property, Type: m.accessor.Route.owner, Err: err}
}

// call looks the method up on the receiver and invokes it, turning a panic
// or a returned error into the error result.
func (m *methodInvoker) call(recv reflect.Value, args []reflect.Value) (out []reflect.Value, err error) {
	if (recv.Kind() == reflect.Interface || recv.Kind() == reflect.Pointer) && recv.IsNil() {
		return nil, ErrNilEmbedded
	}

	var fn reflect.Value
	if recv.Kind() != reflect.Pointer && recv.Kind() != reflect.Interface && recv.CanAddr() {
		fn = recv.Addr().MethodByName(m.accessor.Name)
	}
	if !fn.IsValid() {
		fn = recv.MethodByName(m.accessor.Name)
	}
	if !fn.IsValid() {
		return nil, fmt.Errorf("%w: method %s not found on %s", ErrTargetType, m.accessor.Name, recv.Type())
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	out = fn.Call(args)

	if m.accessor.ReturnsError {
		if errVal := out[len(out)-1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
	}
	return out, nil
}

type methodGetter struct{ methodInvoker }

// NewMethodGetter returns a getter calling the zero-argument accessor a.
// typ is the accessor's value result type. When the route to the receiver
// crosses unexported fields and allowPrivate is false every call fails with
// a *PermissionError.
func NewMethodGetter(property string, typ reflect.Type, a Accessor, allowPrivate bool) Getter {
	return &methodGetter{methodInvoker{
		base:     base{property: property, typ: typ},
		accessor: a,
		denied:   a.Route.deny(property, allowPrivate),
	}}
}

func (g *methodGetter) Get(target any) (any, error) {
	if g.denied != nil {
		return nil, g.denied
	}
	recv, err := g.accessor.Route.resolve(target, false)
	if err != nil {
		return nil, g.fail("get", err)
	}
	out, err := g.call(recv, nil)
	if err != nil {
		return nil, g.fail("get", err)
	}
	return out[0].Interface(), nil
}

type methodSetter struct{ methodInvoker }

// NewMethodSetter returns a setter calling the single-argument accessor a.
// typ is the accessor's parameter type.
func NewMethodSetter(property string, typ reflect.Type, a Accessor, allowPrivate bool) Setter {
	return &methodSetter{methodInvoker{
		base:     base{property: property, typ: typ},
		accessor: a,
		denied:   a.Route.deny(property, allowPrivate),
	}}
}

func (s *methodSetter) Set(target any, value any) error {
	if s.denied != nil {
		return s.denied
	}
	arg, err := adapt(value, s.typ)
	if err != nil {
		return s.fail("set", err)
	}
	recv, err := s.accessor.Route.resolve(target, true)
	if err != nil {
		return s.fail("set", err)
	}
	if recv.Kind() == reflect.Pointer && recv.IsNil() && recv.CanSet() {
		recv.Set(reflect.New(recv.Type().Elem()))
	}
	if _, err := s.call(recv, []reflect.Value{arg}); err != nil {
		return s.fail("set", err)
	}
	return nil
}
