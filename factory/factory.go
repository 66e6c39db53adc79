// Package factory creates instances of introspected types.
package factory

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Konsultn-Engineering/reflector/schema"
)

// ErrInterface is returned when asked to instantiate an interface type.
var ErrInterface = errors.New("cannot instantiate interface type")

// ObjectFactory creates new objects. Results are pointers to the new value.
type ObjectFactory interface {
	// Create instantiates t with its default constructor.
	Create(t reflect.Type) (any, error)
	// CreateWith instantiates t with the constructor whose parameter types
	// are exactly argTypes. Nil argTypes or args mean Create.
	CreateWith(t reflect.Type, argTypes []reflect.Type, args []any) (any, error)
	// IsCollection reports whether t holds a sequence of elements.
	IsCollection(t reflect.Type) bool
}

// Default is the ObjectFactory backed by schema descriptors. Slices and maps
// are created empty and non-nil, channels unbuffered, and every other type
// through the constructors its descriptor declares. The zero value uses the
// process-wide schema context.
type Default struct {
	Schema *schema.Context
}

var _ ObjectFactory = (*Default)(nil)

// NewDefault creates a factory reading descriptors from ctx.
func NewDefault(ctx *schema.Context) *Default {
	return &Default{Schema: ctx}
}

func (f *Default) Create(t reflect.Type) (any, error) {
	return f.CreateWith(t, nil, nil)
}

func (f *Default) CreateWith(t reflect.Type, argTypes []reflect.Type, args []any) (any, error) {
	if t == nil {
		return nil, schema.ErrNilType
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	v, err := f.instantiate(t, argTypes, args)
	if err != nil {
		return nil, fmt.Errorf("error instantiating %s with invalid types (%s) or values (%s): %w",
			t, typeList(argTypes), valueList(args), err)
	}
	return v, nil
}

func (f *Default) instantiate(t reflect.Type, argTypes []reflect.Type, args []any) (any, error) {
	useDefault := argTypes == nil || args == nil

	if useDefault {
		switch t.Kind() {
		case reflect.Interface:
			return nil, ErrInterface
		case reflect.Slice:
			p := reflect.New(t)
			p.Elem().Set(reflect.MakeSlice(t, 0, 0))
			return p.Interface(), nil
		case reflect.Map:
			p := reflect.New(t)
			p.Elem().Set(reflect.MakeMap(t))
			return p.Interface(), nil
		case reflect.Chan:
			if t.ChanDir() != reflect.BothDir {
				break
			}
			p := reflect.New(t)
			p.Elem().Set(reflect.MakeChan(t, 0))
			return p.Interface(), nil
		}
	}

	d, err := f.descriptor(t)
	if err != nil {
		return nil, err
	}

	if useDefault {
		ctor, err := d.DefaultConstructor()
		if err != nil {
			return nil, err
		}
		return ctor.New()
	}

	if len(argTypes) != len(args) {
		return nil, fmt.Errorf("%d argument types for %d arguments", len(argTypes), len(args))
	}
	for _, ctor := range d.Constructors() {
		if sameTypes(ctor.Params(), argTypes) {
			return ctor.New(args...)
		}
	}
	return nil, fmt.Errorf("no constructor of %s takes (%s)", t, typeList(argTypes))
}

func (f *Default) descriptor(t reflect.Type) (*schema.Descriptor, error) {
	if f.Schema != nil {
		return f.Schema.Introspect(t)
	}
	return schema.Introspect(t)
}

// IsCollection reports whether t is a slice or an array. Maps are not
// collections.
func (f *Default) IsCollection(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}

// New creates a T with the default constructor known to f.
func New[T any](f ObjectFactory) (*T, error) {
	v, err := f.Create(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	p, ok := v.(*T)
	if !ok {
		return nil, fmt.Errorf("factory returned %T, want *%s", v, reflect.TypeFor[T]())
	}
	return p, nil
}

func sameTypes(a, b []reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func typeList(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = fmt.Sprint(t)
	}
	return strings.Join(names, ",")
}

func valueList(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
