package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Constructor creates instances of one type. It is either a registered
// constructor function or the implicit constructor that allocates a zero
// value.
type Constructor struct {
	owner   reflect.Type
	fn      reflect.Value
	params  []reflect.Type
	pointer bool
	withErr bool
}

// Type returns the type the constructor builds.
func (c *Constructor) Type() reflect.Type { return c.owner }

// Params returns the constructor's parameter types.
func (c *Constructor) Params() []reflect.Type { return append([]reflect.Type(nil), c.params...) }

// Implicit reports whether c is the zero-value constructor of a type that
// registered no constructor functions.
func (c *Constructor) Implicit() bool { return !c.fn.IsValid() }

// New calls the constructor with args and returns a pointer to the new value.
func (c *Constructor) New(args ...any) (result any, err error) {
	if c.Implicit() {
		if len(args) != 0 {
			return nil, fmt.Errorf("zero-value constructor for %s takes no arguments, got %d", c.owner, len(args))
		}
		return reflect.New(c.owner).Interface(), nil
	}

	if len(args) != len(c.params) {
		return nil, fmt.Errorf("constructor for %s takes %d arguments, got %d", c.owner, len(c.params), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(c.params[i])
			continue
		}
		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(c.params[i]) {
			return nil, fmt.Errorf("constructor for %s: argument %d: cannot use %s as %s", c.owner, i, v.Type(), c.params[i])
		}
		in[i] = v
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("constructor for %s panicked: %v", c.owner, r)
		}
	}()
	out := c.fn.Call(in)
	if c.withErr && !out[1].IsNil() {
		return nil, fmt.Errorf("constructor for %s: %w", c.owner, out[1].Interface().(error))
	}
	if c.pointer {
		return out[0].Interface(), nil
	}
	p := reflect.New(c.owner)
	p.Elem().Set(out[0])
	return p.Interface(), nil
}

// Constructors is a registry of constructor functions keyed by the type they
// build. It is safe for concurrent use.
type Constructors struct {
	mu     sync.RWMutex
	byType map[reflect.Type][]*Constructor
}

// NewConstructors creates an empty registry.
func NewConstructors() *Constructors {
	return &Constructors{byType: make(map[reflect.Type][]*Constructor)}
}

// Register adds a constructor function. fn must be a non-variadic function
// returning T, *T, (T, error) or (*T, error); it is registered for T.
func (c *Constructors) Register(fn any) error {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("constructor must be a function, got %T", fn)
	}
	ft := v.Type()
	if ft.IsVariadic() {
		return errors.New("constructor must not be variadic")
	}

	ctor := &Constructor{fn: v}
	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errorType {
			return fmt.Errorf("constructor second result must be error, got %s", ft.Out(1))
		}
		ctor.withErr = true
	default:
		return fmt.Errorf("constructor must return T or (T, error), got %d results", ft.NumOut())
	}

	owner := ft.Out(0)
	if owner.Kind() == reflect.Pointer {
		owner = owner.Elem()
		ctor.pointer = true
	}
	if owner.Kind() == reflect.Interface {
		return fmt.Errorf("constructor result %s is an interface", owner)
	}
	ctor.owner = owner

	ctor.params = make([]reflect.Type, ft.NumIn())
	for i := range ctor.params {
		ctor.params[i] = ft.In(i)
	}

	c.mu.Lock()
	c.byType[owner] = append(c.byType[owner], ctor)
	c.mu.Unlock()
	return nil
}

// Lookup returns the constructors registered for t in registration order.
func (c *Constructors) Lookup(t reflect.Type) []*Constructor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Constructor(nil), c.byType[t]...)
}

var defaultConstructors = NewConstructors()

// DefaultConstructors returns the process-wide registry used when no
// registry is configured.
func DefaultConstructors() *Constructors { return defaultConstructors }

// RegisterConstructor registers fn in the process-wide registry.
func RegisterConstructor(fn any) error {
	return defaultConstructors.Register(fn)
}

// constructorsFor returns the declared constructors of t. A type with no
// registrations declares the implicit zero-value constructor, except
// interfaces, which cannot be instantiated.
func constructorsFor(t reflect.Type, reg *Constructors) []*Constructor {
	ctors := reg.Lookup(t)
	if len(ctors) == 0 && t.Kind() != reflect.Interface {
		ctors = []*Constructor{{owner: t}}
	}
	return ctors
}

// defaultConstructor picks the single zero-argument constructor, if exactly
// one exists.
func defaultConstructor(ctors []*Constructor) *Constructor {
	var found *Constructor
	for _, c := range ctors {
		if len(c.params) != 0 {
			continue
		}
		if found != nil {
			return nil
		}
		found = c
	}
	return found
}
