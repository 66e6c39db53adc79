package invoker

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Route locates a receiver or storage slot inside an instance of Owner: the
// chain of struct field indexes to follow, through embedded structs and
// embedded pointers, before the member is reached. An empty path denotes the
// owner itself.
type Route struct {
	owner   reflect.Type
	path    []int
	private bool
}

// NewRoute builds a route from owner along path. The path must be valid for
// owner; NewRoute panics otherwise, as reflect does for a bad index.
func NewRoute(owner reflect.Type, path ...int) Route {
	r := Route{owner: owner, path: append([]int(nil), path...)}
	t := owner
	for _, i := range r.path {
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		sf := t.Field(i)
		if !sf.IsExported() {
			r.private = true
		}
		t = sf.Type
	}
	return r
}

// Extend returns r continued along path, the embedded fields through which a
// promoted method reaches its receiver. The added fields do not make the
// route private.
func (r Route) Extend(path ...int) Route {
	if len(path) == 0 {
		return r
	}
	return Route{owner: r.owner, path: append(r.Path(), path...), private: r.private}
}

// Owner returns the type the route starts from.
func (r Route) Owner() reflect.Type { return r.owner }

// Path returns a copy of the field index path.
func (r Route) Path() []int { return append([]int(nil), r.path...) }

// Private reports whether the route crosses an unexported field.
func (r Route) Private() bool { return r.private }

// deny returns the permission failure for property when the route needs
// private access that is not allowed, or nil.
func (r Route) deny(property string, allowPrivate bool) *PermissionError {
	if !r.private || allowPrivate {
		return nil
	}
	return &PermissionError{
		Type:     r.owner,
		Property: property,
		Reason:   "access to unexported members is not permitted by the access policy",
	}
}

// resolve walks target along the route. Targets may be *Owner or Owner;
// an Owner value is copied before walking, so writes require *Owner. On write
// nil embedded pointers are allocated, on read they are reported.
func (r Route) resolve(target any, write bool) (reflect.Value, error) {
	if target == nil {
		return reflect.Value{}, ErrNilTarget
	}
	v := reflect.ValueOf(target)

	if r.owner.Kind() == reflect.Interface {
		if !v.Type().Implements(r.owner) {
			return reflect.Value{}, fmt.Errorf("%w: %s does not implement %s", ErrTargetType, v.Type(), r.owner)
		}
		if v.Kind() == reflect.Pointer && v.IsNil() {
			return reflect.Value{}, ErrNilTarget
		}
		return v, nil
	}

	switch v.Type() {
	case reflect.PointerTo(r.owner):
		if v.IsNil() {
			return reflect.Value{}, ErrNilTarget
		}
		v = v.Elem()
	case r.owner:
		if write {
			return reflect.Value{}, ErrNotAddressable
		}
		c := reflect.New(r.owner).Elem()
		c.Set(v)
		v = c
	default:
		return reflect.Value{}, fmt.Errorf("%w: got %s, want %s or *%s", ErrTargetType, v.Type(), r.owner, r.owner)
	}

	for _, i := range r.path {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !write {
					return reflect.Value{}, ErrNilEmbedded
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		f := v.Field(i)
		if !v.Type().Field(i).IsExported() {
			f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
		}
		v = f
	}
	return v, nil
}
