package schema

import (
	"reflect"

	"github.com/Konsultn-Engineering/reflector/invoker"
)

// Access selects the read or write side of a property.
type Access uint8

const (
	Read Access = iota
	Write
)

func (a Access) String() string {
	if a == Write {
		return "write"
	}
	return "read"
}

func (a Access) accessor() string {
	if a == Write {
		return "setter"
	}
	return "getter"
}

// Descriptor is the property table of one type. It is immutable once built
// and safe for concurrent use; its invokers may run concurrently against
// different targets.
type Descriptor struct {
	typ    reflect.Type
	record bool

	readable []string
	writable []string
	getters  map[string]invoker.Getter
	setters  map[string]invoker.Setter
	getTypes map[string]reflect.Type
	setTypes map[string]reflect.Type

	defaultCtor  *Constructor
	constructors []*Constructor

	caseInsensitive map[string]string // upper-cased name -> property name
}

// Type returns the introspected type.
func (d *Descriptor) Type() reflect.Type { return d.typ }

// IsRecord reports whether the type embeds Record.
func (d *Descriptor) IsRecord() bool { return d.record }

// DefaultConstructor returns the zero-argument constructor.
func (d *Descriptor) DefaultConstructor() (*Constructor, error) {
	if d.defaultCtor == nil {
		return nil, &NoDefaultConstructorError{Type: d.typ}
	}
	return d.defaultCtor, nil
}

func (d *Descriptor) HasDefaultConstructor() bool { return d.defaultCtor != nil }

// Constructors returns every constructor declared for the type.
func (d *Descriptor) Constructors() []*Constructor {
	return append([]*Constructor(nil), d.constructors...)
}

// Invoker returns the invoker for one side of a property. Ambiguous
// properties are returned successfully; the failure surfaces when the
// invoker is used.
func (d *Descriptor) Invoker(access Access, name string) (invoker.Invoker, error) {
	if access == Write {
		return d.SetInvoker(name)
	}
	return d.GetInvoker(name)
}

func (d *Descriptor) GetInvoker(name string) (invoker.Getter, error) {
	g, ok := d.getters[name]
	if !ok {
		return nil, d.noSuchProperty(Read, name)
	}
	return g, nil
}

func (d *Descriptor) SetInvoker(name string) (invoker.Setter, error) {
	s, ok := d.setters[name]
	if !ok {
		return nil, d.noSuchProperty(Write, name)
	}
	return s, nil
}

// PropertyType returns the value type recorded for one side of a property.
func (d *Descriptor) PropertyType(access Access, name string) (reflect.Type, error) {
	types := d.getTypes
	if access == Write {
		types = d.setTypes
	}
	t, ok := types[name]
	if !ok {
		return nil, d.noSuchProperty(access, name)
	}
	return t, nil
}

func (d *Descriptor) GetterType(name string) (reflect.Type, error) {
	return d.PropertyType(Read, name)
}

func (d *Descriptor) SetterType(name string) (reflect.Type, error) {
	return d.PropertyType(Write, name)
}

// ReadablePropertyNames returns the sorted names that have a getter.
func (d *Descriptor) ReadablePropertyNames() []string {
	return append([]string(nil), d.readable...)
}

// WritablePropertyNames returns the sorted names that have a setter.
func (d *Descriptor) WritablePropertyNames() []string {
	return append([]string(nil), d.writable...)
}

func (d *Descriptor) HasGetter(name string) bool {
	_, ok := d.getters[name]
	return ok
}

func (d *Descriptor) HasSetter(name string) bool {
	_, ok := d.setters[name]
	return ok
}

// FindPropertyName resolves name case-insensitively to a property name.
func (d *Descriptor) FindPropertyName(name string) (string, bool) {
	prop, ok := d.caseInsensitive[indexKey(name)]
	return prop, ok
}

// FindProperty is FindPropertyName that, when underscoreToCamel is set,
// first drops underscores so first_name finds firstName.
func (d *Descriptor) FindProperty(name string, underscoreToCamel bool) (string, bool) {
	if underscoreToCamel {
		name = stripUnderscores(name)
	}
	return d.FindPropertyName(name)
}

func (d *Descriptor) noSuchProperty(access Access, name string) error {
	return &NoSuchPropertyError{Access: access, Property: name, Type: d.typ}
}
