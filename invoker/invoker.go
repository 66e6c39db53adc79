// Package invoker provides the get/set capabilities used to read and write a
// single property of a target instance.
//
// Each property side is served by exactly one invoker. Three variants exist:
// method invokers call an accessor method, field invokers read or write a
// struct field directly, and ambiguous invokers stand in for accessors whose
// overloads could not be ranked and fail on every call. Invokers are immutable
// and safe for concurrent use; the target's own concurrency contract applies
// to whatever the invoker touches.
package invoker

import "reflect"

// Variant tags the mechanism behind an Invoker.
type Variant uint8

const (
	Method Variant = iota + 1
	Field
	Ambiguous
)

func (v Variant) String() string {
	switch v {
	case Method:
		return "method"
	case Field:
		return "field"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// Invoker describes the property side an invoker serves.
type Invoker interface {
	// Property returns the canonical property name.
	Property() string
	// Type returns the resolved value type of the property side.
	Type() reflect.Type
	// Variant reports the mechanism behind the invoker.
	Variant() Variant
}

// Getter reads a property value from a target instance.
type Getter interface {
	Invoker
	Get(target any) (any, error)
}

// Setter writes a property value on a target instance.
type Setter interface {
	Invoker
	Set(target any, value any) error
}

// base carries the fields every variant shares.
type base struct {
	property string
	typ      reflect.Type
}

func (b base) Property() string   { return b.property }
func (b base) Type() reflect.Type { return b.typ }
