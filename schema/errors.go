package schema

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNilType is returned when a descriptor is requested for a nil type.
var ErrNilType = errors.New("schema: nil type")

// NoSuchPropertyError reports a query for a property side absent from the
// descriptor.
type NoSuchPropertyError struct {
	Access   Access
	Property string
	Type     reflect.Type
}

func (e *NoSuchPropertyError) Error() string {
	return fmt.Sprintf("there is no %s for property named '%s' in '%s'", e.Access.accessor(), e.Property, e.Type)
}

// NoDefaultConstructorError reports that a type has no zero-argument
// constructor.
type NoDefaultConstructorError struct {
	Type reflect.Type
}

func (e *NoDefaultConstructorError) Error() string {
	return fmt.Sprintf("there is no default constructor for '%s'", e.Type)
}
