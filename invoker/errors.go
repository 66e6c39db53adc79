package invoker

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrNilTarget      = errors.New("target is nil")
	ErrTargetType     = errors.New("target has the wrong type")
	ErrNotAddressable = errors.New("target is not addressable, pass a pointer")
	ErrNilEmbedded    = errors.New("embedded pointer on the access path is nil")
	ErrTypeMismatch   = errors.New("value type does not match property type")
	ErrPanic          = errors.New("accessor panicked")
)

// InvocationError reports that the underlying call or access failed at the
// target. Err holds the cause: an error returned by the accessor, ErrPanic,
// or one of the target validation sentinels.
type InvocationError struct {
	Op       string // "get" or "set"
	Property string
	Type     reflect.Type
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s property '%s' on '%s': %v", e.Op, e.Property, typeName(e.Type), e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// ResolutionError reports an accessor that cannot be resolved because its
// overloads are ambiguous. The message is computed once when the property
// table is built.
type ResolutionError struct {
	Property   string
	Type       reflect.Type
	Candidates []reflect.Type
	msg        string
}

// NewGetterResolutionError records getters for property on owner whose
// result types cannot be ranked.
func NewGetterResolutionError(property string, owner reflect.Type, candidates ...reflect.Type) *ResolutionError {
	return &ResolutionError{
		Property:   property,
		Type:       owner,
		Candidates: candidates,
		msg: fmt.Sprintf(
			"illegal overloaded getter method with ambiguous type for property '%s' in type '%s' (candidate types %s); accessor contracts allow a single getter type per property",
			property, typeName(owner), joinTypes(candidates)),
	}
}

// NewSetterResolutionError records setters for property on owner whose
// parameter types cannot be ranked.
func NewSetterResolutionError(property string, owner reflect.Type, candidates ...reflect.Type) *ResolutionError {
	return &ResolutionError{
		Property:   property,
		Type:       owner,
		Candidates: candidates,
		msg: fmt.Sprintf("ambiguous setters defined for property '%s' in type '%s' with types %s",
			property, typeName(owner), joinTypes(candidates)),
	}
}

func (e *ResolutionError) Error() string { return e.msg }

// PermissionError reports that the access policy forbids the introspection
// or private access an operation needs.
type PermissionError struct {
	Type     reflect.Type
	Property string
	Reason   string
}

func (e *PermissionError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("permission denied for type '%s': %s", typeName(e.Type), e.Reason)
	}
	return fmt.Sprintf("permission denied for property '%s' in type '%s': %s", e.Property, typeName(e.Type), e.Reason)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.PkgPath() != "" && t.Name() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

func joinTypes(ts []reflect.Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = "'" + t.String() + "'"
	}
	return strings.Join(names, " and ")
}
