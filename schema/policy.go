package schema

import "reflect"

// AccessPolicy is the capability consulted while a descriptor is built.
// It decides whether a type may be introspected at all and whether invokers
// may reach unexported members. Restricted environments pass their own
// implementation instead of relying on global state.
type AccessPolicy interface {
	CanIntrospect(t reflect.Type) bool
	CanAccessPrivate(t reflect.Type) bool
}

type staticPolicy struct {
	private bool
}

func (p staticPolicy) CanIntrospect(reflect.Type) bool    { return true }
func (p staticPolicy) CanAccessPrivate(reflect.Type) bool { return p.private }

// AllowAll permits introspection and private member access for every type.
func AllowAll() AccessPolicy { return staticPolicy{private: true} }

// PublicOnly permits introspection but refuses access to unexported members;
// invokers that would need it fail with a *invoker.PermissionError.
func PublicOnly() AccessPolicy { return staticPolicy{private: false} }
