package schema

import "reflect"

var defaultContext = New()

// Introspect returns the descriptor for t from the process-wide context.
func Introspect(t reflect.Type) (*Descriptor, error) {
	return defaultContext.Introspect(t)
}

// For returns the descriptor for T from the process-wide context.
func For[T any]() (*Descriptor, error) {
	return defaultContext.Introspect(reflect.TypeFor[T]())
}

// NewDescriptor builds a descriptor for t without caching it. Pointer types
// are normalized to their element type. The build either completes or fails;
// no partially built descriptor is returned.
func NewDescriptor(t reflect.Type, options ...Option) (*Descriptor, error) {
	cfg := newConfig(options)
	return buildDescriptor(t, &cfg, NewTagParser(cfg.tagName))
}

// ClearCache drops every descriptor cached by the process-wide context.
func ClearCache() {
	defaultContext.ClearCache()
}
