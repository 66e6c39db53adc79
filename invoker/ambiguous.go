package invoker

import "reflect"

// AmbiguousInvoker stands in for a property side whose accessors could not be
// ranked. It satisfies both Getter and Setter and fails every call with the
// ResolutionError recorded when the property table was built.
type AmbiguousInvoker struct {
	base
	err *ResolutionError
}

// NewAmbiguous returns the placeholder for property. typ is the value type
// recorded for the property side.
func NewAmbiguous(property string, typ reflect.Type, err *ResolutionError) *AmbiguousInvoker {
	return &AmbiguousInvoker{base: base{property: property, typ: typ}, err: err}
}

func (a *AmbiguousInvoker) Variant() Variant { return Ambiguous }

// Err returns the recorded resolution failure.
func (a *AmbiguousInvoker) Err() *ResolutionError { return a.err }

func (a *AmbiguousInvoker) Get(any) (any, error) { return nil, a.err }

func (a *AmbiguousInvoker) Set(any, any) error { return a.err }
