package schema

import (
	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

type dumpedProperty struct {
	Type    string
	Variant string
}

type dumpedDescriptor struct {
	Type               string
	Record             bool
	DefaultConstructor bool
	Getters            map[string]dumpedProperty
	Setters            map[string]dumpedProperty
}

// Dump renders the property table for debugging. The output is stable for a
// given type.
func (d *Descriptor) Dump() string {
	out := dumpedDescriptor{
		Type:               d.typ.String(),
		Record:             d.record,
		DefaultConstructor: d.defaultCtor != nil,
		Getters:            make(map[string]dumpedProperty, len(d.getters)),
		Setters:            make(map[string]dumpedProperty, len(d.setters)),
	}
	for name, g := range d.getters {
		out.Getters[name] = dumpedProperty{Type: d.getTypes[name].String(), Variant: g.Variant().String()}
	}
	for name, s := range d.setters {
		out.Setters[name] = dumpedProperty{Type: d.setTypes[name].String(), Variant: s.Variant().String()}
	}
	return dumpConfig.Sdump(out)
}
