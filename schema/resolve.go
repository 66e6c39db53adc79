package schema

import (
	"reflect"

	"github.com/Konsultn-Engineering/reflector/invoker"
)

// builder accumulates the property tables of one type. It is used by a
// single goroutine and discarded once the Descriptor is assembled.
type builder struct {
	typ          reflect.Type
	tags         *TagParser
	allowPrivate bool

	getters  map[string]invoker.Getter
	setters  map[string]invoker.Setter
	getTypes map[string]reflect.Type
	setTypes map[string]reflect.Type
}

func newBuilder(t reflect.Type, tags *TagParser, allowPrivate bool) *builder {
	return &builder{
		typ:          t,
		tags:         tags,
		allowPrivate: allowPrivate,
		getters:      make(map[string]invoker.Getter),
		setters:      make(map[string]invoker.Setter),
		getTypes:     make(map[string]reflect.Type),
		setTypes:     make(map[string]reflect.Type),
	}
}

// candidates groups members by property name, keeping discovery order both
// across and within groups.
type candidates struct {
	order  []string
	byName map[string][]*member
}

func (c *candidates) add(name string, m *member) {
	if c.byName == nil {
		c.byName = make(map[string][]*member)
	}
	if _, ok := c.byName[name]; !ok {
		c.order = append(c.order, name)
	}
	c.byName[name] = append(c.byName[name], m)
}

// =========================================================================
// Records
// =========================================================================

// addRecordGetters exposes every zero-argument member with a value result
// as a getter named exactly like the member.
func (b *builder) addRecordGetters(members []*member) {
	for _, m := range members {
		if !m.isGetterShape() {
			continue
		}
		if _, exists := b.getters[m.name]; exists {
			continue
		}
		b.addGetterMethod(m.name, m)
	}
}

// =========================================================================
// Getters
// =========================================================================

func (b *builder) addGetterMethods(members []*member) {
	var groups candidates
	for _, m := range members {
		if m.isGetterShape() && isGetterName(m.name) {
			if name := methodToProperty(m.name); isValidPropertyName(name) {
				groups.add(name, m)
			}
		}
	}
	for _, name := range groups.order {
		b.resolveGetter(name, groups.byName[name])
	}
}

// resolveGetter folds the getters of one property into a winner. Equal
// non-bool result types cannot be ranked; for bool the Is form is preferred;
// otherwise the more specific result type wins.
func (b *builder) resolveGetter(name string, group []*member) {
	winner := group[0]
	for _, candidate := range group[1:] {
		winnerType, candidateType := winner.out[0], candidate.out[0]
		switch {
		case winnerType == candidateType:
			if winnerType.Kind() != reflect.Bool {
				b.addAmbiguousGetter(name, winner, candidate)
				return
			}
			if hasAccessorPrefix(candidate.name, isPrefix) {
				winner = candidate
			}
		case winnerType.AssignableTo(candidateType):
			// winner is already the more specific one
		case candidateType.AssignableTo(winnerType):
			winner = candidate
		default:
			b.addAmbiguousGetter(name, winner, candidate)
			return
		}
	}
	b.addGetterMethod(name, winner)
}

func (b *builder) addGetterMethod(name string, m *member) {
	typ := m.out[0]
	b.getters[name] = invoker.NewMethodGetter(name, typ, m.accessor(), b.allowPrivate)
	b.getTypes[name] = typ
}

func (b *builder) addAmbiguousGetter(name string, winner, candidate *member) {
	typ := winner.out[0]
	err := invoker.NewGetterResolutionError(name, b.typ, typ, candidate.out[0])
	b.getters[name] = invoker.NewAmbiguous(name, typ, err)
	b.getTypes[name] = typ
}

// =========================================================================
// Setters
// =========================================================================

func (b *builder) addSetterMethods(members []*member) {
	var groups candidates
	for _, m := range members {
		if m.isSetterShape() && isSetterName(m.name) {
			if name := methodToProperty(m.name); isValidPropertyName(name) {
				groups.add(name, m)
			}
		}
	}
	for _, name := range groups.order {
		b.resolveSetter(name, groups.byName[name])
	}
}

// resolveSetter picks the setter of one property. A setter whose parameter
// is exactly the type of a resolved, unambiguous getter wins outright.
// Otherwise the most specific parameter type wins; once two parameter types
// turn out unrelated the property is recorded as ambiguous and only an exact
// getter match can still replace that record.
func (b *builder) resolveSetter(name string, group []*member) {
	getterType, hasGetter := b.getTypes[name]
	_, getterAmbiguous := b.getters[name].(*invoker.AmbiguousInvoker)
	exact := hasGetter && !getterAmbiguous

	var match *member
	setterAmbiguous := false
	for _, setter := range group {
		if exact && setter.in[0] == getterType {
			match = setter
			break
		}
		if !setterAmbiguous {
			match = b.pickBetterSetter(match, setter, name)
			setterAmbiguous = match == nil
		}
	}
	if match != nil {
		b.addSetterMethod(name, match)
	}
}

func (b *builder) pickBetterSetter(setter1, setter2 *member, name string) *member {
	if setter1 == nil {
		return setter2
	}
	param1, param2 := setter1.in[0], setter2.in[0]
	if param2.AssignableTo(param1) {
		return setter2
	}
	if param1.AssignableTo(param2) {
		return setter1
	}
	err := invoker.NewSetterResolutionError(name, b.typ, param1, param2)
	b.setters[name] = invoker.NewAmbiguous(name, param1, err)
	b.setTypes[name] = param1
	return nil
}

func (b *builder) addSetterMethod(name string, m *member) {
	typ := m.in[0]
	b.setters[name] = invoker.NewMethodSetter(name, typ, m.accessor(), b.allowPrivate)
	b.setTypes[name] = typ
}
