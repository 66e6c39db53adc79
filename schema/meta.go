package schema

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/Konsultn-Engineering/reflector/invoker"
)

// buildDescriptor introspects t once. Step order decides which candidate wins
// a tie: constructors, members, getters, setters, then the field fallback for
// whatever is still missing.
func buildDescriptor(t reflect.Type, cfg *Config, tags *TagParser) (*Descriptor, error) {
	if t == nil {
		return nil, ErrNilType
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if !cfg.policy.CanIntrospect(t) {
		return nil, &invoker.PermissionError{
			Type:   t,
			Reason: "introspection is not permitted by the access policy",
		}
	}

	ctors := constructorsFor(t, cfg.constructors)
	d := &Descriptor{
		typ:          t,
		record:       isRecord(t),
		constructors: ctors,
		defaultCtor:  defaultConstructor(ctors),
	}

	b := newBuilder(t, tags, cfg.policy.CanAccessPrivate(t))
	members := scanMembers(t)
	if d.record {
		b.addRecordGetters(members)
	} else {
		b.addGetterMethods(members)
		b.addSetterMethods(members)
		if t.Kind() == reflect.Struct {
			if err := b.addFields(); err != nil {
				return nil, fmt.Errorf("introspect %s: %w", t, err)
			}
		}
	}

	d.getters, d.setters = b.getters, b.setters
	d.getTypes, d.setTypes = b.getTypes, b.setTypes
	d.readable = sortedKeys(b.getters)
	d.writable = sortedKeys(b.setters)

	// Readable names first, then writable; on a collision of upper-cased names
	// the later one replaces the earlier.
	d.caseInsensitive = make(map[string]string, len(d.readable)+len(d.writable))
	for _, name := range d.readable {
		d.caseInsensitive[indexKey(name)] = name
	}
	for _, name := range d.writable {
		d.caseInsensitive[indexKey(name)] = name
	}
	return d, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
