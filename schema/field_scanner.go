package schema

import (
	"reflect"

	"github.com/Konsultn-Engineering/reflector/invoker"
)

// addFields registers field invokers for every property side no accessor
// method provided. Own fields are visited first, then the fields of embedded
// structs breadth-first, so a shallower field shadows a deeper one with the
// same property name. Embedded structs are walked into and embedded
// interfaces skipped; any other embedded type is a plain slot.
func (b *builder) addFields() error {
	type level struct {
		st   reflect.Type
		path []int
	}

	visited := map[reflect.Type]struct{}{b.typ: {}}
	queue := []level{{st: b.typ}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for i := 0; i < cur.st.NumField(); i++ {
			f := cur.st.Field(i)
			path := append(append([]int(nil), cur.path...), i)

			if f.Anonymous {
				if st := embeddedStruct(f.Type); st != nil {
					if _, done := visited[st]; !done {
						visited[st] = struct{}{}
						queue = append(queue, level{st: st, path: path})
					}
					continue
				}
				if f.Type.Kind() == reflect.Interface {
					continue
				}
			}
			if err := b.addField(f, path); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) addField(f reflect.StructField, path []int) error {
	// Unexported fields of types from other packages, such as the state of an
	// embedded sync.Mutex, are implementation details of that package.
	if !f.IsExported() && b.typ.PkgPath() != "" && f.PkgPath != b.typ.PkgPath() {
		return nil
	}

	tag, err := b.tags.ParseTag(f.Name, f.Tag)
	if err != nil {
		return err
	}
	if tag.Skip {
		return nil
	}

	name := tag.Name
	if name == "" {
		name = decapitalize(f.Name)
	}
	if !isValidPropertyName(name) {
		return nil
	}

	route := invoker.NewRoute(b.typ, path...)
	if _, exists := b.setters[name]; !exists && !tag.ReadOnly {
		b.setters[name] = invoker.NewFieldSetter(name, f.Type, route, b.allowPrivate)
		b.setTypes[name] = f.Type
	}
	if _, exists := b.getters[name]; !exists {
		b.getters[name] = invoker.NewFieldGetter(name, f.Type, route, b.allowPrivate)
		b.getTypes[name] = f.Type
	}
	return nil
}

// embeddedStruct returns the struct type of an embedded struct or struct
// pointer field, or nil.
func embeddedStruct(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		return t
	}
	return nil
}
