package schema

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/Konsultn-Engineering/reflector/invoker"
)

// member is a candidate accessor method found while scanning a type.
type member struct {
	name      string
	route     invoker.Route  // route from the scanned type to the receiver
	declaring reflect.Type   // type whose method set provided the member
	in        []reflect.Type // parameters, receiver excluded
	out       []reflect.Type // value results, a trailing error excluded
	withErr   bool
	variadic  bool
}

func (m *member) accessor() invoker.Accessor {
	return invoker.Accessor{Route: m.route, Name: m.name, ReturnsError: m.withErr}
}

// signature identifies a member by name, parameter types and result types.
func (m *member) signature() string {
	var b strings.Builder
	b.WriteString(m.name)
	b.WriteByte('(')
	for i, t := range m.in {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(typeKey(t))
	}
	b.WriteByte(')')
	for _, t := range m.out {
		b.WriteByte(' ')
		b.WriteString(typeKey(t))
	}
	if m.withErr {
		b.WriteString(" error")
	}
	return b.String()
}

// typeKey qualifies named types with their package path so that equally
// named types from different packages differ.
func typeKey(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// methodSource is a type whose method set contributes members, reached from
// the scanned type through path.
type methodSource struct {
	methods   reflect.Type // type whose method set is listed
	declaring reflect.Type
	path      []int
}

type memberScanner struct {
	root     reflect.Type
	members  []*member
	seen     map[string]struct{} // signatures
	shadowed map[string]struct{} // names provided at a shallower depth
	visited  map[reflect.Type]struct{}
}

// scanMembers collects the accessor candidates of t. Depth 0 is the full
// method set of *t (of t for interfaces), which already holds every method
// promoted without conflict. Embedded fields are then walked breadth-first;
// a name provided at a shallower depth hides deeper ones, so deeper levels
// only contribute the methods Go leaves out of the method set because two
// embedded types at the same depth provide them. Members are deduplicated by
// signature, first occurrence winning.
func scanMembers(t reflect.Type) []*member {
	s := &memberScanner{
		root:     t,
		seen:     make(map[string]struct{}),
		shadowed: make(map[string]struct{}),
		visited:  make(map[reflect.Type]struct{}),
	}

	methods := t
	if t.Kind() != reflect.Interface {
		methods = reflect.PointerTo(t)
	}
	s.addLevel([]methodSource{{methods: methods, declaring: t}})

	if t.Kind() != reflect.Struct {
		return s.members
	}
	s.visited[t] = struct{}{}

	frontier := s.embedded(t, nil)
	for len(frontier) > 0 {
		s.addLevel(frontier)
		var next []methodSource
		for _, src := range frontier {
			if st := structOf(src.declaring); st != nil {
				next = append(next, s.embedded(st, src.path)...)
			}
		}
		frontier = next
	}
	return s.members
}

func (s *memberScanner) addLevel(sources []methodSource) {
	names := make(map[string]struct{})
	for _, src := range sources {
		route := invoker.NewRoute(s.root, src.path...)
		for i := 0; i < src.methods.NumMethod(); i++ {
			m := src.methods.Method(i)
			if !m.IsExported() {
				continue
			}
			if _, hidden := s.shadowed[m.Name]; hidden {
				continue
			}
			mem := newMember(m, src, route.Extend(promotionPath(src.declaring, m.Name)...))
			sig := mem.signature()
			if _, dup := s.seen[sig]; dup {
				continue
			}
			s.seen[sig] = struct{}{}
			names[m.Name] = struct{}{}
			s.members = append(s.members, mem)
		}
	}
	for name := range names {
		s.shadowed[name] = struct{}{}
	}
}

// embedded lists the method sources of the anonymous fields of st, which is
// reached through path. Struct types are visited once.
func (s *memberScanner) embedded(st reflect.Type, path []int) []methodSource {
	var sources []methodSource
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.Anonymous || f.Type == recordType {
			continue
		}
		fieldPath := append(append([]int(nil), path...), i)

		declaring := f.Type
		if declaring.Kind() == reflect.Pointer {
			declaring = declaring.Elem()
		}
		if declaring.Kind() == reflect.Struct {
			if _, done := s.visited[declaring]; done {
				continue
			}
			s.visited[declaring] = struct{}{}
		}

		methods := f.Type
		if methods.Kind() != reflect.Interface && methods.Kind() != reflect.Pointer {
			methods = reflect.PointerTo(methods)
		}
		sources = append(sources, methodSource{methods: methods, declaring: declaring, path: fieldPath})
	}
	return sources
}

func newMember(m reflect.Method, src methodSource, route invoker.Route) *member {
	ft := m.Type
	first := 1 // receiver
	if src.methods.Kind() == reflect.Interface {
		first = 0
	}

	mem := &member{name: m.Name, route: route, declaring: src.declaring, variadic: ft.IsVariadic()}
	for i := first; i < ft.NumIn(); i++ {
		mem.in = append(mem.in, ft.In(i))
	}
	for i := 0; i < ft.NumOut(); i++ {
		mem.out = append(mem.out, ft.Out(i))
	}
	// A trailing error is split off, except for the lone result of a
	// zero-argument method, which is the value itself.
	if n := len(mem.out); n > 0 && mem.out[n-1] == errorType && (n > 1 || len(mem.in) > 0) {
		mem.out = mem.out[:n-1]
		mem.withErr = true
	}
	return mem
}

func structOf(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Struct {
		return t
	}
	return nil
}

// isGetterShape reports whether m takes no arguments and yields one value.
func (m *member) isGetterShape() bool {
	return len(m.in) == 0 && len(m.out) == 1
}

// isSetterShape reports whether m takes exactly one argument. Results are
// ignored, so fluent setters returning their receiver qualify.
func (m *member) isSetterShape() bool {
	return len(m.in) == 1 && !m.variadic
}

// promotionPath returns the embedded field indexes through which the method
// set of struct t obtains the method name, or nil when t declares it itself.
// The shallowest embedded type declaring name wins, as in Go's selector rule.
func promotionPath(t reflect.Type, name string) []int {
	if t.Kind() != reflect.Struct || declares(t, name) {
		return nil
	}

	type node struct {
		st   reflect.Type
		path []int
	}
	visited := map[reflect.Type]struct{}{t: {}}
	level := []node{{st: t}}
	for len(level) > 0 {
		var next []node
		for _, n := range level {
			for i := 0; i < n.st.NumField(); i++ {
				f := n.st.Field(i)
				if !f.Anonymous {
					continue
				}
				path := append(append([]int(nil), n.path...), i)

				ft := f.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				switch ft.Kind() {
				case reflect.Struct:
					if declares(ft, name) {
						return path
					}
					if _, done := visited[ft]; !done {
						visited[ft] = struct{}{}
						next = append(next, node{st: ft, path: path})
					}
				case reflect.Interface:
					if _, ok := ft.MethodByName(name); ok {
						return path
					}
				default:
					if _, ok := reflect.PointerTo(ft).MethodByName(name); ok {
						return path
					}
				}
			}
		}
		level = next
	}
	return nil
}

// declares reports whether struct st has its own method name, with either
// receiver, rather than one promoted from an embedded field.
func declares(st reflect.Type, name string) bool {
	for _, t := range []reflect.Type{st, reflect.PointerTo(st)} {
		if m, ok := t.MethodByName(name); ok && !isWrapper(m.Func) {
			return true
		}
	}
	return false
}

// isWrapper reports whether fn is compiler-generated, as are the method
// table entries of promoted methods and of value methods seen through a
// pointer receiver.
func isWrapper(fn reflect.Value) bool {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return false
	}
	file, _ := f.FileLine(f.Entry())
	return file == "<autogenerated>"
}
