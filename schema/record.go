package schema

import "reflect"

// Record marks an immutable value holder. A struct embedding Record exposes
// every zero-argument method with a result as a read-only property named
// exactly like the method, and nothing else:
//
//	type Point struct {
//	    schema.Record
//	    x, y int
//	}
//
//	func (p Point) X() int { return p.x }
//	func (p Point) Y() int { return p.y }
type Record struct{}

var recordType = reflect.TypeOf(Record{})

// isRecord reports whether t embeds the Record marker directly.
func isRecord(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.Anonymous && f.Type == recordType {
			return true
		}
	}
	return false
}
