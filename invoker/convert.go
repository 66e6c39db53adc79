package invoker

import (
	"fmt"
	"reflect"
)

// adapt prepares value for assignment to a slot or parameter of type to.
// nil becomes the zero value, non-nil pointers are dereferenced when their
// element fits, and convertible values are converted. Integer to string and
// slice to array conversions are refused.
func adapt(value any, to reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(to), nil
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(to) {
		return val, nil
	}

	if val.Kind() == reflect.Pointer && !val.IsNil() && val.Elem().Type().AssignableTo(to) {
		return val.Elem(), nil
	}

	if val.Type().ConvertibleTo(to) && convertible(val.Type(), to) {
		return val.Convert(to), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: cannot use %s as %s", ErrTypeMismatch, val.Type(), to)
}

func convertible(from, to reflect.Type) bool {
	if to.Kind() == reflect.String && isInteger(from.Kind()) {
		return false
	}
	if from.Kind() == reflect.Slice {
		switch to.Kind() {
		case reflect.Array:
			return false
		case reflect.Pointer:
			return to.Elem().Kind() != reflect.Array
		}
	}
	return true
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}
