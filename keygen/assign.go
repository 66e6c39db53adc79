package keygen

import (
	"fmt"
	"reflect"

	"github.com/Konsultn-Engineering/reflector/schema"
)

// Assign generates a key with gen and writes it into property of target
// through the descriptor's set invoker. String-kinded properties receive the
// key's string form. The written value is returned.
func Assign(d *schema.Descriptor, target any, property string, gen Generator) (any, error) {
	setter, err := d.SetInvoker(property)
	if err != nil {
		return nil, err
	}

	key, err := gen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate %s key for %s: %w", gen.Name(), property, err)
	}
	if setter.Type().Kind() == reflect.String {
		key = keyString(key)
	}

	if err := setter.Set(target, key); err != nil {
		return nil, fmt.Errorf("assign %s key to %s: %w", gen.Name(), property, err)
	}
	return key, nil
}

// AssignIfZero is Assign for properties whose current value is the zero
// value. It reports whether a key was written; when it was not, the current
// value is returned.
func AssignIfZero(d *schema.Descriptor, target any, property string, gen Generator) (any, bool, error) {
	getter, err := d.GetInvoker(property)
	if err != nil {
		return nil, false, err
	}
	current, err := getter.Get(target)
	if err != nil {
		return nil, false, err
	}
	if current != nil && !reflect.ValueOf(current).IsZero() {
		return current, false, nil
	}

	key, err := Assign(d, target, property, gen)
	if err != nil {
		return nil, false, err
	}
	return key, true, nil
}

func keyString(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprint(k)
	}
}
