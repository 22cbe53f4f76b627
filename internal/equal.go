package internal

import "reflect"

type EqualFunc func(a, b any) bool

// DefaultEquals reports whether a and b are the same value: == for comparable
// values, the same backing array for slices, the same map for maps. Funcs are
// never equal.
func DefaultEquals(a, b any) (equal bool) {
	if a == nil || b == nil {
		return a == b
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Func:
		return false
	case reflect.Slice:
		return va.Len() == vb.Len() && va.Pointer() == vb.Pointer()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	}

	if !ta.Comparable() {
		return false
	}

	// structs and arrays may hold interfaces with non-comparable dynamic values
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()

	return a == b
}
