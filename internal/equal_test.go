package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultEquals(t *testing.T) {
	s := []int{1, 2, 3}
	m := map[string]int{"a": 1}
	f := func() {}

	type point struct{ X, Y int }
	type boxed struct{ V any }

	tests := []struct {
		name  string
		a, b  any
		equal bool
	}{
		{"same ints", 1, 1, true},
		{"different ints", 1, 2, false},
		{"different types", 1, int64(1), false},
		{"nils", nil, nil, true},
		{"nil and value", nil, 0, false},
		{"strings", "a", "a", true},
		{"structs", point{1, 2}, point{1, 2}, true},
		{"pointers", &point{}, &point{}, false},
		{"same slice", s, s, true},
		{"resliced", s, s[:2], false},
		{"copied slice", s, append([]int(nil), s...), false},
		{"same map", m, m, true},
		{"other map", m, map[string]int{"a": 1}, false},
		{"funcs", f, f, false},
		{"uncomparable interface field", boxed{[]int{1}}, boxed{[]int{1}}, false},
		{"comparable interface field", boxed{1}, boxed{1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, DefaultEquals(tt.a, tt.b))
		})
	}
}
