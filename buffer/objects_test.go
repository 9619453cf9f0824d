package buffer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	value int
}

func nativeItems() []any {
	return []any{&item{3}, &item{5}}
}

func opaqueItems() *ObjectVector[item] {
	return NewObjectVector(item{3}, item{5})
}

func sumItems(v *View[item]) int {
	total := 0
	for _, it := range v.All() {
		total += it.value
	}
	return total
}

func TestObjectsFrom(t *testing.T) {
	tests := []struct {
		name     string
		src      any
		borrowed bool
	}{
		{"native list", nativeItems(), false},
		{"native values", []any{item{3}, item{5}}, false},
		{"opaque vector", opaqueItems(), true},
		{"go slice", []item{{3}, {5}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var total int
			err := Objects(tt.src, Convert, func(v *View[item]) error {
				total = sumItems(v)
				assert.Equal(t, tt.borrowed, v.Borrowed())
				assert.Equal(t, Object, v.Kind())
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, 8, total)
		})
	}
}

func TestObjectsNoConvert(t *testing.T) {
	var total int
	require.NoError(t, Objects(opaqueItems(), NoConvert, func(v *View[item]) error {
		total = sumItems(v)
		return nil
	}))
	assert.Equal(t, 8, total)

	err := Objects(nativeItems(), NoConvert, func(*View[item]) error { return nil })
	requireMismatch(t, err, "plain sequence requires conversion")
}

func TestObjectsBadElement(t *testing.T) {
	err := Objects([]any{&item{1}, "x"}, Convert, func(*View[item]) error { return nil })
	requireMismatch(t, err, "element 1 (str) cannot be converted to buffer.item")

	err = Objects(5, Convert, func(*View[item]) error { return nil })
	requireMismatch(t, err, "int object is not a buffer or sequence")
}

func TestObjectPointers(t *testing.T) {
	tests := []struct {
		name string
		src  func() any
		read func(any) []int
	}{
		{
			name: "native list",
			src:  func() any { return nativeItems() },
			read: func(src any) []int {
				var out []int
				for _, e := range src.([]any) {
					out = append(out, e.(*item).value)
				}
				return out
			},
		},
		{
			name: "opaque vector",
			src:  func() any { return opaqueItems() },
			read: func(src any) []int {
				var out []int
				for _, it := range src.(*ObjectVector[item]).Items() {
					out = append(out, it.value)
				}
				return out
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.src()

			var total int
			require.NoError(t, ObjectPointers(src, Convert, func(v *View[*item]) error {
				for _, p := range v.All() {
					total += p.value
				}
				return nil
			}))
			assert.Equal(t, 8, total)

			require.NoError(t, ObjectPointers(src, Convert, func(v *View[*item]) error {
				for _, p := range v.All() {
					p.value = 42
				}
				return nil
			}))
			assert.Equal(t, []int{42, 42}, tt.read(src))
		})
	}
}

func TestObjectPointersRejectsValues(t *testing.T) {
	err := ObjectPointers([]any{item{1}}, Convert, func(*View[*item]) error { return nil })
	requireMismatch(t, err, "element 0 (item) cannot be converted to *buffer.item")

	err = ObjectPointers(nativeItems(), NoConvert, func(*View[*item]) error { return nil })
	requireMismatch(t, err, "plain sequence requires conversion")

	require.NoError(t, ObjectPointers([]*item{{1}}, NoConvert, func(v *View[*item]) error {
		assert.True(t, v.Borrowed())
		return nil
	}))
}

func TestFillObjects(t *testing.T) {
	vec := opaqueItems()
	require.NoError(t, FillObjects(item{42}, vec))
	for _, it := range vec.Items() {
		assert.Equal(t, 42, it.value)
	}

	err := FillObjects(item{42}, nativeItems())
	requireMismatch(t, err, "a plain sequence cannot back a mutable view")
}

func TestMutableObjects(t *testing.T) {
	items := []item{{1}, {2}}
	require.NoError(t, MutableObjects(items, func(v *View[item]) error {
		v.Set(1, item{20})
		return nil
	}))
	assert.Equal(t, 20, items[1].value)

	err := MutableObjects(5, func(*View[item]) error { return nil })
	requireMismatch(t, err, "int object is not a buffer or sequence")
}

func TestObjectArray(t *testing.T) {
	arr := ObjectArray(-3, "four", 5.0)

	var b strings.Builder
	require.NoError(t, Objects(arr, NoConvert, func(v *View[any]) error {
		assert.True(t, v.Borrowed())
		for _, x := range v.All() {
			fmt.Fprint(&b, x)
		}
		return nil
	}))
	assert.Equal(t, "-3four5", b.String())

	require.NoError(t, FillObjects[any]("x", arr))
	assert.Equal(t, []any{"x", "x", "x"}, arr.Objects())

	err := FillObjects[any]("y", arr.ReadOnly())
	requireMismatch(t, err, "buffer is read-only")

	err = Objects(Zeros(Int32, 2), Convert, func(*View[any]) error { return nil })
	requireMismatch(t, err, "expected element kind object, got int32")
}

func TestObjectArrayConverted(t *testing.T) {
	arr := ObjectArray(&item{3}, &item{5})
	var total int
	require.NoError(t, Objects(arr, Convert, func(v *View[item]) error {
		total = sumItems(v)
		assert.False(t, v.Borrowed())
		return nil
	}))
	assert.Equal(t, 8, total)

	err := Objects(arr, NoConvert, func(*View[item]) error { return nil })
	requireMismatch(t, err, "plain sequence requires conversion")
}
