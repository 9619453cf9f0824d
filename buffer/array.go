package buffer

import (
	"fmt"
	"unsafe"

	"github.com/wippyai/status-bridge/errors"
)

// Info describes exported storage. Scalar buffers use Data with byte
// offsets and strides; object buffers use Objects with element offsets
// and strides.
type Info struct {
	Data     []byte
	Objects  []any
	Shape    []int
	Strides  []int
	Offset   int
	Kind     ElemKind
	ReadOnly bool
}

// Len returns the number of elements described by the shape.
func (i Info) Len() int {
	n := 1
	for _, d := range i.Shape {
		n *= d
	}
	return n
}

// Exporter is implemented by values that expose their storage as a buffer.
// writable asks for storage the caller may write; exporters that cannot
// honor it report ReadOnly or fail.
type Exporter interface {
	Buffer(writable bool) (Info, error)
}

// Array is an n-dimensional strided array, the host-side buffer model.
// Views created by Strided and ReadOnly share storage with the original.
type Array struct {
	data     []byte
	objects  []any
	shape    []int
	strides  []int
	offset   int
	kind     ElemKind
	readOnly bool
}

// Zeros allocates a C-contiguous zeroed array. Scalar storage is 8-byte
// aligned.
func Zeros(kind ElemKind, shape ...int) *Array {
	if len(shape) == 0 {
		shape = []int{0}
	}
	n := 1
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("buffer: negative dimension %d", d))
		}
		n *= d
	}
	a := &Array{
		kind:    kind,
		shape:   append([]int(nil), shape...),
		strides: contiguousStrides(shape, kind.Size()),
	}
	if kind == Object {
		a.objects = make([]any, n)
	} else {
		a.data = alignedBytes(n * kind.Size())
	}
	return a
}

// FromSlice copies vals into a new 1-D array.
func FromSlice[T Scalar](vals []T) *Array {
	a := Zeros(KindOf[T](), len(vals))
	if len(vals) > 0 {
		copy(unsafe.Slice((*T)(unsafe.Pointer(&a.data[0])), len(vals)), vals)
	}
	return a
}

// sliceInfo aliases a typed Go slice as writable contiguous storage.
func sliceInfo(src any) (Info, bool) {
	switch s := src.(type) {
	case []bool:
		return sliceBytes(s), true
	case []int8:
		return sliceBytes(s), true
	case []uint8:
		return sliceBytes(s), true
	case []int16:
		return sliceBytes(s), true
	case []uint16:
		return sliceBytes(s), true
	case []int32:
		return sliceBytes(s), true
	case []uint32:
		return sliceBytes(s), true
	case []int64:
		return sliceBytes(s), true
	case []uint64:
		return sliceBytes(s), true
	case []float32:
		return sliceBytes(s), true
	case []float64:
		return sliceBytes(s), true
	case []complex64:
		return sliceBytes(s), true
	case []complex128:
		return sliceBytes(s), true
	}
	return Info{}, false
}

func sliceBytes[T Scalar](s []T) Info {
	kind := KindOf[T]()
	info := Info{Shape: []int{len(s)}, Strides: []int{kind.Size()}, Kind: kind}
	if len(s) > 0 {
		info.Data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*kind.Size())
	}
	return info
}

// ObjectArray creates a 1-D object array holding vals.
func ObjectArray(vals ...any) *Array {
	a := Zeros(Object, len(vals))
	copy(a.objects, vals)
	return a
}

// Kind returns the element kind.
func (a *Array) Kind() ElemKind { return a.kind }

// Shape returns a copy of the dimensions.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Len returns the total number of elements.
func (a *Array) Len() int {
	n := 1
	for _, d := range a.shape {
		n *= d
	}
	return n
}

// Writable reports whether the array accepts writes.
func (a *Array) Writable() bool { return !a.readOnly }

// ClassName names the array class in diagnostics.
func (a *Array) ClassName() string { return "Array" }

// Reshape returns a view with a new shape over the same contiguous storage.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	n := 1
	for _, d := range shape {
		n *= d
	}
	if n != a.Len() {
		return nil, errors.InvalidInput(errors.PhaseBuffer,
			fmt.Sprintf("cannot reshape %d elements into %v", a.Len(), shape))
	}
	if !a.contiguous() {
		return nil, errors.Unsupported(errors.PhaseBuffer, "reshape of a non-contiguous array")
	}
	c := *a
	c.shape = append([]int(nil), shape...)
	c.strides = contiguousStrides(shape, a.elemStride())
	return &c, nil
}

// Strided returns a 1-D view taking every step-th element. A negative step
// walks backwards from the last element.
func (a *Array) Strided(step int) *Array {
	if len(a.shape) != 1 || step == 0 {
		panic("buffer: Strided needs a 1-D array and a non-zero step")
	}
	c := *a
	n := a.shape[0]
	abs := step
	if abs < 0 {
		abs = -abs
		if n > 0 {
			c.offset = a.offset + (n-1)*a.strides[0]
		}
	}
	c.shape = []int{(n + abs - 1) / abs}
	c.strides = []int{a.strides[0] * step}
	return &c
}

// ReadOnly returns a read-only view sharing storage with a.
func (a *Array) ReadOnly() *Array {
	c := *a
	c.readOnly = true
	return &c
}

// Buffer exports the array's storage. The returned slices alias the array.
func (a *Array) Buffer(writable bool) (Info, error) {
	if writable && a.readOnly {
		return Info{}, errors.Unsupported(errors.PhaseBuffer, "buffer is read-only")
	}
	return Info{
		Data:     a.data,
		Objects:  a.objects,
		Shape:    append([]int(nil), a.shape...),
		Strides:  append([]int(nil), a.strides...),
		Offset:   a.offset,
		Kind:     a.kind,
		ReadOnly: a.readOnly,
	}, nil
}

// Values copies the elements of a 1-D scalar array out as T, converting
// each element when the kinds differ.
func Values[T Scalar](a *Array) ([]T, error) {
	info, _ := a.Buffer(false)
	return copyScalars[T](a, info, make([]T, info.Len()))
}

// Objects returns a copy of the elements of a 1-D object array.
func (a *Array) Objects() []any {
	if a.kind != Object || len(a.shape) != 1 {
		return nil
	}
	out := make([]any, a.shape[0])
	for i := range out {
		out[i] = a.objects[a.offset+i*a.strides[0]]
	}
	return out
}

func (a *Array) elemStride() int {
	if a.kind == Object {
		return 1
	}
	return a.kind.Size()
}

func (a *Array) contiguous() bool {
	want := a.elemStride()
	for i := len(a.shape) - 1; i >= 0; i-- {
		if a.shape[i] > 1 && a.strides[i] != want {
			return false
		}
		want *= a.shape[i]
	}
	return true
}

func contiguousStrides(shape []int, size int) []int {
	strides := make([]int, len(shape))
	s := size
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= shape[i]
	}
	return strides
}

// alignedBytes allocates n zero bytes backed by 8-byte words.
func alignedBytes(n int) []byte {
	if n == 0 {
		return []byte{}
	}
	words := make([]uint64, (n+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), n)
}
