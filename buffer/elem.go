package buffer

import (
	"unsafe"

	"github.com/wippyai/status-bridge/buffer/internal/coerce"
)

// load reads the scalar at byte offset off.
func load[T Scalar](data []byte, off int) T {
	return *(*T)(unsafe.Pointer(&data[off]))
}

// loadElem reads element i of a 1-D buffer as a dynamically typed value.
func loadElem(info Info, i int) any {
	if info.Kind == Object {
		return info.Objects[info.Offset+i*info.Strides[0]]
	}
	off := info.Offset + i*info.Strides[0]
	switch info.Kind {
	case Bool:
		return info.Data[off] != 0
	case Int8:
		return load[int8](info.Data, off)
	case Uint8:
		return info.Data[off]
	case Int16:
		return load[int16](info.Data, off)
	case Uint16:
		return load[uint16](info.Data, off)
	case Int32:
		return load[int32](info.Data, off)
	case Uint32:
		return load[uint32](info.Data, off)
	case Int64:
		return load[int64](info.Data, off)
	case Uint64:
		return load[uint64](info.Data, off)
	case Float32:
		return load[float32](info.Data, off)
	case Float64:
		return load[float64](info.Data, off)
	case Complex64:
		return load[complex64](info.Data, off)
	case Complex128:
		return load[complex128](info.Data, off)
	}
	return nil
}

// convertElem converts a dynamically typed value to T. Integer targets
// reject values out of range; float targets round to the nearest
// representable value.
func convertElem[T Scalar](v any) (T, bool) {
	var out T
	ok := false
	switch p := any(&out).(type) {
	case *bool:
		*p, ok = coerce.ToBool(v)
	case *int8:
		var n int64
		n, ok = coerce.ToSigned(v, 8)
		*p = int8(n)
	case *int16:
		var n int64
		n, ok = coerce.ToSigned(v, 16)
		*p = int16(n)
	case *int32:
		var n int64
		n, ok = coerce.ToSigned(v, 32)
		*p = int32(n)
	case *int64:
		*p, ok = coerce.ToSigned(v, 64)
	case *uint8:
		var n uint64
		n, ok = coerce.ToUnsigned(v, 8)
		*p = uint8(n)
	case *uint16:
		var n uint64
		n, ok = coerce.ToUnsigned(v, 16)
		*p = uint16(n)
	case *uint32:
		var n uint64
		n, ok = coerce.ToUnsigned(v, 32)
		*p = uint32(n)
	case *uint64:
		*p, ok = coerce.ToUnsigned(v, 64)
	case *float32:
		*p, ok = coerce.ToFloat32(v)
	case *float64:
		*p, ok = coerce.ToFloat64(v)
	case *complex64:
		var c complex128
		c, ok = coerce.ToComplex128(v)
		*p = complex64(c)
	case *complex128:
		*p, ok = coerce.ToComplex128(v)
	}
	return out, ok
}

// borrow reinterprets contiguous scalar storage as []T. It reports false
// when the storage is out of range or misaligned for T.
func borrow[T Scalar](info Info) ([]T, bool) {
	n := info.Len()
	if n == 0 {
		return []T{}, true
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	end := info.Offset + n*size
	if info.Offset < 0 || end > len(info.Data) {
		return nil, false
	}
	p := unsafe.Pointer(&info.Data[info.Offset])
	if uintptr(p)%unsafe.Alignof(zero) != 0 {
		return nil, false
	}
	return unsafe.Slice((*T)(p), n), true
}
