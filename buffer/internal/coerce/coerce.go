package coerce

import "math"

// ToInt64 accepts any integer, or a float holding a whole number, that fits
// in an int64.
func ToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= float64(math.MinInt64) && v < float64(math.MaxInt64) && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= float64(math.MinInt64) && f < float64(math.MaxInt64) && f == math.Trunc(f) {
			return int64(f), true
		}
	}
	return 0, false
}

// ToUint64 accepts any non-negative integer, or a non-negative float holding
// a whole number, that fits in a uint64.
func ToUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 && v < float64(math.MaxUint64) && v == math.Trunc(v) {
			return uint64(v), true
		}
	case float32:
		f := float64(v)
		if f >= 0 && f < float64(math.MaxUint64) && f == math.Trunc(f) {
			return uint64(f), true
		}
	}
	return 0, false
}

// ToSigned narrows value to a signed integer of the given bit width.
func ToSigned(value any, bits int) (int64, bool) {
	n, ok := ToInt64(value)
	if !ok {
		return 0, false
	}
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if n < -limit || n >= limit {
			return 0, false
		}
	}
	return n, true
}

// ToUnsigned narrows value to an unsigned integer of the given bit width.
func ToUnsigned(value any, bits int) (uint64, bool) {
	n, ok := ToUint64(value)
	if !ok {
		return 0, false
	}
	if bits < 64 && n >= uint64(1)<<bits {
		return 0, false
	}
	return n, true
}

// ToFloat64 accepts any integer or float.
func ToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	if n, ok := ToInt64(value); ok {
		return float64(n), true
	}
	if n, ok := ToUint64(value); ok {
		return float64(n), true
	}
	return 0, false
}

// ToFloat32 accepts any integer or float within float32 range.
func ToFloat32(value any) (float32, bool) {
	if v, ok := value.(float32); ok {
		return v, true
	}
	f, ok := ToFloat64(value)
	if !ok {
		return 0, false
	}
	if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
		return 0, false
	}
	return float32(f), true
}

// ToComplex128 accepts complex values and anything ToFloat64 accepts.
func ToComplex128(value any) (complex128, bool) {
	switch v := value.(type) {
	case complex128:
		return v, true
	case complex64:
		return complex128(v), true
	}
	f, ok := ToFloat64(value)
	if !ok {
		return 0, false
	}
	return complex(f, 0), true
}

// ToBool accepts only booleans.
func ToBool(value any) (bool, bool) {
	b, ok := value.(bool)
	return b, ok
}
