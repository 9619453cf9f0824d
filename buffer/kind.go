package buffer

// ElemKind identifies the element type of a buffer.
type ElemKind uint8

const (
	Bool ElemKind = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	Complex64
	Complex128
	Object
	Text
)

var kindNames = [...]string{
	Bool:       "bool",
	Int8:       "int8",
	Uint8:      "uint8",
	Int16:      "int16",
	Uint16:     "uint16",
	Int32:      "int32",
	Uint32:     "uint32",
	Int64:      "int64",
	Uint64:     "uint64",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex64",
	Complex128: "complex128",
	Object:     "object",
	Text:       "text",
}

var kindSizes = [...]int{
	Bool:       1,
	Int8:       1,
	Uint8:      1,
	Int16:      2,
	Uint16:     2,
	Int32:      4,
	Uint32:     4,
	Int64:      8,
	Uint64:     8,
	Float32:    4,
	Float64:    8,
	Complex64:  8,
	Complex128: 16,
	Object:     1,
	Text:       4,
}

func (k ElemKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Size returns the element size in bytes. Object buffers count in
// elements, so their size is 1.
func (k ElemKind) Size() int {
	if int(k) < len(kindSizes) {
		return kindSizes[k]
	}
	return 0
}

// IsNumeric reports whether k can back a scalar view.
func (k ElemKind) IsNumeric() bool {
	return k <= Complex128
}

func (k ElemKind) isSigned() bool {
	return k == Int8 || k == Int16 || k == Int32 || k == Int64
}

func (k ElemKind) isUnsigned() bool {
	return k == Uint8 || k == Uint16 || k == Uint32 || k == Uint64
}

func (k ElemKind) isFloat() bool {
	return k == Float32 || k == Float64
}

func (k ElemKind) isComplex() bool {
	return k == Complex64 || k == Complex128
}

// CanPromote reports whether every value of kind from is exactly
// representable in kind to.
func CanPromote(from, to ElemKind) bool {
	if from == to {
		return from.IsNumeric()
	}
	if !from.IsNumeric() || !to.IsNumeric() || from == Bool || to == Bool {
		return false
	}
	fs, ts := from.Size(), to.Size()
	switch {
	case from.isSigned():
		switch {
		case to.isSigned():
			return ts > fs
		case to.isFloat():
			return ts > fs
		case to.isComplex():
			return ts/2 > fs
		}
	case from.isUnsigned():
		switch {
		case to.isSigned(), to.isFloat():
			return ts > fs
		case to.isUnsigned():
			return ts > fs
		case to.isComplex():
			return ts/2 > fs
		}
	case from.isFloat():
		switch {
		case to.isFloat():
			return ts > fs
		case to.isComplex():
			return ts/2 >= fs
		}
	case from.isComplex():
		return to.isComplex() && ts > fs
	}
	return false
}

// Scalar lists the Go types a numeric view may hold.
type Scalar interface {
	bool | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 |
		float32 | float64 | complex64 | complex128
}

// KindOf returns the element kind matching T.
func KindOf[T Scalar]() ElemKind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case uint8:
		return Uint8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case int32:
		return Int32
	case uint32:
		return Uint32
	case int64:
		return Int64
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	default:
		return Complex128
	}
}
