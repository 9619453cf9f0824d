package buffer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/status-bridge/dyn"
	"github.com/wippyai/status-bridge/errors"
)

// Mode selects whether a const view may fall back to a converted copy.
type Mode uint8

const (
	// Convert allows a temporary copy when the source cannot be borrowed.
	Convert Mode = iota
	// NoConvert accepts only exact-kind contiguous storage.
	NoConvert
)

func (m Mode) String() string {
	if m == NoConvert {
		return "noconvert"
	}
	return "convert"
}

// Const hands fn a read-only view of src's elements as T.
//
// Contiguous 1-D storage of kind T is borrowed without copying. In Convert
// mode, 1-D buffers of a promotable kind and plain sequences of convertible
// values are copied into a pooled temporary that lives until fn returns.
func Const[T Scalar](src any, mode Mode, fn func(*View[T]) error) error {
	want := KindOf[T]()

	switch s := src.(type) {
	case []T:
		return run(newView(s, want, false, true), fn)
	case *ObjectVector[T]:
		return run(newView(s.items, want, false, true), fn)
	}

	info, ok, err := exportInfo(src, false, want)
	if err != nil {
		return err
	}
	if ok {
		if err := checkScalarInfo(src, want, info); err != nil {
			return err
		}
		if info.Kind == want && info.Strides[0] == want.Size() {
			if data, ok := borrow[T](info); ok {
				return run(newView(data, want, false, true), fn)
			}
		}
		if mode == NoConvert {
			return noConvertError(src, want, info)
		}
		if info.Kind != want && info.Kind != Object && !CanPromote(info.Kind, want) {
			return mismatch(src, want, fmt.Sprintf("cannot convert element kind %s to %s", info.Kind, want))
		}
		tmp, sc := scratchFor[T](info.Len())
		defer sc.release()
		if _, err := copyScalars(src, info, tmp); err != nil {
			return err
		}
		Logger().Debug("buffer copied for const view",
			zap.String("from", info.Kind.String()),
			zap.String("to", want.String()),
			zap.Int("len", len(tmp)))
		return run(newView(tmp, want, false, false), fn)
	}

	if seq, ok := dyn.AsSequence(src); ok {
		if mode == NoConvert {
			return mismatch(src, want, "plain sequence requires conversion")
		}
		tmp, sc := scratchFor[T](len(seq))
		defer sc.release()
		for i, e := range seq {
			v, ok := convertElem[T](e)
			if !ok {
				return elemError(src, want, i, e)
			}
			tmp[i] = v
		}
		return run(newView(tmp, want, false, false), fn)
	}

	return notBufferError(src, want)
}

// Mutable hands fn a writable view aliasing src's storage. Only writable,
// contiguous 1-D storage of kind T is accepted; writes through the view are
// visible to the caller afterwards.
func Mutable[T Scalar](src any, fn func(*View[T]) error) error {
	want := KindOf[T]()

	switch s := src.(type) {
	case []T:
		return run(newView(s, want, true, true), fn)
	case *ObjectVector[T]:
		return run(newView(s.items, want, true, true), fn)
	}

	info, ok, err := exportInfo(src, true, want)
	if err != nil {
		return err
	}
	if ok {
		if err := checkScalarInfo(src, want, info); err != nil {
			return err
		}
		if info.ReadOnly {
			return mismatch(src, want, "buffer is read-only")
		}
		if info.Kind != want {
			return mismatch(src, want, fmt.Sprintf("expected element kind %s, got %s", want, info.Kind))
		}
		if info.Strides[0] != want.Size() {
			return strideError(src, want, info)
		}
		data, ok := borrow[T](info)
		if !ok {
			return mismatch(src, want, fmt.Sprintf("buffer is not aligned for %s", want))
		}
		return run(newView(data, want, true, true), fn)
	}

	if _, ok := dyn.AsSequence(src); ok {
		return mismatch(src, want, "a plain sequence cannot back a mutable view")
	}
	return notBufferError(src, want)
}

// Fill writes value into every element of src in place.
func Fill[T Scalar](value T, src any) error {
	return Mutable(src, func(v *View[T]) error {
		v.Fill(value)
		return nil
	})
}

// exportInfo describes src's storage when src is an Exporter or a typed
// Go slice of any scalar kind.
func exportInfo(src any, writable bool, want ElemKind) (Info, bool, error) {
	if e, ok := src.(Exporter); ok {
		info, err := e.Buffer(writable)
		if err != nil {
			return Info{}, true, exportError(src, want, err)
		}
		return info, true, nil
	}
	info, ok := sliceInfo(src)
	return info, ok, nil
}

func checkScalarInfo(src any, want ElemKind, info Info) error {
	if !info.Kind.IsNumeric() && info.Kind != Object {
		return mismatch(src, want, fmt.Sprintf("unsupported element kind %s", info.Kind))
	}
	if len(info.Shape) != 1 || len(info.Strides) != 1 {
		return mismatch(src, want, fmt.Sprintf("expected a 1-D buffer, got ndim=%d", len(info.Shape)))
	}
	return nil
}

// copyScalars converts every element of a 1-D buffer into dst.
func copyScalars[T Scalar](src any, info Info, dst []T) ([]T, error) {
	want := KindOf[T]()
	if len(info.Shape) != 1 {
		return nil, mismatch(src, want, fmt.Sprintf("expected a 1-D buffer, got ndim=%d", len(info.Shape)))
	}
	for i := range dst {
		e := loadElem(info, i)
		v, ok := convertElem[T](e)
		if !ok {
			return nil, elemError(src, want, i, e)
		}
		dst[i] = v
	}
	return dst, nil
}

func noConvertError(src any, want ElemKind, info Info) error {
	if info.Kind != want {
		return mismatch(src, want, fmt.Sprintf("expected element kind %s, got %s", want, info.Kind))
	}
	if info.Strides[0] != want.Size() {
		return strideError(src, want, info)
	}
	return mismatch(src, want, fmt.Sprintf("buffer is not aligned for %s", want))
}

func strideError(src any, want ElemKind, info Info) error {
	return mismatch(src, want, fmt.Sprintf("expected a contiguous buffer, got stride=%d for element size %d",
		info.Strides[0], want.Size()))
}

func exportError(src any, want ElemKind, err error) error {
	detail := err.Error()
	if e, ok := err.(*errors.Error); ok {
		detail = e.Message()
	}
	return errors.New(errors.PhaseBuffer, errors.KindTypeMismatch).
		GoType(dyn.ClassName(src)).
		Target(viewName(want)).
		Cause(err).
		Detail("%s", detail).
		Build()
}

func notBufferError(src any, want ElemKind) error {
	cls := dyn.ClassName(src)
	return mismatch(src, want, cls+" object is not a buffer or sequence")
}

func elemError(src any, want ElemKind, i int, e any) error {
	return errors.New(errors.PhaseBuffer, errors.KindTypeMismatch).
		Path(fmt.Sprintf("[%d]", i)).
		GoType(dyn.ClassName(src)).
		Target(viewName(want)).
		Value(e).
		Detail("element %d (%s) cannot be converted to %s", i, dyn.ClassName(e), want).
		Build()
}

func mismatch(src any, want ElemKind, detail string) error {
	return errors.TypeMismatch(errors.PhaseBuffer, dyn.ClassName(src), viewName(want), detail)
}

func viewName(k ElemKind) string {
	return "View[" + k.String() + "]"
}
