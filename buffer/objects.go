package buffer

import (
	"fmt"
	"reflect"

	"github.com/wippyai/status-bridge/dyn"
	"github.com/wippyai/status-bridge/errors"
)

// ObjectVector is an opaque native vector. Object views borrow its
// elements directly, skipping per-element conversion.
type ObjectVector[T any] struct {
	items []T
}

// NewObjectVector copies items into a new vector.
func NewObjectVector[T any](items ...T) *ObjectVector[T] {
	return &ObjectVector[T]{items: append([]T(nil), items...)}
}

// Len returns the number of elements.
func (v *ObjectVector[T]) Len() int { return len(v.items) }

// At returns element i.
func (v *ObjectVector[T]) At(i int) T { return v.items[i] }

// Append adds x to the end of the vector.
func (v *ObjectVector[T]) Append(x T) { v.items = append(v.items, x) }

// Items returns a copy of the elements.
func (v *ObjectVector[T]) Items() []T { return append([]T(nil), v.items...) }

// ClassName names the vector class in diagnostics.
func (v *ObjectVector[T]) ClassName() string { return "ObjectVector" }

// Objects hands fn a read-only view of src's elements as values of T.
//
// An ObjectVector, a []T or an object buffer holding exactly []any is
// borrowed. In Convert mode a plain sequence whose elements are T or *T is
// copied into a temporary.
func Objects[T any](src any, mode Mode, fn func(*View[T]) error) error {
	if data, ok, err := borrowObjects[T](src, false); err != nil || ok {
		if err != nil {
			return err
		}
		return run(newView(data, Object, false, true), fn)
	}

	seq, ok := objectSequence(src)
	if !ok {
		return objectMismatch[T](src, dyn.ClassName(src)+" object is not a buffer or sequence")
	}
	if mode == NoConvert {
		return objectMismatch[T](src, "plain sequence requires conversion")
	}
	tmp := make([]T, len(seq))
	defer clear(tmp)
	for i, e := range seq {
		switch v := e.(type) {
		case T:
			tmp[i] = v
		case *T:
			if v == nil {
				return objectElemError[T](src, i, e)
			}
			tmp[i] = *v
		default:
			return objectElemError[T](src, i, e)
		}
	}
	return run(newView(tmp, Object, false, false), fn)
}

// MutableObjects hands fn a writable view aliasing src's elements. Only
// an ObjectVector, a []T or a writable object buffer of []any qualifies.
func MutableObjects[T any](src any, fn func(*View[T]) error) error {
	data, ok, err := borrowObjects[T](src, true)
	if err != nil {
		return err
	}
	if !ok {
		if _, isSeq := objectSequence(src); isSeq {
			return objectMismatch[T](src, "a plain sequence cannot back a mutable view")
		}
		return objectMismatch[T](src, dyn.ClassName(src)+" object is not a buffer or sequence")
	}
	return run(newView(data, Object, true, true), fn)
}

// FillObjects writes value into every element of src in place.
func FillObjects[T any](value T, src any) error {
	return MutableObjects(src, func(v *View[T]) error {
		v.Fill(value)
		return nil
	})
}

// ObjectPointers hands fn pointers to src's elements. The pointer array is
// a temporary but every pointer refers to the caller's object, so writes
// through them are visible afterwards.
//
// ObjectVector and []T sources yield pointers into their storage; a []*T is
// borrowed as is. A plain sequence must hold *T elements and requires
// Convert mode.
func ObjectPointers[T any](src any, mode Mode, fn func(*View[*T]) error) error {
	switch s := src.(type) {
	case []*T:
		return run(newView(s, Object, false, true), fn)
	case *ObjectVector[T]:
		return runPointers(s.items, fn)
	case []T:
		return runPointers(s, fn)
	}

	seq, ok := objectSequence(src)
	if !ok {
		return objectMismatch[*T](src, dyn.ClassName(src)+" object is not a buffer or sequence")
	}
	if mode == NoConvert {
		return objectMismatch[*T](src, "plain sequence requires conversion")
	}
	ptrs := make([]*T, len(seq))
	defer clear(ptrs)
	for i, e := range seq {
		p, ok := e.(*T)
		if !ok || p == nil {
			return objectElemError[*T](src, i, e)
		}
		ptrs[i] = p
	}
	return run(newView(ptrs, Object, false, false), fn)
}

func runPointers[T any](items []T, fn func(*View[*T]) error) error {
	ptrs := make([]*T, len(items))
	defer clear(ptrs)
	for i := range items {
		ptrs[i] = &items[i]
	}
	return run(newView(ptrs, Object, false, false), fn)
}

// borrowObjects returns the storage of src when it can be aliased as []T.
func borrowObjects[T any](src any, writable bool) ([]T, bool, error) {
	switch s := src.(type) {
	case *ObjectVector[T]:
		return s.items, true, nil
	case []T:
		return s, true, nil
	case Exporter:
		info, err := s.Buffer(writable)
		if err != nil {
			return nil, false, exportObjectError[T](src, err)
		}
		if info.Kind != Object {
			return nil, false, objectMismatch[T](src, fmt.Sprintf("expected element kind object, got %s", info.Kind))
		}
		if len(info.Shape) != 1 || len(info.Strides) != 1 {
			return nil, false, objectMismatch[T](src, fmt.Sprintf("expected a 1-D buffer, got ndim=%d", len(info.Shape)))
		}
		if writable && info.ReadOnly {
			return nil, false, objectMismatch[T](src, "buffer is read-only")
		}
		if info.Strides[0] != 1 {
			return nil, false, objectMismatch[T](src, fmt.Sprintf("expected a contiguous buffer, got stride=%d for element size 1", info.Strides[0]))
		}
		window := info.Objects[info.Offset : info.Offset+info.Len()]
		if data, ok := any(window).([]T); ok {
			return data, true, nil
		}
		if writable {
			return nil, false, objectMismatch[T](src, "object buffer elements cannot be aliased as "+objectTypeName[T]())
		}
		return nil, false, nil
	}
	return nil, false, nil
}

// objectSequence returns the elements of a plain sequence or a read-only
// pass over an object buffer.
func objectSequence(src any) ([]any, bool) {
	if seq, ok := dyn.AsSequence(src); ok {
		return seq, true
	}
	if e, ok := src.(Exporter); ok {
		info, err := e.Buffer(false)
		if err != nil || info.Kind != Object || len(info.Shape) != 1 {
			return nil, false
		}
		out := make([]any, info.Len())
		for i := range out {
			out[i] = loadElem(info, i)
		}
		return out, true
	}
	return nil, false
}

func objectTypeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func objectMismatch[T any](src any, detail string) error {
	return errors.TypeMismatch(errors.PhaseBuffer, dyn.ClassName(src), "View["+objectTypeName[T]()+"]", detail)
}

func objectElemError[T any](src any, i int, e any) error {
	return errors.New(errors.PhaseBuffer, errors.KindTypeMismatch).
		Path(fmt.Sprintf("[%d]", i)).
		GoType(dyn.ClassName(src)).
		Target("View["+objectTypeName[T]()+"]").
		Value(e).
		Detail("element %d (%s) cannot be converted to %s", i, dyn.ClassName(e), objectTypeName[T]()).
		Build()
}

func exportObjectError[T any](src any, err error) error {
	detail := err.Error()
	if e, ok := err.(*errors.Error); ok {
		detail = e.Message()
	}
	return errors.New(errors.PhaseBuffer, errors.KindTypeMismatch).
		GoType(dyn.ClassName(src)).
		Target("View["+objectTypeName[T]()+"]").
		Cause(err).
		Detail("%s", detail).
		Build()
}
