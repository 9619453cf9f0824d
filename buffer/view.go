package buffer

import (
	"iter"
	"unsafe"

	"github.com/wippyai/status-bridge/errors"
)

// View is a call-scoped, non-owning window over contiguous elements.
// It is valid only inside the callback that received it; afterwards it
// reports zero length.
type View[T any] struct {
	data     []T
	kind     ElemKind
	mutable  bool
	borrowed bool
}

func newView[T any](data []T, kind ElemKind, mutable, borrowed bool) *View[T] {
	return &View[T]{data: data, kind: kind, mutable: mutable, borrowed: borrowed}
}

// Len returns the number of elements.
func (v *View[T]) Len() int { return len(v.data) }

// At returns element i.
func (v *View[T]) At(i int) T { return v.data[i] }

// Kind returns the element kind.
func (v *View[T]) Kind() ElemKind { return v.kind }

// Stride returns the distance between elements in bytes.
func (v *View[T]) Stride() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Mutable reports whether writes reach the caller's storage.
func (v *View[T]) Mutable() bool { return v.mutable }

// Borrowed reports whether the view aliases the caller's storage rather
// than a temporary copy.
func (v *View[T]) Borrowed() bool { return v.borrowed }

// Set writes element i. It panics on a const view.
func (v *View[T]) Set(i int, x T) {
	v.mustMutable()
	v.data[i] = x
}

// Fill writes x into every element. It panics on a const view.
func (v *View[T]) Fill(x T) {
	v.mustMutable()
	for i := range v.data {
		v.data[i] = x
	}
}

// Slice exposes the elements. Mutable views return the backing storage;
// const views return a copy.
func (v *View[T]) Slice() []T {
	if v.mutable {
		return v.data
	}
	return v.Copy()
}

// Copy returns an owned copy of the elements, safe to retain.
func (v *View[T]) Copy() []T {
	out := make([]T, len(v.data))
	copy(out, v.data)
	return out
}

// All iterates over index and element pairs.
func (v *View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.data {
			if !yield(i, x) {
				return
			}
		}
	}
}

func (v *View[T]) mustMutable() {
	if !v.mutable {
		panic(errors.ContractViolation(errors.PhaseBuffer, "write through a const view"))
	}
}

func (v *View[T]) release() {
	v.data = nil
}

// run hands v to fn and invalidates it afterwards.
func run[T any](v *View[T], fn func(*View[T]) error) error {
	defer v.release()
	return fn(v)
}
