// Package buffer converts arguments into borrowed views of contiguous,
// correctly typed elements.
//
// Views are scoped to a callback. Inside it they alias the caller's
// storage (zero-copy) or, for const views in Convert mode, a pooled
// temporary that is released when the callback returns:
//
//	arr := buffer.Zeros(buffer.Int32, 5)
//	err := buffer.Fill[int32](42, arr) // arr now holds five 42s
//
//	err = buffer.Const[int32]([]any{1, 2, 3}, buffer.Convert, func(v *buffer.View[int32]) error {
//		for _, x := range v.All() { ... }
//		return nil
//	})
//
// Zero-copy requires one dimension, a stride equal to the element size,
// an exact element kind and, for Mutable, writable storage. Const in
// Convert mode also accepts promotable kinds, strided 1-D buffers and plain
// sequences by copying. Mutable never copies. Every rejection is an
// *errors.Error of kind type_mismatch naming the violated constraint.
//
// Object views (Objects, MutableObjects, ObjectPointers) carry arbitrary Go
// values. An ObjectVector is borrowed without per-element conversion.
package buffer
