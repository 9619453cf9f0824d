package handle

import (
	"reflect"
	"strconv"

	"github.com/wippyai/status-bridge/dyn"
	"github.com/wippyai/status-bridge/errors"
)

// Cloner is implemented by native values that know how to copy themselves.
type Cloner[T any] interface {
	Clone() T
}

// Get converts obj and returns the native value it refers to, borrowed.
// The result must not outlive the call that produced obj.
func Get[T any](c *Converter, obj any, tag string) (T, error) {
	var zero T
	h, err := c.Convert(obj, tag)
	if err != nil {
		return zero, err
	}
	native, err := h.Native()
	if err != nil {
		return zero, err
	}
	switch v := native.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}
	return zero, nativeMismatch[T](obj, tag, native)
}

// Copy converts obj and returns an independent copy of the native value,
// safe to retain after the call.
func Copy[T any](c *Converter, obj any, tag string) (T, error) {
	var zero T
	h, err := c.Convert(obj, tag)
	if err != nil {
		return zero, err
	}
	native, err := h.Native()
	if err != nil {
		return zero, err
	}
	if cl, ok := native.(Cloner[T]); ok {
		return cl.Clone(), nil
	}
	switch v := native.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}
	return zero, nativeMismatch[T](obj, tag, native)
}

func nativeMismatch[T any](obj any, tag string, native any) *errors.Error {
	return errors.New(errors.PhaseHandle, errors.KindTypeMismatch).
		GoType(dyn.ClassName(obj)).
		Target(strconv.Quote(tag)).
		Detail("handle %s refers to %s, expected %s", strconv.Quote(tag), typeName(native), reflect.TypeFor[T]().String()).
		Build()
}
