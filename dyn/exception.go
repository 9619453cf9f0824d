package dyn

import (
	"errors"
	"fmt"
)

// Exception is an error raised by code on the dynamic side of the boundary.
type Exception struct {
	Kind    string
	Message string
}

// Raise builds an Exception of the given kind.
func Raise(kind, format string, args ...any) *Exception {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Exception{Kind: kind, Message: msg}
}

func (e *Exception) Error() string {
	return e.Kind + ": " + e.Message
}

// ExceptionKinder lets an error name its own exception kind.
type ExceptionKinder interface {
	ExceptionKind() string
}

// ExceptionKind returns the kind name reported for err.
func ExceptionKind(err error) string {
	var exc *Exception
	if errors.As(err, &exc) {
		return exc.Kind
	}
	var k ExceptionKinder
	if errors.As(err, &k) {
		return k.ExceptionKind()
	}
	return ClassName(err)
}

// ExceptionMessage returns the message of err without the kind prefix.
func ExceptionMessage(err error) string {
	var exc *Exception
	if errors.As(err, &exc) {
		return exc.Message
	}
	return err.Error()
}

// Call invokes fn, converting a panic into an Exception of kind "panic".
func Call(fn func() (any, error)) (ret any, err error) {
	defer func() {
		if r := recover(); r != nil {
			ret = nil
			err = panicException(r)
		}
	}()
	return fn()
}

func panicException(v any) *Exception {
	switch p := v.(type) {
	case *Exception:
		return p
	case error:
		return &Exception{Kind: "panic", Message: p.Error()}
	case string:
		return &Exception{Kind: "panic", Message: p}
	default:
		return &Exception{Kind: "panic", Message: fmt.Sprint(p)}
	}
}
