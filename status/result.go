package status

import (
	"github.com/wippyai/status-bridge/errors"
)

// Result holds either a value or a non-ok status.
type Result[T any] struct {
	value T
	st    Status
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err wraps a failure. It panics if st is OK.
func Err[T any](st Status) Result[T] {
	if st.OK() {
		panic(errors.ContractViolation(errors.PhaseConvert, "Result error arm must not hold an OK status"))
	}
	return Result[T]{st: st}
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.st.OK()
}

// Value returns the held value, or the zero value on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Status returns OK or the failure status.
func (r Result[T]) Status() Status {
	return r.st
}

// Unwrap returns the value, or the status as an error.
func (r Result[T]) Unwrap() (T, error) {
	if !r.st.OK() {
		var zero T
		return zero, statusError{r.st}
	}
	return r.value, nil
}

// statusError adapts a non-ok status to the error interface inside this
// package; the raised form used at the boundary lives in package bridge.
type statusError struct {
	st Status
}

func (e statusError) Error() string {
	return e.st.NotOkString()
}

// Status exposes the wrapped status.
func (e statusError) Status() Status {
	return e.st
}

// OK reports false; statusError only ever wraps failures.
func (e statusError) OK() bool {
	return false
}
