// Package errors provides structured error types for boundary conversion failures.
//
// Errors are categorized by Phase (where the failure occurred) and Kind (error category).
// Detail always carries the literal diagnostic text produced by the failing
// conversion, so callers can match it exactly via Message().
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBuffer, errors.KindTypeMismatch).
//		GoType("*buffer.Array").
//		Target("int32").
//		Detail("expected a 1-D buffer, got ndim=2").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseHandle, "Foo", `"::status::Status"`, "Foo object is not a handle.")
//	err := errors.InvalidData(errors.PhaseDecode, []string{"state", "2", "0"}, "unexpected len(tuple) == 3")
//
// All errors implement the standard error interface and support errors.Is/As.
// Kind-only sentinels (ErrTypeMismatch, ErrMissingCapability, ...) match any
// phase.
package errors
