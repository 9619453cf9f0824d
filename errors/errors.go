package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the boundary crossing the error occurred
type Phase string

const (
	PhaseConvert      Phase = "convert"      // dynamic value to native argument
	PhaseHandle       Phase = "handle"       // handle negotiation
	PhaseBuffer       Phase = "buffer"       // buffer view construction
	PhaseEncode       Phase = "encode"       // native value to transport form
	PhaseDecode       Phase = "decode"       // transport form to native value
	PhaseRaise        Phase = "raise"        // status to exception
	PhaseConfig       Phase = "config"       // configuration loading
	PhaseRegistration Phase = "registration" // registry construction
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch      Kind = "type_mismatch"
	KindMissingCapability Kind = "missing_capability"
	KindContractViolation Kind = "contract_violation"
	KindInvalidData       Kind = "invalid_data"
	KindInvalidEnum       Kind = "invalid_enum"
	KindUnsupported       Kind = "unsupported"
	KindOverflow          Kind = "overflow"
	KindNotFound          Kind = "not_found"
	KindRegistration      Kind = "registration"
	KindInvalidInput      Kind = "invalid_input"
)

// Error is the structured error type used for boundary conversion failures.
// Detail always carries the literal diagnostic text.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Target string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Target != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Target != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", target ")
			b.WriteString(e.Target)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("target ")
			b.WriteString(e.Target)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Target != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Message returns the literal diagnostic without phase or kind decoration.
func (e *Error) Message() string {
	return e.Detail
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a phase matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Kind-only sentinels for errors.Is.
var (
	ErrTypeMismatch      = &Error{Kind: KindTypeMismatch}
	ErrMissingCapability = &Error{Kind: KindMissingCapability}
	ErrContractViolation = &Error{Kind: KindContractViolation}
	ErrInvalidData       = &Error{Kind: KindInvalidData}
	ErrNotFound          = &Error{Kind: KindNotFound}
)

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the location path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Target sets the expected native type or tag
func (b *Builder) Target(t string) *Builder {
	b.err.Target = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error carrying a literal diagnostic
func TypeMismatch(phase Phase, goType, target, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		GoType: goType,
		Target: target,
		Detail: detail,
	}
}

// MissingCapability reports a value that lacks a required method
func MissingCapability(phase Phase, goType, capability string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMissingCapability,
		GoType: goType,
		Detail: fmt.Sprintf("%s object has no attribute %q", goType, capability),
	}
}

// ContractViolation creates the error used as a panic value for broken preconditions
func ContractViolation(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindContractViolation,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidEnum creates an invalid enum value error
func InvalidEnum(phase Phase, value any, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEnum,
		Detail: detail,
		Value:  value,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Target: targetType,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Registration creates a registration error
func Registration(what, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseRegistration,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s %q", what, name),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// At returns a copy of e with path prepended, used when a nested
// conversion fails and the caller knows the enclosing location.
func At(e *Error, path ...string) *Error {
	c := *e
	c.Path = append(append([]string(nil), path...), e.Path...)
	return &c
}
