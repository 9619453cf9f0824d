package bridge

import (
	"fmt"

	grpcstatus "google.golang.org/grpc/status"

	"github.com/wippyai/status-bridge/dyn"
	"github.com/wippyai/status-bridge/errors"
	"github.com/wippyai/status-bridge/status"
)

// OkReporter is the "is this ok" capability required by Wrap.
type OkReporter interface {
	OK() bool
}

// StatusCarrier is an OkReporter that can hand over its status.
type StatusCarrier interface {
	OkReporter
	Status() status.Status
}

// StatusNotOk is the raised form of a non-ok status. Code, RawCode and
// Message are copies of the wrapped status fields.
type StatusNotOk struct {
	Code    status.Code
	RawCode int
	Message string

	st status.Status
}

func newStatusNotOk(st status.Status) *StatusNotOk {
	return &StatusNotOk{
		Code:    st.Code(),
		RawCode: st.RawCode(),
		Message: st.Message(),
		st:      st,
	}
}

// Status returns the wrapped status. A StatusNotOk built by hand carries
// no status; one is rebuilt from RawCode, Code and Message, and never OK.
func (e *StatusNotOk) Status() status.Status {
	if !e.st.OK() {
		return e.st
	}
	raw := e.RawCode
	if raw == 0 {
		raw = int(e.Code)
	}
	if raw == 0 {
		raw = int(status.Unknown)
	}
	return status.FromRawInt(raw, e.Message)
}

// OK is always false; a StatusNotOk only ever wraps a failure.
func (e *StatusNotOk) OK() bool {
	return false
}

func (e *StatusNotOk) Error() string {
	return e.Status().NotOkString()
}

// ExceptionKind names the exception kind on the dynamic side.
func (e *StatusNotOk) ExceptionKind() string {
	return "StatusNotOk"
}

// ClassName implements dyn.ClassNamer.
func (e *StatusNotOk) ClassName() string {
	return "StatusNotOk"
}

// Equal reports whether other is a StatusNotOk wrapping an equal status.
func (e *StatusNotOk) Equal(other error) bool {
	o, ok := other.(*StatusNotOk)
	if !ok || o == nil {
		return false
	}
	return e.Status().Equal(o.Status())
}

// Is matches any StatusNotOk with the same canonical code, so
// errors.Is(err, &StatusNotOk{Code: status.NotFound}) works as a filter.
func (e *StatusNotOk) Is(target error) bool {
	t, ok := target.(*StatusNotOk)
	if !ok || t == nil {
		return false
	}
	return e.Code == t.Code
}

// GRPCStatus lets grpc's status.FromError recognise the exception.
func (e *StatusNotOk) GRPCStatus() *grpcstatus.Status {
	return e.Status().ToGRPC()
}

// Wrap builds the exception for a non-ok status. v must report OK();
// wrapping an ok status panics with a contract violation.
func Wrap(v any) (*StatusNotOk, error) {
	if p, ok := v.(*status.Status); ok {
		if p == nil {
			return nil, errors.InvalidInput(errors.PhaseRaise, "cannot wrap a nil status")
		}
		v = *p
	}

	r, ok := v.(OkReporter)
	if !ok {
		return nil, errors.MissingCapability(errors.PhaseRaise, dyn.ClassName(v), "OK")
	}
	if r.OK() {
		panic(errors.ContractViolation(errors.PhaseRaise, "cannot wrap an ok status in StatusNotOk"))
	}

	switch s := v.(type) {
	case status.Status:
		return newStatusNotOk(s), nil
	case StatusCarrier:
		st := s.Status()
		if st.OK() {
			cls := dyn.ClassName(v)
			return nil, errors.TypeMismatch(errors.PhaseRaise, cls, "status.Status",
				fmt.Sprintf("%s object reports a failure but carries an ok status", cls))
		}
		return newStatusNotOk(st), nil
	}

	cls := dyn.ClassName(v)
	return nil, errors.TypeMismatch(errors.PhaseRaise, cls, "status.Status",
		fmt.Sprintf("%s object reports a failure but carries no status", cls))
}

// BuildFromParts builds the exception from a code and message. code must
// already be a status.Code; raw integers are rejected.
func BuildFromParts(code any, msg string) (*StatusNotOk, error) {
	c, ok := code.(status.Code)
	if !ok {
		cls := dyn.ClassName(code)
		return nil, errors.TypeMismatch(errors.PhaseRaise, cls, "status.Code",
			fmt.Sprintf("incompatible argument type: %s is not a status.Code", cls))
	}
	return Wrap(status.New(c, msg))
}
