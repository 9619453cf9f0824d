package bridge

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/status-bridge/errors"
	"github.com/wippyai/status-bridge/status"
)

// Policy decides how a non-ok status leaves a boundary operation.
type Policy uint8

const (
	// Raise turns a failure into a *StatusNotOk error and an ok status into nil.
	Raise Policy = iota
	// ReturnAsData hands the status back as a value, never as an error.
	ReturnAsData
)

var policyNames = map[Policy]string{
	Raise:        "raise",
	ReturnAsData: "return",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", uint8(p))
}

// ParsePolicy accepts the names used in configuration files.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "raise":
		return Raise, nil
	case "return", "return_as_data":
		return ReturnAsData, nil
	}
	return 0, errors.InvalidEnum(errors.PhaseConfig, name,
		fmt.Sprintf("unknown policy %q, expected raise or return", name))
}

// Return applies p to st.
func Return(p Policy, st status.Status) (any, error) {
	if p == ReturnAsData {
		return st, nil
	}
	if st.OK() {
		return nil, nil
	}
	Logger().Debug("raising status",
		zap.Stringer("code", st.Code()),
		zap.Int("raw_code", st.RawCode()))
	return nil, newStatusNotOk(st)
}

// ReturnResult applies p to r. A successful result always yields its value;
// a failure is raised or returned as its status.
func ReturnResult[T any](p Policy, r status.Result[T]) (any, error) {
	if r.IsOk() {
		return r.Value(), nil
	}
	return Return(p, r.Status())
}

// IsOk is false only for a value that reports a failure. Values without
// the OK capability count as ok.
func IsOk(v any) bool {
	if p, ok := v.(*status.Status); ok {
		return p == nil || p.OK()
	}
	if r, ok := v.(OkReporter); ok {
		return r.OK()
	}
	return true
}
