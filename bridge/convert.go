package bridge

import (
	"context"
	stderrors "errors"

	grpcstatus "google.golang.org/grpc/status"

	"github.com/wippyai/status-bridge/dyn"
	"github.com/wippyai/status-bridge/errors"
	"github.com/wippyai/status-bridge/status"
)

// exceptionCodes maps host exception kinds onto canonical codes.
var exceptionCodes = map[string]status.Code{
	"MemoryError":         status.ResourceExhausted,
	"NotImplementedError": status.Unimplemented,
	"KeyboardInterrupt":   status.Aborted,
	"SystemError":         status.Internal,
	"SyntaxError":         status.Internal,
	"TypeError":           status.InvalidArgument,
	"ValueError":          status.OutOfRange,
	"LookupError":         status.NotFound,
	"KeyError":            status.NotFound,
	"IndexError":          status.NotFound,
}

var errorKindCodes = map[errors.Kind]status.Code{
	errors.KindTypeMismatch:      status.InvalidArgument,
	errors.KindMissingCapability: status.InvalidArgument,
	errors.KindInvalidData:       status.InvalidArgument,
	errors.KindInvalidEnum:       status.InvalidArgument,
	errors.KindInvalidInput:      status.InvalidArgument,
	errors.KindOverflow:          status.OutOfRange,
	errors.KindNotFound:          status.NotFound,
	errors.KindUnsupported:       status.Unimplemented,
	errors.KindContractViolation: status.Internal,
	errors.KindRegistration:      status.FailedPrecondition,
}

type grpcError interface {
	GRPCStatus() *grpcstatus.Status
}

// StatusFromError maps err back onto a status. nil maps to OK; anything
// unrecognised becomes UNKNOWN with "<Kind>: <message>".
func StatusFromError(err error) status.Status {
	if err == nil {
		return status.OkStatus()
	}

	var carrier StatusCarrier
	if stderrors.As(err, &carrier) {
		if st := carrier.Status(); !st.OK() {
			return st
		}
	}
	var ge grpcError
	if stderrors.As(err, &ge) {
		return status.FromGRPC(ge.GRPCStatus())
	}
	switch {
	case stderrors.Is(err, context.Canceled):
		return status.CancelledError(err.Error())
	case stderrors.Is(err, context.DeadlineExceeded):
		return status.DeadlineExceededError(err.Error())
	}

	var be *errors.Error
	if stderrors.As(err, &be) {
		if code, ok := errorKindCodes[be.Kind]; ok {
			return status.New(code, be.Error())
		}
		return status.UnknownError(be.Error())
	}

	kind := dyn.ExceptionKind(err)
	msg := dyn.ExceptionMessage(err)
	if code, ok := exceptionCodes[kind]; ok {
		return status.New(code, msg)
	}
	return status.UnknownError(kind + ": " + msg)
}
