package status

import (
	"fmt"
	"strconv"

	"github.com/wippyai/status-bridge/errors"
)

// Code is a canonical error category.
type Code int32

const (
	OK Code = iota
	Cancelled
	Unknown
	InvalidArgument
	DeadlineExceeded
	NotFound
	AlreadyExists
	PermissionDenied
	ResourceExhausted
	FailedPrecondition
	Aborted
	OutOfRange
	Unimplemented
	Internal
	Unavailable
	DataLoss
	Unauthenticated
)

var codeNames = [...]string{
	OK:                 "OK",
	Cancelled:          "CANCELLED",
	Unknown:            "UNKNOWN",
	InvalidArgument:    "INVALID_ARGUMENT",
	DeadlineExceeded:   "DEADLINE_EXCEEDED",
	NotFound:           "NOT_FOUND",
	AlreadyExists:      "ALREADY_EXISTS",
	PermissionDenied:   "PERMISSION_DENIED",
	ResourceExhausted:  "RESOURCE_EXHAUSTED",
	FailedPrecondition: "FAILED_PRECONDITION",
	Aborted:            "ABORTED",
	OutOfRange:         "OUT_OF_RANGE",
	Unimplemented:      "UNIMPLEMENTED",
	Internal:           "INTERNAL",
	Unavailable:        "UNAVAILABLE",
	DataLoss:           "DATA_LOSS",
	Unauthenticated:    "UNAUTHENTICATED",
}

var codesByName = func() map[string]Code {
	m := make(map[string]Code, len(codeNames))
	for i, n := range codeNames {
		m[n] = Code(i)
	}
	return m
}()

func (c Code) String() string {
	if c.Valid() {
		return codeNames[c]
	}
	return strconv.Itoa(int(c))
}

// Valid reports whether c is one of the canonical codes.
func (c Code) Valid() bool {
	return c >= 0 && int(c) < len(codeNames)
}

// Codes lists every canonical code in numeric order.
func Codes() []Code {
	out := make([]Code, len(codeNames))
	for i := range codeNames {
		out[i] = Code(i)
	}
	return out
}

// CodeFromInt maps n to a canonical code, failing when n is not in the table.
func CodeFromInt(n int) (Code, error) {
	if n < 0 || n >= len(codeNames) {
		return Unknown, errors.InvalidEnum(errors.PhaseConvert, n,
			fmt.Sprintf("code_int=%d is not a valid canonical code", n))
	}
	return Code(n), nil
}

// ParseCode maps a canonical name such as "NOT_FOUND" to its code.
func ParseCode(name string) (Code, error) {
	if c, ok := codesByName[name]; ok {
		return c, nil
	}
	return Unknown, errors.InvalidEnum(errors.PhaseConvert, name,
		fmt.Sprintf("%q is not a valid canonical code name", name))
}

// MarshalText encodes the canonical name.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts a canonical name or its integer value.
func (c *Code) UnmarshalText(b []byte) error {
	if n, err := strconv.Atoi(string(b)); err == nil {
		code, err := CodeFromInt(n)
		if err != nil {
			return err
		}
		*c = code
		return nil
	}
	code, err := ParseCode(string(b))
	if err != nil {
		return err
	}
	*c = code
	return nil
}
