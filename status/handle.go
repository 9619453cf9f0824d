package status

import (
	"github.com/wippyai/status-bridge/handle"
)

// HandleTag identifies a Status carried as a handle between modules.
const HandleTag = "::status::Status"

// AsHandle exposes s as a tagged handle so independently built modules can
// accept it without sharing this package's types.
func (s Status) AsHandle() (any, error) {
	return handle.New(HandleTag, s), nil
}

// HandleType registers Status under HandleTag.
func HandleType() handle.RegistryOption {
	return handle.WithType[Status](HandleTag)
}
