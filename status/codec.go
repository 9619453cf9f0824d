package status

import (
	"fmt"

	"github.com/wippyai/status-bridge/dyn"
	"github.com/wippyai/status-bridge/errors"
)

// Serialize reduces s to (rawCode, message, ((typeURL, value), ...)) with
// payloads in ascending type URL order.
func (s Status) Serialize() dyn.Tuple {
	payloads := dyn.Tuple{}
	for _, p := range s.AllPayloads() {
		payloads = append(payloads, dyn.Tuple{[]byte(p.TypeURL), p.Value})
	}
	return dyn.Tuple{s.RawCode(), s.MessageBytes(), payloads}
}

// Deserialize rebuilds a status from the form produced by Serialize.
func Deserialize(obj any) (Status, error) {
	state, ok := dyn.AsSequence(obj)
	if !ok {
		return Status{}, decodeError("state", "expected a tuple, got %s", dyn.ClassName(obj))
	}
	if len(state) != 3 {
		return Status{}, decodeError("state", "unexpected len(state) == %d, expected 3", len(state))
	}

	code, ok := asInt(state[0])
	if !ok {
		return Status{}, decodeError("state[0]", "expected an int code, got %s", dyn.ClassName(state[0]))
	}
	msg, ok := asBytes(state[1])
	if !ok {
		return Status{}, decodeError("state[1]", "expected bytes message, got %s", dyn.ClassName(state[1]))
	}
	entries, ok := dyn.AsSequence(state[2])
	if !ok {
		return Status{}, decodeError("state[2]", "expected a tuple of payloads, got %s", dyn.ClassName(state[2]))
	}

	st := FromRawInt(code, "")
	if !st.OK() {
		st.rep.msg = msg
	}
	for i, e := range entries {
		path := fmt.Sprintf("state[2][%d]", i)
		pair, ok := dyn.AsSequence(e)
		if !ok {
			return Status{}, decodeError(path, "expected a (type_url, payload) tuple, got %s", dyn.ClassName(e))
		}
		if len(pair) != 2 {
			return Status{}, decodeError(path, "unexpected len(tuple) == %d where (type_url, payload) is expected", len(pair))
		}
		url, ok := asBytes(pair[0])
		if !ok {
			return Status{}, decodeError(path+"[0]", "expected bytes type_url, got %s", dyn.ClassName(pair[0]))
		}
		value, ok := asBytes(pair[1])
		if !ok {
			return Status{}, decodeError(path+"[1]", "expected bytes payload, got %s", dyn.ClassName(pair[1]))
		}
		st.SetPayload(string(url), value)
	}
	return st, nil
}

func decodeError(path, format string, args ...any) *errors.Error {
	return errors.InvalidData(errors.PhaseDecode, []string{path}, fmt.Sprintf(format, args...))
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case Code:
		return int(n), true
	}
	return 0, false
}

func asBytes(v any) ([]byte, bool) {
	switch b := v.(type) {
	case []byte:
		return append([]byte{}, b...), true
	case string:
		return []byte(b), true
	}
	return nil, false
}
