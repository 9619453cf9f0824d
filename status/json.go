package status

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/wippyai/status-bridge/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonPayload struct {
	TypeURL string `json:"type_url"`
	Value   []byte `json:"value"`
}

type jsonStatus struct {
	Code     string        `json:"code"`
	Message  string        `json:"message,omitempty"`
	Payloads []jsonPayload `json:"payloads,omitempty"`
	RawCode  int           `json:"raw_code"`
}

// MarshalJSON encodes s as {"code", "raw_code", "message", "payloads"}.
func (s Status) MarshalJSON() ([]byte, error) {
	js := jsonStatus{
		Code:    s.Code().String(),
		RawCode: s.RawCode(),
		Message: s.Message(),
	}
	for _, p := range s.AllPayloads() {
		js.Payloads = append(js.Payloads, jsonPayload{TypeURL: p.TypeURL, Value: p.Value})
	}
	return json.Marshal(js)
}

// UnmarshalJSON decodes the form written by MarshalJSON. raw_code wins
// over code when both are present.
func (s *Status) UnmarshalJSON(b []byte) error {
	var js jsonStatus
	if err := json.Unmarshal(b, &js); err != nil {
		return errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "unmarshal status json")
	}
	raw := js.RawCode
	if raw == 0 && js.Code != "" {
		code, err := ParseCode(js.Code)
		if err != nil {
			return err
		}
		raw = int(code)
	}
	st := FromRawInt(raw, js.Message)
	for _, p := range js.Payloads {
		st.SetPayload(p.TypeURL, p.Value)
	}
	*s = st
	return nil
}
