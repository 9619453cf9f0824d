package config

import (
	"github.com/invopop/jsonschema"
	jsoniter "github.com/json-iterator/go"

	"github.com/wippyai/status-bridge/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	r := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	s := r.Reflect(&Config{})
	s.Title = "status-bridge configuration"

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "marshal config schema")
	}
	return out, nil
}
