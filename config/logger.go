package config

import (
	"go.uber.org/zap"

	"github.com/wippyai/status-bridge/errors"
)

// NewLogger builds the zap logger described by the [log] section.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log.level")
	}

	zc := zap.NewProductionConfig()
	if c.Log.Encoding == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.Encoding = c.Log.Encoding

	l, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "build logger")
	}
	return l, nil
}
