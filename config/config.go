// Package config loads the TOML configuration of a bridge environment.
//
//	[bridge]
//	default_policy = "raise"    # raise | return
//	[handle]
//	direct_only = false
//	[buffer]
//	convert = true
//	memory_limit_pages = 0      # 64 KiB pages, 0 = engine default
//	[log]
//	level = "info"              # debug | info | warn | error
//	encoding = "console"        # console | json
package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/wippyai/status-bridge/bridge"
	"github.com/wippyai/status-bridge/buffer"
	"github.com/wippyai/status-bridge/errors"
)

// Config is the full configuration file.
type Config struct {
	Bridge BridgeConfig `toml:"bridge" json:"bridge"`
	Handle HandleConfig `toml:"handle" json:"handle"`
	Buffer BufferConfig `toml:"buffer" json:"buffer"`
	Log    LogConfig    `toml:"log" json:"log"`
}

// BridgeConfig controls how failures leave boundary operations.
type BridgeConfig struct {
	DefaultPolicy string `toml:"default_policy" json:"default_policy" validate:"required,oneof=raise return" jsonschema:"enum=raise,enum=return,default=raise"`
}

// HandleConfig controls handle negotiation.
type HandleConfig struct {
	// DirectOnly admits only ready-made handles and never calls AsHandle.
	DirectOnly bool `toml:"direct_only" json:"direct_only" jsonschema:"default=false"`
}

// BufferConfig controls buffer views.
type BufferConfig struct {
	// Convert enables the copy fallback for const views.
	Convert bool `toml:"convert" json:"convert" jsonschema:"default=true"`
	// MemoryLimitPages caps guest memories created by the environment.
	// 0 keeps the engine default of 65536 pages.
	MemoryLimitPages uint32 `toml:"memory_limit_pages" json:"memory_limit_pages" validate:"lte=65536" jsonschema:"maximum=65536,default=0"`
}

// LogConfig configures the zap logger shared by all packages.
type LogConfig struct {
	Level    string `toml:"level" json:"level" validate:"required,oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Encoding string `toml:"encoding" json:"encoding" validate:"required,oneof=console json" jsonschema:"enum=console,enum=json,default=console"`
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Bridge: BridgeConfig{DefaultPolicy: "raise"},
		Buffer: BufferConfig{Convert: true},
		Log:    LogConfig{Level: "info", Encoding: "console"},
	}
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err,
			fmt.Sprintf("load config %s", path))
	}
	return finish(cfg, meta)
}

// Parse decodes and validates TOML text.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse config")
	}
	return finish(cfg, meta)
}

func finish(cfg Config, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("unknown config keys: %s", strings.Join(keys, ", ")))
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if strings.TrimSpace(c.Bridge.DefaultPolicy) == "" {
		c.Bridge.DefaultPolicy = def.Bridge.DefaultPolicy
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = def.Log.Level
	}
	if strings.TrimSpace(c.Log.Encoding) == "" {
		c.Log.Encoding = def.Log.Encoding
	}
}

// Validate checks field constraints. The first violation is reported with
// its dotted key as the path.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !asValidationErrors(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "invalid config")
	}
	fe := verrs[0]
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
		Path(strings.Split(key, ".")...).
		Value(fe.Value()).
		Cause(err).
		Detail("%s: value %q violates %s", key, fmt.Sprint(fe.Value()), constraint(fe)).
		Build()
}

func asValidationErrors(err error, out *validator.ValidationErrors) bool {
	v, ok := err.(validator.ValidationErrors)
	if ok {
		*out = v
	}
	return ok
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// Policy returns the configured default policy.
func (c Config) Policy() bridge.Policy {
	p, err := bridge.ParsePolicy(c.Bridge.DefaultPolicy)
	if err != nil {
		return bridge.Raise
	}
	return p
}

// BufferMode returns the mode used for const views.
func (c Config) BufferMode() buffer.Mode {
	if c.Buffer.Convert {
		return buffer.Convert
	}
	return buffer.NoConvert
}
