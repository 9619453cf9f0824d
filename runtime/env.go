package runtime

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/status-bridge/bridge"
	"github.com/wippyai/status-bridge/buffer"
	"github.com/wippyai/status-bridge/config"
	"github.com/wippyai/status-bridge/dyn"
	"github.com/wippyai/status-bridge/errors"
	"github.com/wippyai/status-bridge/handle"
	"github.com/wippyai/status-bridge/status"
)

// Env owns the marshaling subsystem: the handle registry and converter,
// the table of boundary operations, the producer-side handle table and
// the engine that hosts guest memories. It is built once and read-only
// afterwards, apart from the handle table.
type Env struct {
	cfg      config.Config
	registry *handle.Registry
	conv     *handle.Converter
	module   *bridge.Module
	table    *handle.Table
	engine   wazero.Runtime
	logger   *zap.Logger
}

type options struct {
	logger *zap.Logger
	name   string
	types  []handle.RegistryOption
	ops    []bridge.ModuleOption
}

// Option configures an Env.
type Option func(*options)

// WithTypes registers handle tags in addition to status.HandleTag.
func WithTypes(opts ...handle.RegistryOption) Option {
	return func(o *options) {
		o.types = append(o.types, opts...)
	}
}

// WithOps registers boundary operations.
func WithOps(opts ...bridge.ModuleOption) Option {
	return func(o *options) {
		o.ops = append(o.ops, opts...)
	}
}

// WithLogger uses l instead of the logger described by the config.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithName names the operation module. The default is "env".
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// installLoggers guards the package loggers, which are process-wide.
var installLoggers sync.Once

// New builds an Env from cfg. The first Env's logger is installed into the
// bridge, handle and buffer packages; later environments keep their own
// logger for Env.Logger but leave the package loggers alone. New is safe
// for concurrent use.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{name: "env"}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		l, err := cfg.NewLogger()
		if err != nil {
			return nil, err
		}
		logger = l
	}
	installLoggers.Do(func() {
		bridge.SetLogger(logger)
		handle.SetLogger(logger)
		buffer.SetLogger(logger)
	})

	reg, err := handle.NewRegistry(append([]handle.RegistryOption{status.HandleType()}, o.types...)...)
	if err != nil {
		return nil, err
	}

	var convOpts []handle.ConverterOption
	if cfg.Handle.DirectOnly {
		convOpts = append(convOpts, handle.DirectOnly())
	}

	mod, err := bridge.NewModule(o.name,
		append([]bridge.ModuleOption{bridge.WithDefaultPolicy(cfg.Policy())}, o.ops...)...)
	if err != nil {
		return nil, err
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.Buffer.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.Buffer.MemoryLimitPages)
	}

	env := &Env{
		cfg:      cfg,
		registry: reg,
		conv:     handle.NewConverter(reg, convOpts...),
		module:   mod,
		table:    handle.NewTable(),
		engine:   wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		logger:   logger,
	}
	logger.Debug("environment ready",
		zap.String("module", o.name),
		zap.Strings("tags", reg.Tags()),
		zap.Strings("ops", mod.Names()),
		zap.Stringer("policy", cfg.Policy()),
		zap.Bool("direct_only", cfg.Handle.DirectOnly),
		zap.Stringer("table", env.table.ID()))
	return env, nil
}

// Config returns the configuration the Env was built from.
func (e *Env) Config() config.Config { return e.cfg }

// Registry returns the handle registry.
func (e *Env) Registry() *handle.Registry { return e.registry }

// Converter returns the handle converter.
func (e *Env) Converter() *handle.Converter { return e.conv }

// Module returns the boundary operation table.
func (e *Env) Module() *bridge.Module { return e.module }

// Table returns the producer-side handle table.
func (e *Env) Table() *handle.Table { return e.table }

// Logger returns the environment logger.
func (e *Env) Logger() *zap.Logger { return e.logger }

// Mode returns the buffer mode for const views.
func (e *Env) Mode() buffer.Mode { return e.cfg.BufferMode() }

// ConvertHandle admits obj as a handle tagged tag.
func (e *Env) ConvertHandle(obj any, tag string) (handle.Handle, error) {
	return e.conv.Convert(obj, tag)
}

// Export publishes v under tag through the environment table. v must be
// acceptable to the validator registered for tag.
func (e *Env) Export(tag string, v any) (handle.Handle, error) {
	if err := e.registry.Validate(tag, v); err != nil {
		var be *errors.Error
		if stderrors.As(err, &be) {
			return handle.Handle{}, be
		}
		return handle.Handle{}, errors.TypeMismatch(errors.PhaseHandle, dyn.ClassName(v), tag, err.Error())
	}
	h := e.table.Export(tag, v)
	if !h.Valid() {
		return handle.Handle{}, errors.InvalidInput(errors.PhaseHandle, "environment is closed")
	}
	return h, nil
}

// Invoke runs a boundary operation.
func (e *Env) Invoke(name string, args ...any) (any, error) {
	return e.module.Invoke(name, args...)
}

// Const builds a const view with the environment's buffer mode.
func Const[T buffer.Scalar](e *Env, src any, fn func(*buffer.View[T]) error) error {
	return buffer.Const(src, e.Mode(), fn)
}

// Objects builds an object view with the environment's buffer mode.
func Objects[T any](e *Env, src any, fn func(*buffer.View[T]) error) error {
	return buffer.Objects(src, e.Mode(), fn)
}

// Close invalidates every exported handle, releases guest memories and
// flushes the logger.
func (e *Env) Close(ctx context.Context) error {
	var errs []error
	if err := e.table.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := e.engine.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	_ = e.logger.Sync()
	return stderrors.Join(errs...)
}
