package bridge

import (
	stderrors "errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/wippyai/status-bridge/errors"
	"github.com/wippyai/status-bridge/status"
)

// Op is a boundary operation. A status.Status result, or a *StatusNotOk
// error, is subject to the operation's policy; other values pass through.
type Op func(args ...any) (any, error)

// StatusFunc is an operation that only reports success or failure.
type StatusFunc func(args ...any) status.Status

type operation struct {
	call   func(p Policy, args []any) (any, error)
	name   string
	policy Policy
	fixed  bool
}

// Module is an immutable, named table of boundary operations.
type Module struct {
	ops    map[string]*operation
	name   string
	names  []string
	policy Policy
}

type moduleBuilder struct {
	ops    map[string]*operation
	errors []error
	policy Policy
}

// ModuleOption configures a Module under construction.
type ModuleOption func(*moduleBuilder)

// NewModule builds a Module named name from opts.
//
//	mod, err := bridge.NewModule("files",
//	    bridge.WithDefaultPolicy(bridge.Raise),
//	    bridge.WithStatusOp("remove", removeFile),
//	    bridge.WithOp("stat", bridge.ReturnAsData, statFile),
//	)
func NewModule(name string, opts ...ModuleOption) (*Module, error) {
	b := &moduleBuilder{ops: make(map[string]*operation)}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.ops))
	for n := range b.ops {
		names = append(names, n)
	}
	sort.Strings(names)

	return &Module{ops: b.ops, name: name, names: names, policy: b.policy}, nil
}

func (b *moduleBuilder) add(o *operation) {
	if o.name == "" {
		b.errors = append(b.errors, errors.Registration("operation", o.name, fmt.Errorf("operation name cannot be empty")))
		return
	}
	if _, exists := b.ops[o.name]; exists {
		b.errors = append(b.errors, errors.Registration("operation", o.name, fmt.Errorf("duplicate operation: %q", o.name)))
		return
	}
	b.ops[o.name] = o
}

// WithDefaultPolicy sets the policy for operations registered without one.
func WithDefaultPolicy(p Policy) ModuleOption {
	return func(b *moduleBuilder) {
		b.policy = p
	}
}

// WithOp registers fn under name with a fixed policy.
func WithOp(name string, p Policy, fn Op) ModuleOption {
	return func(b *moduleBuilder) {
		if fn == nil {
			b.errors = append(b.errors, errors.Registration("operation", name, fmt.Errorf("nil operation")))
			return
		}
		b.add(&operation{
			name:   name,
			policy: p,
			fixed:  true,
			call: func(p Policy, args []any) (any, error) {
				v, err := fn(args...)
				return settle(p, v, err)
			},
		})
	}
}

// WithStatusOp registers fn under name using the module default policy.
func WithStatusOp(name string, fn StatusFunc) ModuleOption {
	return func(b *moduleBuilder) {
		if fn == nil {
			b.errors = append(b.errors, errors.Registration("operation", name, fmt.Errorf("nil operation")))
			return
		}
		b.add(&operation{
			name: name,
			call: func(p Policy, args []any) (any, error) {
				return Return(p, fn(args...))
			},
		})
	}
}

// WithResultOp registers fn under name using the module default policy.
func WithResultOp[T any](name string, fn func(args ...any) status.Result[T]) ModuleOption {
	return func(b *moduleBuilder) {
		if fn == nil {
			b.errors = append(b.errors, errors.Registration("operation", name, fmt.Errorf("nil operation")))
			return
		}
		b.add(&operation{
			name: name,
			call: func(p Policy, args []any) (any, error) {
				return ReturnResult(p, fn(args...))
			},
		})
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// Names returns the registered operation names in sorted order.
func (m *Module) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Policy returns the effective policy of the named operation.
func (m *Module) Policy(name string) (Policy, bool) {
	o, ok := m.ops[name]
	if !ok {
		return 0, false
	}
	return m.policyOf(o), true
}

// Invoke runs the named operation. A panic inside the operation becomes
// an INTERNAL status and is then handled by the operation's policy.
func (m *Module) Invoke(name string, args ...any) (any, error) {
	o, ok := m.ops[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseConvert, "operation", m.name+"."+name)
	}
	return m.run(o, m.policyOf(o), args)
}

func (m *Module) policyOf(o *operation) Policy {
	if o.fixed {
		return o.policy
	}
	return m.policy
}

func (m *Module) run(o *operation, p Policy, args []any) (ret any, err error) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Debug("operation panicked",
				zap.String("module", m.name),
				zap.String("op", o.name),
				zap.Any("panic", r))
			ret, err = Return(p, status.InternalError(fmt.Sprintf("%s.%s panicked: %v", m.name, o.name, r)))
		}
	}()
	return o.call(p, args)
}

func settle(p Policy, v any, err error) (any, error) {
	if err != nil {
		var exc *StatusNotOk
		if p == ReturnAsData && stderrors.As(err, &exc) {
			return exc.Status(), nil
		}
		return nil, err
	}
	if st, ok := v.(status.Status); ok {
		return Return(p, st)
	}
	return v, nil
}
