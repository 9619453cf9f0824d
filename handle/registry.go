package handle

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/wippyai/status-bridge/errors"
)

// Validator checks that a resolved native value is acceptable for a tag.
type Validator func(native any) error

// Registry maps handle tags to validators. It is immutable once built
// and safe for concurrent lookups.
type Registry struct {
	validators map[string]Validator
	tags       []string
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	validators map[string]Validator
	errors     []error
}

// RegistryOption configures a Registry under construction.
type RegistryOption func(*registryBuilder)

// NewRegistry builds a Registry from opts. Registering a tag twice or an
// empty tag fails.
//
//	reg, err := handle.NewRegistry(
//	    handle.WithType[*Engine]("::engine::Engine"),
//	    handle.WithValidator("::blob::Blob", checkBlob),
//	)
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{validators: make(map[string]Validator)}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	tags := make([]string, 0, len(b.validators))
	for tag := range b.validators {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return &Registry{validators: b.validators, tags: tags}, nil
}

func (b *registryBuilder) add(tag string, v Validator) {
	if tag == "" {
		b.errors = append(b.errors, errors.Registration("handle tag", tag, fmt.Errorf("handle tag cannot be empty")))
		return
	}
	if _, exists := b.validators[tag]; exists {
		b.errors = append(b.errors, errors.Registration("handle tag", tag, fmt.Errorf("duplicate handle tag: %q", tag)))
		return
	}
	b.validators[tag] = v
}

// WithValidator registers tag with a custom validator. A nil validator
// accepts any native value.
func WithValidator(tag string, v Validator) RegistryOption {
	return func(b *registryBuilder) {
		if v == nil {
			v = func(any) error { return nil }
		}
		b.add(tag, v)
	}
}

// WithType registers tag for native values of type T (or *T).
func WithType[T any](tag string) RegistryOption {
	return WithValidator(tag, func(native any) error {
		if _, ok := native.(T); ok {
			return nil
		}
		if _, ok := native.(*T); ok {
			return nil
		}
		return fmt.Errorf("handle %q refers to %s, expected %s",
			tag, typeName(native), reflect.TypeFor[T]().String())
	})
}

// WithRegistry copies every tag from an existing registry.
func WithRegistry(r *Registry) RegistryOption {
	return func(b *registryBuilder) {
		for _, tag := range r.tags {
			b.add(tag, r.validators[tag])
		}
	}
}

// Has reports whether tag is registered.
func (r *Registry) Has(tag string) bool {
	_, ok := r.validators[tag]
	return ok
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	out := make([]string, len(r.tags))
	copy(out, r.tags)
	return out
}

// Validate runs the validator registered for tag.
func (r *Registry) Validate(tag string, native any) error {
	v, ok := r.validators[tag]
	if !ok {
		return errors.NotFound(errors.PhaseHandle, "handle tag", tag)
	}
	return v(native)
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
