package handle

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/status-bridge/dyn"
	"github.com/wippyai/status-bridge/errors"
)

// Provider is implemented by values that can present themselves as a
// handle. AsHandle must not retain or transfer ownership of the native
// value.
type Provider interface {
	AsHandle() (any, error)
}

// Converter admits arbitrary values as handles of a registered tag.
type Converter struct {
	reg        *Registry
	directOnly bool
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// DirectOnly restricts conversion to values that already are handles;
// Provider methods are never called.
func DirectOnly() ConverterOption {
	return func(c *Converter) {
		c.directOnly = true
	}
}

// NewConverter creates a converter over reg.
func NewConverter(reg *Registry, opts ...ConverterOption) *Converter {
	c := &Converter{reg: reg}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DirectOnlyMode reports whether the converter runs in direct-only mode.
func (c *Converter) DirectOnlyMode() bool {
	return c.directOnly
}

// Convert admits obj as a handle tagged tag:
//  1. a Handle must carry tag;
//  2. otherwise a Provider is asked for one, and any failure of that call
//     is reported as a conversion failure;
//  3. the provided value must be a Handle carrying tag;
//  4. anything else is not a handle.
//
// In direct-only mode only step 1 runs.
func (c *Converter) Convert(obj any, tag string) (Handle, error) {
	return c.convert(obj, tag, c.directOnly)
}

// ConvertDirect is Convert in direct-only mode.
func (c *Converter) ConvertDirect(obj any, tag string) (Handle, error) {
	return c.convert(obj, tag, true)
}

func (c *Converter) convert(obj any, tag string, direct bool) (Handle, error) {
	if !c.reg.Has(tag) {
		return Handle{}, errors.NotFound(errors.PhaseHandle, "handle tag", tag)
	}

	if h, ok := asHandle(obj); ok {
		if !h.hasTag(tag) {
			return Handle{}, mismatch(obj, tag, fmt.Sprintf(
				"object is a handle with name %s but %s is expected",
				quoteTag(h.tag, h.tagged), strconv.Quote(tag)))
		}
		return c.admit(obj, h, tag)
	}

	cls := dyn.ClassName(obj)
	p, ok := obj.(Provider)
	if direct || !ok {
		return Handle{}, mismatch(obj, tag, cls+" object is not a handle.")
	}

	ret, err := dyn.Call(p.AsHandle)
	if err != nil {
		Logger().Debug("handle provider failed",
			zap.String("class", cls),
			zap.String("tag", tag),
			zap.Error(err))
		return Handle{}, mismatch(obj, tag, fmt.Sprintf(
			"%s.AsHandle() call failed: %s: %s",
			cls, dyn.ExceptionKind(err), dyn.ExceptionMessage(err)))
	}

	h, ok := asHandle(ret)
	if !ok {
		return Handle{}, mismatch(obj, tag, fmt.Sprintf(
			"%s.AsHandle() returned an object (%s) that is not a handle",
			cls, dyn.ClassName(ret)))
	}
	if !h.hasTag(tag) {
		return Handle{}, mismatch(obj, tag, fmt.Sprintf(
			"%s.AsHandle() returned a handle with name %s but %s is expected",
			cls, quoteTag(h.tag, h.tagged), strconv.Quote(tag)))
	}
	return c.admit(obj, h, tag)
}

// admit resolves h and runs the tag's validator.
func (c *Converter) admit(obj any, h Handle, tag string) (Handle, error) {
	native, err := h.Native()
	if err != nil {
		return Handle{}, err
	}
	if err := c.reg.Validate(tag, native); err != nil {
		return Handle{}, errors.New(errors.PhaseHandle, errors.KindTypeMismatch).
			GoType(dyn.ClassName(obj)).
			Target(strconv.Quote(tag)).
			Cause(err).
			Detail("%s", err.Error()).
			Build()
	}
	return h, nil
}

func (h Handle) hasTag(tag string) bool {
	return h.tagged && h.tag == tag
}

func asHandle(v any) (Handle, bool) {
	switch h := v.(type) {
	case Handle:
		return h, true
	case *Handle:
		if h != nil {
			return *h, true
		}
	}
	return Handle{}, false
}

func mismatch(obj any, tag, detail string) *errors.Error {
	return errors.TypeMismatch(errors.PhaseHandle, dyn.ClassName(obj), strconv.Quote(tag), detail)
}
