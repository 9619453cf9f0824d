// Package wasmmem exports windows of WebAssembly linear memory as buffers,
// so guest-owned arrays can back zero-copy views.
package wasmmem

import (
	"fmt"

	"github.com/wippyai/status-bridge/buffer"
	"github.com/wippyai/status-bridge/errors"
)

// Memory is the subset of wazero's api.Memory a Region needs.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Size() uint32
}

// Region is a 1-D window of typed elements in linear memory.
type Region struct {
	mem      Memory
	offset   uint32
	count    uint32
	kind     buffer.ElemKind
	readOnly bool
}

// Option configures a Region.
type Option func(*Region)

// ReadOnly marks the region as not writable.
func ReadOnly() Option {
	return func(r *Region) {
		r.readOnly = true
	}
}

// NewRegion describes count elements of kind starting at offset.
func NewRegion(mem Memory, offset, count uint32, kind buffer.ElemKind, opts ...Option) (*Region, error) {
	if !kind.IsNumeric() {
		return nil, errors.Unsupported(errors.PhaseBuffer,
			fmt.Sprintf("linear memory cannot hold %s elements", kind))
	}
	r := &Region{mem: mem, offset: offset, count: count, kind: kind}
	for _, opt := range opts {
		opt(r)
	}
	end := uint64(offset) + uint64(count)*uint64(kind.Size())
	if end > uint64(mem.Size()) {
		return nil, errors.InvalidInput(errors.PhaseBuffer,
			fmt.Sprintf("region [%d, %d) exceeds memory size %d", offset, end, mem.Size()))
	}
	return r, nil
}

// Len returns the number of elements.
func (r *Region) Len() int { return int(r.count) }

// Kind returns the element kind.
func (r *Region) Kind() buffer.ElemKind { return r.kind }

// ClassName names the region class in diagnostics.
func (r *Region) ClassName() string { return "Region" }

// Buffer exposes the window. Data aliases guest memory, so writes are seen
// by the guest and stay valid only until the memory grows.
func (r *Region) Buffer(writable bool) (buffer.Info, error) {
	if writable && r.readOnly {
		return buffer.Info{}, errors.Unsupported(errors.PhaseBuffer, "buffer is read-only")
	}
	data, ok := r.mem.Read(r.offset, r.byteLen())
	if !ok {
		return buffer.Info{}, errors.InvalidInput(errors.PhaseBuffer,
			fmt.Sprintf("region at %d is out of range", r.offset))
	}
	return buffer.Info{
		Data:     data,
		Shape:    []int{int(r.count)},
		Strides:  []int{r.kind.Size()},
		Kind:     r.kind,
		ReadOnly: r.readOnly,
	}, nil
}

// byteLen fits in uint32 once NewRegion has checked the window against
// the memory size.
func (r *Region) byteLen() uint32 {
	return r.count * uint32(r.kind.Size())
}
