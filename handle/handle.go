package handle

import (
	"strconv"

	"github.com/wippyai/status-bridge/errors"
)

// Handle is an unforgeable, non-owning reference to a natively owned value,
// optionally tagged with the name of the native type it refers to.
//
// The zero Handle refers to nothing. A Handle exported from a Table stops
// resolving once the table drops the slot or closes.
type Handle struct {
	ref    *ref
	tag    string
	tagged bool
}

type ref struct {
	value any
	table *Table
	slot  uint32
	gen   uint32
}

// New creates a free-standing handle tagged with tag.
func New(tag string, native any) Handle {
	return Handle{ref: &ref{value: native}, tag: tag, tagged: true}
}

// NewUntagged creates a free-standing handle without a tag.
func NewUntagged(native any) Handle {
	return Handle{ref: &ref{value: native}}
}

// Tag returns the handle's tag and whether it has one.
func (h Handle) Tag() (string, bool) {
	return h.tag, h.tagged
}

// Native resolves the handle to the value it refers to.
func (h Handle) Native() (any, error) {
	if h.ref == nil {
		return nil, errors.InvalidInput(errors.PhaseHandle, "null handle")
	}
	if h.ref.table == nil {
		return h.ref.value, nil
	}
	v, ok := h.ref.table.resolve(h.ref.slot, h.ref.gen)
	if !ok {
		return nil, errors.NotFound(errors.PhaseHandle, "handle", h.String())
	}
	return v, nil
}

// Valid reports whether Native would succeed.
func (h Handle) Valid() bool {
	_, err := h.Native()
	return err == nil
}

// ClassName names the handle class in diagnostics.
func (Handle) ClassName() string {
	return "handle"
}

func (h Handle) String() string {
	name := quoteTag(h.tag, h.tagged)
	if h.ref == nil {
		return "handle(" + name + ", nil)"
	}
	if h.ref.table == nil {
		return "handle(" + name + ")"
	}
	return "handle(" + name + ", " + h.ref.table.ID().String() + "#" + strconv.FormatUint(uint64(h.ref.slot), 10) + ")"
}

// quoteTag renders a tag for diagnostics: quoted when present, NULL otherwise.
func quoteTag(tag string, tagged bool) string {
	if !tagged {
		return "NULL"
	}
	return strconv.Quote(tag)
}
