package handle

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventType identifies a table lifecycle event.
type EventType uint8

const (
	EventExported EventType = iota
	EventDropped
)

// Event is a table lifecycle notification.
type Event struct {
	Value any
	Tag   string
	Slot  uint32
	Type  EventType
}

// Observer receives table lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Dropper is optionally implemented by exported values that need cleanup
// when their slot is released.
type Dropper interface {
	Drop()
}

// Table is the producer side of handle exchange: it owns exported values
// and hands out handles that resolve only while the slot is live.
type Table struct {
	entries   []entry
	freeList  []uint32
	observers []Observer
	mu        sync.RWMutex
	id        uuid.UUID
	closed    bool
}

type entry struct {
	value any
	tag   string
	gen   uint32
	valid bool
}

// NewTable creates an empty table with a fresh identity.
func NewTable() *Table {
	return &Table{
		id:       uuid.New(),
		entries:  make([]entry, 0, 64),
		freeList: make([]uint32, 0, 16),
	}
}

// ID identifies the producing table in diagnostics and logs.
func (t *Table) ID() uuid.UUID {
	return t.id
}

// Export stores value and returns a handle tagged with tag.
// A closed table returns the zero Handle.
func (t *Table) Export(tag string, value any) Handle {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return Handle{}
	}

	var slot uint32
	if n := len(t.freeList); n > 0 {
		slot = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		e := &t.entries[slot-1]
		e.value, e.tag, e.valid = value, tag, true
	} else {
		t.entries = append(t.entries, entry{value: value, tag: tag, valid: true})
		slot = uint32(len(t.entries))
	}
	gen := t.entries[slot-1].gen
	t.mu.Unlock()

	Logger().Debug("handle exported",
		zap.Stringer("table", t.id),
		zap.String("tag", tag),
		zap.Uint32("slot", slot))
	t.notify(Event{Type: EventExported, Slot: slot, Tag: tag, Value: value})

	return Handle{
		ref:    &ref{table: t, slot: slot, gen: gen},
		tag:    tag,
		tagged: true,
	}
}

// Drop releases the slot behind h and reports whether it was live.
// Every handle to the slot stops resolving, including ones already
// passed to consumers.
func (t *Table) Drop(h Handle) bool {
	if h.ref == nil || h.ref.table != t {
		return false
	}

	t.mu.Lock()
	idx := int(h.ref.slot) - 1
	if t.closed || idx < 0 || idx >= len(t.entries) {
		t.mu.Unlock()
		return false
	}
	e := &t.entries[idx]
	if !e.valid || e.gen != h.ref.gen {
		t.mu.Unlock()
		return false
	}
	value, tag := e.value, e.tag
	e.value = nil
	e.valid = false
	e.gen++
	t.freeList = append(t.freeList, h.ref.slot)
	t.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{Type: EventDropped, Slot: h.ref.slot, Tag: tag, Value: value})
	return true
}

// Len returns the number of live slots.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, e := range t.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, o)
}

// Close drops every live slot and refuses further exports.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	entries := t.entries
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()

	for i := range entries {
		if entries[i].valid {
			if d, ok := entries[i].value.(Dropper); ok {
				d.Drop()
			}
		}
	}
	Logger().Debug("handle table closed", zap.Stringer("table", t.id))
	return nil
}

func (t *Table) resolve(slot, gen uint32) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := int(slot) - 1
	if t.closed || idx < 0 || idx >= len(t.entries) {
		return nil, false
	}
	e := t.entries[idx]
	if !e.valid || e.gen != gen {
		return nil, false
	}
	return e.value, true
}

func (t *Table) notify(e Event) {
	t.mu.RLock()
	observers := t.observers
	t.mu.RUnlock()
	for _, o := range observers {
		o.OnHandleEvent(e)
	}
}
