package handle

import (
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnHandleEvent(e Event) {
	o.events = append(o.events, e)
}

type dropCounter struct {
	drops int
}

func (d *dropCounter) Drop() {
	d.drops++
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Export("::test::Thing", "test")
	if !h.Valid() {
		t.Fatal("Expected valid handle")
	}

	tag, ok := h.Tag()
	if !ok || tag != "::test::Thing" {
		t.Fatalf("Tag() = %q, %v", tag, ok)
	}

	val, err := h.Native()
	if err != nil {
		t.Fatalf("Native failed: %v", err)
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if table.Len() != 1 {
		t.Fatalf("Expected Len() == 1, got %d", table.Len())
	}

	if !table.Drop(h) {
		t.Fatal("Drop failed")
	}
	if table.Drop(h) {
		t.Fatal("Second Drop should fail")
	}

	if _, err := h.Native(); err == nil {
		t.Fatal("Native should fail after Drop")
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Drop")
	}
}

func TestTable_SlotReuse(t *testing.T) {
	table := NewTable()

	h1 := table.Export("a", 1)
	table.Drop(h1)
	h2 := table.Export("a", 2)

	if h1.ref.slot != h2.ref.slot {
		t.Fatalf("Expected slot reuse, got %d and %d", h1.ref.slot, h2.ref.slot)
	}
	if h1.Valid() {
		t.Fatal("Stale handle must not resolve to the reused slot")
	}
	v, err := h2.Native()
	if err != nil || v != 2 {
		t.Fatalf("Native() = %v, %v", v, err)
	}
	if table.Drop(h1) {
		t.Fatal("Drop with stale handle must fail")
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Export("tag", "test")
	if len(obs.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventExported {
		t.Fatal("Expected EventExported")
	}
	if obs.events[0].Slot != h.ref.slot {
		t.Fatal("Wrong slot in event")
	}

	table.Drop(h)
	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	if obs.events[1].Type != EventDropped {
		t.Fatal("Expected EventDropped")
	}
}

func TestTable_Dropper(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	h := table.Export("tag", d)
	table.Drop(h)
	if d.drops != 1 {
		t.Fatalf("Expected 1 drop, got %d", d.drops)
	}

	d2 := &dropCounter{}
	table.Export("tag", d2)
	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if d2.drops != 1 {
		t.Fatalf("Close should drop live values, got %d", d2.drops)
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	h := table.Export("tag", "v")

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := table.Close(); err != nil {
		t.Fatalf("Second Close failed: %v", err)
	}

	if h.Valid() {
		t.Fatal("Handle should not resolve after Close")
	}
	if table.Export("tag", "w").Valid() {
		t.Fatal("Export after Close should return an invalid handle")
	}
	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Close")
	}
}

func TestTable_ForeignHandle(t *testing.T) {
	a, b := NewTable(), NewTable()
	h := a.Export("tag", 1)

	if b.Drop(h) {
		t.Fatal("Drop must reject handles from another table")
	}
	if a.ID() == b.ID() {
		t.Fatal("Tables should have distinct IDs")
	}
}

func TestHandle_Zero(t *testing.T) {
	var h Handle
	if h.Valid() {
		t.Fatal("Zero handle should be invalid")
	}
	if _, ok := h.Tag(); ok {
		t.Fatal("Zero handle should be untagged")
	}
	if h.String() != "handle(NULL, nil)" {
		t.Fatalf("String() = %q", h.String())
	}
}

func TestHandle_FreeStanding(t *testing.T) {
	h := New("tag", 5)
	v, err := h.Native()
	if err != nil || v != 5 {
		t.Fatalf("Native() = %v, %v", v, err)
	}
	if h.String() != `handle("tag")` {
		t.Fatalf("String() = %q", h.String())
	}

	u := NewUntagged(5)
	if _, ok := u.Tag(); ok {
		t.Fatal("NewUntagged should produce an untagged handle")
	}
}
