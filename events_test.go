package rbdesign

import "testing"

type recordingStore struct {
	events []EditorEvent
}

func (s *recordingStore) EmitEditorEvent(ev EditorEvent) {
	s.events = append(s.events, ev)
}

func TestHubDispatchOrder(t *testing.T) {
	h := NewHub()
	var order []int
	h.OnModelChange(func(ModelEvent) { order = append(order, 1) })
	h.OnModelChange(func(ModelEvent) { order = append(order, 2) })
	h.OnModelChange(func(ModelEvent) { order = append(order, 3) })

	h.EmitModel(ModelEvent{})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("dispatch order = %v, want [1 2 3]", order)
	}
}

func TestHubCallbackRemove(t *testing.T) {
	h := NewHub()
	var a, b int
	ha := h.OnBrushChange(func(BrushEvent) { a++ })
	h.OnBrushChange(func(BrushEvent) { b++ })

	h.EmitBrush(BrushEvent{})
	ha.Remove()
	h.EmitBrush(BrushEvent{})

	if a != 1 {
		t.Errorf("removed handler fired %d times, want 1", a)
	}
	if b != 2 {
		t.Errorf("remaining handler fired %d times, want 2", b)
	}

	// Removing twice is harmless.
	ha.Remove()
	h.EmitBrush(BrushEvent{})
	if b != 3 {
		t.Errorf("handler fired %d times after double remove, want 3", b)
	}
}

func TestHubRemoveZeroHandle(t *testing.T) {
	var handle CallbackHandle
	handle.Remove() // must not panic
}

func TestHubEventPayloads(t *testing.T) {
	h := NewHub()
	m := NewModel()
	coords := []GridCoord{{1, 2}}

	var gotModel ModelEvent
	h.OnModelChange(func(ev ModelEvent) { gotModel = ev })
	h.EmitModel(ModelEvent{Model: m, Coords: coords})
	if gotModel.Model != m || len(gotModel.Coords) != 1 || gotModel.Coords[0] != (GridCoord{1, 2}) {
		t.Errorf("model event = %+v", gotModel)
	}

	var gotBrush BrushEvent
	h.OnBrushChange(func(ev BrushEvent) { gotBrush = ev })
	brush := &Brush{}
	h.EmitBrush(BrushEvent{Brush: brush})
	if gotBrush.Brush != brush {
		t.Error("brush event did not carry the brush")
	}

	var gotClip ClipboardEvent
	h.OnClipboardChange(func(ev ClipboardEvent) { gotClip = ev })
	cb := &Clipboard{Model: m, Coords: coords}
	h.EmitClipboard(ClipboardEvent{Clipboard: cb})
	if gotClip.Clipboard != cb {
		t.Error("clipboard event did not carry the clipboard")
	}
}

func TestHubMirrorsToEventStore(t *testing.T) {
	h := NewHub()
	store := &recordingStore{}
	h.SetEventStore(store)

	h.EmitModel(ModelEvent{Coords: []GridCoord{{3, 4}}})
	h.EmitBrush(BrushEvent{})
	h.EmitClipboard(ClipboardEvent{Clipboard: &Clipboard{Coords: []GridCoord{{1, 1}}}})
	h.EmitClipboard(ClipboardEvent{}) // nil clipboard mirrors with nil coords
	h.EmitLayerEvent(EventLayerStarted, "move")

	want := []struct {
		typ    EditorEventType
		coords int
		layer  string
	}{
		{EventModelChanged, 1, ""},
		{EventBrushChanged, 0, ""},
		{EventClipboardChanged, 1, ""},
		{EventClipboardChanged, 0, ""},
		{EventLayerStarted, 0, "move"},
	}
	if len(store.events) != len(want) {
		t.Fatalf("mirrored %d events, want %d", len(store.events), len(want))
	}
	for i, w := range want {
		ev := store.events[i]
		if ev.Type != w.typ || len(ev.Coords) != w.coords || ev.Layer != w.layer {
			t.Errorf("event %d = %+v, want type %v coords %d layer %q", i, ev, w.typ, w.coords, w.layer)
		}
	}

	// A nil store disables mirroring without breaking dispatch.
	h.SetEventStore(nil)
	h.EmitModel(ModelEvent{})
	if len(store.events) != len(want) {
		t.Error("event mirrored after store removed")
	}
}

func TestClipboardClone(t *testing.T) {
	specs, body := testSpecs()
	m := NewModel()
	m.Add(NewParticle(GridCoord{0, 0}, specs, body))
	cb := &Clipboard{Model: m, Coords: []GridCoord{{0, 0}, {1, 0}}}

	c := cb.Clone()
	if c == cb || c.Model == cb.Model {
		t.Fatal("clone shares state with the original")
	}
	if len(c.Coords) != 2 {
		t.Fatalf("clone coords = %v", c.Coords)
	}

	// Mutations on the clone stay private.
	c.Model.Remove(GridCoord{0, 0})
	c.Coords[0] = GridCoord{9, 9}
	if !cb.Model.Has(GridCoord{0, 0}) || cb.Coords[0] != (GridCoord{0, 0}) {
		t.Error("clone mutation leaked into the original")
	}

	var nilCb *Clipboard
	if nilCb.Clone() != nil {
		t.Error("nil Clone should be nil")
	}
}
