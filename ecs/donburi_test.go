package ecs

import (
	"testing"

	"github.com/jdaaph/rbdesign"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEditorEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []rbdesign.EditorEvent
	EditorEvents.Subscribe(world, func(w donburi.World, e rbdesign.EditorEvent) {
		received = append(received, e)
	})

	store.EmitEditorEvent(rbdesign.EditorEvent{
		Type:   rbdesign.EventModelChanged,
		Coords: []rbdesign.GridCoord{{X: 1, Y: 2}, {X: 3, Y: 4}},
	})

	store.EmitEditorEvent(rbdesign.EditorEvent{
		Type:  rbdesign.EventLayerStarted,
		Layer: "move",
	})

	// Events are queued — process them.
	EditorEvents.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != rbdesign.EventModelChanged || len(e0.Coords) != 2 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Coords[0] != (rbdesign.GridCoord{X: 1, Y: 2}) {
		t.Errorf("event 0 coords: %v", e0.Coords)
	}

	e1 := received[1]
	if e1.Type != rbdesign.EventLayerStarted || e1.Layer != "move" {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEventStore(t *testing.T) {
	world := donburi.NewWorld()
	var store rbdesign.EventStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	EditorEvents.Subscribe(world, func(w donburi.World, e rbdesign.EditorEvent) {
		count1++
	})
	EditorEvents.Subscribe(world, func(w donburi.World, e rbdesign.EditorEvent) {
		count2++
	})

	store.EmitEditorEvent(rbdesign.EditorEvent{Type: rbdesign.EventClipboardChanged})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_MirrorsHubEvents(t *testing.T) {
	world := donburi.NewWorld()

	model := rbdesign.NewModel()
	canvas := rbdesign.NewCanvas(model, rbdesign.ModeEdit)
	canvas.Hub().SetEventStore(NewDonburiStore(world))

	var received []rbdesign.EditorEvent
	EditorEvents.Subscribe(world, func(w donburi.World, e rbdesign.EditorEvent) {
		received = append(received, e)
	})

	canvas.SetBrush(&rbdesign.Brush{})
	EditorEvents.ProcessEvents(world)

	if len(received) != 1 {
		t.Fatalf("expected 1 mirrored event, got %d", len(received))
	}
	if received[0].Type != rbdesign.EventBrushChanged {
		t.Errorf("mirrored event: %+v", received[0])
	}
}
