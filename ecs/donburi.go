package ecs

import (
	"github.com/jdaaph/rbdesign"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EditorEvents is the Donburi event type for mirrored editor events.
// Subscribe to this in your ECS systems to receive model, brush, clipboard,
// and layer lifecycle changes.
var EditorEvents = events.NewEventType[rbdesign.EditorEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Editor
// events are published to EditorEvents and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) rbdesign.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEditorEvent(event rbdesign.EditorEvent) {
	EditorEvents.Publish(s.world, event)
}
