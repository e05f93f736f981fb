package rbdesign

// Events connecting models, layers, and anything watching them. Every canvas
// owns a [Hub]; edit layers publish through it after mutating the model, and
// subscribers (other canvases on the same model, thumbnails, an ECS world)
// react. Dispatch is synchronous and in registration order.

// ModelEvent announces a model mutation. Coords is the set of grid
// coordinates whose occupancy or particle may have changed; subscribers only
// need to re-read those.
type ModelEvent struct {
	Model  *Model
	Coords []GridCoord
}

// BrushEvent announces the active brush for subsequent painting. A nil brush
// is the eraser.
type BrushEvent struct {
	Brush *Brush
}

// Clipboard is a captured model fragment: a model holding copies of the
// captured particles, plus the full coordinate footprint of the capture
// (blank points included).
type Clipboard struct {
	Model  *Model
	Coords []GridCoord
}

// Clone returns a deep copy of the clipboard so a paste can hand out private
// particles.
func (cb *Clipboard) Clone() *Clipboard {
	if cb == nil {
		return nil
	}
	coords := make([]GridCoord, len(cb.Coords))
	copy(coords, cb.Coords)
	return &Clipboard{Model: cb.Model.Clone(), Coords: coords}
}

// ClipboardEvent announces new clipboard content.
type ClipboardEvent struct {
	Clipboard *Clipboard
}

// EditorEventType identifies an editor event mirrored to an [EventStore].
type EditorEventType uint8

const (
	EventModelChanged     EditorEventType = iota // model mutated; Coords set
	EventBrushChanged                            // active brush replaced
	EventClipboardChanged                        // clipboard content replaced
	EventLayerStarted                            // a layer was pushed and started
	EventLayerMerged                             // top layer merged into its parent
	EventLayerCanceled                           // top layer canceled
)

// EditorEvent is the flattened event mirrored into an external store, for
// bridging editor activity into an ECS world or similar.
type EditorEvent struct {
	Type   EditorEventType
	Coords []GridCoord // touched coordinates, when applicable
	Layer  string      // layer kind, for layer lifecycle events
}

// EventStore receives mirrored editor events. Implemented by the ecs
// submodule; nil disables mirroring.
type EventStore interface {
	EmitEditorEvent(EditorEvent)
}

// --- Handler registry ---

type modelHandler struct {
	id uint32
	fn func(ModelEvent)
}

type brushHandler struct {
	id uint32
	fn func(BrushEvent)
}

type clipboardHandler struct {
	id uint32
	fn func(ClipboardEvent)
}

type hubEvent uint8

const (
	hubModel hubEvent = iota
	hubBrush
	hubClipboard
)

// Hub is the synchronous event bus shared by a canvas, its layers, and any
// outside subscribers. Not safe for concurrent use; everything runs on the
// update goroutine.
type Hub struct {
	model     []modelHandler
	brush     []brushHandler
	clipboard []clipboardHandler
	nextID    uint32
	store     EventStore
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// SetEventStore installs a mirror target for editor events; nil disables it.
func (h *Hub) SetEventStore(store EventStore) {
	h.store = store
}

// CallbackHandle allows removing a registered hub callback.
type CallbackHandle struct {
	id    uint32
	hub   *Hub
	event hubEvent
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (c CallbackHandle) Remove() {
	if c.hub == nil {
		return
	}
	switch c.event {
	case hubModel:
		c.hub.model = removeModelHandler(c.hub.model, c.id)
	case hubBrush:
		c.hub.brush = removeBrushHandler(c.hub.brush, c.id)
	case hubClipboard:
		c.hub.clipboard = removeClipboardHandler(c.hub.clipboard, c.id)
	}
}

func removeModelHandler(s []modelHandler, id uint32) []modelHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = modelHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeBrushHandler(s []brushHandler, id uint32) []brushHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = brushHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeClipboardHandler(s []clipboardHandler, id uint32) []clipboardHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clipboardHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Registration ---

// OnModelChange registers a callback for model mutations.
func (h *Hub) OnModelChange(fn func(ModelEvent)) CallbackHandle {
	h.nextID++
	id := h.nextID
	h.model = append(h.model, modelHandler{id: id, fn: fn})
	return CallbackHandle{id: id, hub: h, event: hubModel}
}

// OnBrushChange registers a callback for brush replacement.
func (h *Hub) OnBrushChange(fn func(BrushEvent)) CallbackHandle {
	h.nextID++
	id := h.nextID
	h.brush = append(h.brush, brushHandler{id: id, fn: fn})
	return CallbackHandle{id: id, hub: h, event: hubBrush}
}

// OnClipboardChange registers a callback for clipboard replacement.
func (h *Hub) OnClipboardChange(fn func(ClipboardEvent)) CallbackHandle {
	h.nextID++
	id := h.nextID
	h.clipboard = append(h.clipboard, clipboardHandler{id: id, fn: fn})
	return CallbackHandle{id: id, hub: h, event: hubClipboard}
}

// --- Dispatch ---

// EmitModel dispatches a model event to all subscribers. Callbacks must not
// unregister handlers mid-dispatch.
func (h *Hub) EmitModel(ev ModelEvent) {
	for _, handler := range h.model {
		handler.fn(ev)
	}
	h.mirror(EditorEvent{Type: EventModelChanged, Coords: ev.Coords})
}

// EmitBrush dispatches a brush event to all subscribers.
func (h *Hub) EmitBrush(ev BrushEvent) {
	for _, handler := range h.brush {
		handler.fn(ev)
	}
	h.mirror(EditorEvent{Type: EventBrushChanged})
}

// EmitClipboard dispatches a clipboard event to all subscribers.
func (h *Hub) EmitClipboard(ev ClipboardEvent) {
	for _, handler := range h.clipboard {
		handler.fn(ev)
	}
	var coords []GridCoord
	if ev.Clipboard != nil {
		coords = ev.Clipboard.Coords
	}
	h.mirror(EditorEvent{Type: EventClipboardChanged, Coords: coords})
}

// EmitLayerEvent mirrors a layer lifecycle change to the event store. Layer
// lifecycle has no in-process subscribers; the stack controller already
// knows.
func (h *Hub) EmitLayerEvent(t EditorEventType, layer string) {
	h.mirror(EditorEvent{Type: t, Layer: layer})
}

func (h *Hub) mirror(ev EditorEvent) {
	if h.store == nil {
		return
	}
	h.store.EmitEditorEvent(ev)
}
