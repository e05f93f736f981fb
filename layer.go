package rbdesign

import "sort"

// Layer is one entry of a canvas's editing stack. A layer displays a set of
// grid points, usually backed by a model, and represents one operation (or
// one step of an operation) on those points. Layers may spawn further layers
// for intermediate actions; the canvas's stack controller drives the
// lifecycle:
//
//	Start -> [Pause -> Merge(child) -> Resume]... -> Finish or Cancel -> Clean
//
// Between lifecycle calls the canvas calls Update (through the update queue)
// and reads Drawables each frame.
type Layer interface {
	// Kind names the layer's operation ("view", "edit", "move", ...).
	Kind() string

	// Model returns the model this layer displays and edits. For operation
	// layers this is a private working model, not the canvas model.
	Model() *Model
	// SetModel replaces the displayed model. Operation layers whose state is
	// derived from the model at construction panic here.
	SetModel(*Model)

	// Start begins the operation. Simple operations complete their work here;
	// interactive ones display their points and await input.
	Start()
	// Pause suspends input handling while a child layer runs.
	Pause()
	// Resume restores input handling after a child layer ends.
	Resume()
	// Finish commits the operation's result to the layer's model.
	Finish()
	// Cancel abandons the operation; no lasting changes remain.
	Cancel()
	// Clean releases display state. The layer must not be used afterwards.
	Clean()

	// Merge folds a finished child layer's result into this layer.
	Merge(child Layer)
	// StartCoordinates returns the grid points the layer was given when
	// created; Merge removes these from the parent before adding results.
	StartCoordinates() []GridCoord
	// FinishCoordinates returns the grid points holding the operation's
	// result; Merge transfers these into the parent.
	FinishCoordinates() []GridCoord

	// Update recomputes the view (per the layer's view mode) and redraws
	// every shadow marked dirty since the last update.
	Update()
	// Drawables returns the current draw list, bottom to top.
	Drawables() []DrawParams

	// HandleResize reacts to a viewport size change.
	HandleResize()
	// HandleZoomChange reacts to a canvas zoom change.
	HandleZoomChange()
	// HandleModelEvent reacts to a model mutation. Events for other models
	// are ignored; a nil coordinate set means "recheck every tracked point".
	HandleModelEvent(ModelEvent)

	Started() bool
	Paused() bool
	Finished() bool
	Canceled() bool
	Cleaned() bool
	// Alive reports started and neither finished nor canceled.
	Alive() bool
	// Running reports alive and not paused. The stack keeps at most one
	// running layer: the top.
	Running() bool
}

// PointerTarget is implemented by layers that react to button presses.
type PointerTarget interface {
	HandlePress(PointerEvent)
}

// ClickTarget is implemented by layers that react to clicks (press and
// release without crossing the drag dead zone).
type ClickTarget interface {
	HandleClick(PointerEvent)
}

// DragTarget is implemented by layers that react to drag gestures.
type DragTarget interface {
	HandleDragStart(DragEvent)
	HandleDrag(DragEvent)
	HandleDragEnd(DragEvent)
}

// KeyTarget is implemented by layers that react to key events.
type KeyTarget interface {
	HandleKey(KeyEvent)
}

// Selector is implemented by layers that carry a selection. Merge transfers
// the child's selection to the parent when the child implements it.
type Selector interface {
	SelectionCoords() []GridCoord
}

// brushReceiver and clipboardReceiver mark layers that track the shared
// brush and clipboard; the canvas forwards hub events to alive layers.
type brushReceiver interface {
	handleBrushEvent(BrushEvent)
}

type clipboardReceiver interface {
	handleClipboardEvent(ClipboardEvent)
}

// life holds a layer's lifecycle flags. The flag transitions are one-way
// except paused.
type life struct {
	started  bool
	paused   bool
	finished bool
	canceled bool
	cleaned  bool
}

func (f *life) Started() bool  { return f.started }
func (f *life) Paused() bool   { return f.paused }
func (f *life) Finished() bool { return f.finished }
func (f *life) Canceled() bool { return f.canceled }
func (f *life) Cleaned() bool  { return f.cleaned }

// Alive reports started and neither finished nor canceled.
func (f *life) Alive() bool { return f.started && !f.finished && !f.canceled }

// Running reports alive and not paused.
func (f *life) Running() bool { return f.Alive() && !f.paused }

// sortShadows orders shadows row-major by grid coordinate so the draw list is
// stable from frame to frame.
func sortShadows(ds []*DrawnParticle) {
	sort.Slice(ds, func(i, j int) bool {
		a, b := ds[i].Coord(), ds[j].Coord()
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}

// coordSet builds a set from a coordinate slice.
func coordSet(coords []GridCoord) map[GridCoord]struct{} {
	s := make(map[GridCoord]struct{}, len(coords))
	for _, c := range coords {
		s[c] = struct{}{}
	}
	return s
}

// coordSlice flattens a coordinate set in unspecified order.
func coordSlice(s map[GridCoord]struct{}) []GridCoord {
	coords := make([]GridCoord, 0, len(s))
	for c := range s {
		coords = append(coords, c)
	}
	return coords
}
