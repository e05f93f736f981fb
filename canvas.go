package rbdesign

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	defaultDiameter     = 20.0 // cell size in pixels at zoom 1
	defaultPadding      = 10   // whitespace ring around the model, in cells
	defaultDragDeadZone = 4.0  // pixels of travel before a press becomes a drag
)

// CanvasMode selects the bottom layer a canvas is built on.
type CanvasMode uint8

const (
	ModeView CanvasMode = iota // read-only display of the model
	ModeEdit                   // full editing stack
)

// scrollAnim holds active scroll-to tweens for the origin X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// pointerState tracks one pointer through a press-drag-release interaction.
type pointerState struct {
	down     bool
	dragging bool
	button   MouseButton // button captured at press time
	start    Point       // canvas pixels at press
	last     Point
}

// Canvas owns a stack of layers over one model and the view state they share:
// zoom, cell diameter, scroll origin and region, and viewport size. The stack
// is a push-down automaton; only the top layer runs and receives input, the
// rest are alive but paused. The bottom layer never pops.
//
// A canvas is not safe for concurrent use. The host feeds input snapshots and
// calls Update once per frame; layer updates requested in between run on the
// next Update.
type Canvas struct {
	model *Model
	hub   *Hub
	stack []Layer

	baseDiameter float64
	zoom         float64
	padding      int

	origin Point     // canvas pixel at the viewport's top-left corner
	region PixelBBox // scrollable region, canvas pixels
	viewW  float64
	viewH  float64

	scroll *scrollAnim

	queue  []Layer
	queued map[Layer]struct{}

	pointer      pointerState
	dragDeadZone float64

	injectQueue []syntheticEvent
	script      *ScriptRunner

	debug bool
	stats debugStats
}

// NewCanvas returns a canvas over model with its own event hub.
func NewCanvas(model *Model, mode CanvasMode) *Canvas {
	return NewCanvasWithHub(model, mode, NewHub())
}

// NewCanvasWithHub returns a canvas over model publishing and subscribing on
// the given hub. Canvases sharing a hub stay in sync: a brush stroke on one
// redraws the same model on the others.
func NewCanvasWithHub(model *Model, mode CanvasMode, hub *Hub) *Canvas {
	c := &Canvas{
		model:        model,
		hub:          hub,
		baseDiameter: defaultDiameter,
		zoom:         1.0,
		padding:      defaultPadding,
		dragDeadZone: defaultDragDeadZone,
		queued:       make(map[Layer]struct{}),
	}

	var bottom Layer
	switch mode {
	case ModeEdit:
		bottom = newBackgroundLayer(c, model)
	case ModeView:
		bottom = NewViewLayer(c, model, ViewAuto)
	default:
		panic("rbdesign: unsupported canvas mode")
	}
	c.stack = append(c.stack, bottom)

	c.hub.OnModelChange(c.routeModelEvent)
	c.hub.OnBrushChange(c.routeBrushEvent)
	c.hub.OnClipboardChange(c.routeClipboardEvent)

	bottom.Start()
	return c
}

// Model returns the model the canvas displays.
func (c *Canvas) Model() *Model { return c.model }

// SetModel replaces the displayed model by handing it to the bottom layer.
func (c *Canvas) SetModel(m *Model) {
	c.model = m
	c.stack[0].SetModel(m)
}

// Hub returns the canvas's event hub, for outside subscribers and for sharing
// with other canvases.
func (c *Canvas) Hub() *Hub { return c.hub }

// SetBrush publishes b as the active brush on every alive editing layer. A
// nil brush is the eraser.
func (c *Canvas) SetBrush(b *Brush) {
	c.hub.EmitBrush(BrushEvent{Brush: b})
}

// SetDebug toggles stack sanity checks and per-frame timing output.
func (c *Canvas) SetDebug(debug bool) { c.debug = debug }

// --- Layer stack ---

// TopLayer returns the running layer.
func (c *Canvas) TopLayer() Layer { return c.stack[len(c.stack)-1] }

// StackDepth returns the number of layers on the stack.
func (c *Canvas) StackDepth() int { return len(c.stack) }

// StartLayer pauses the running layer, pushes the given one, and starts it.
func (c *Canvas) StartLayer(layer Layer) {
	if c.debug {
		debugCheckCleaned(layer, "StartLayer")
		debugCheckStackDepth(len(c.stack) + 1)
	}
	c.TopLayer().Pause()
	c.stack = append(c.stack, layer)
	layer.Start()
	c.hub.EmitLayerEvent(EventLayerStarted, layer.Kind())
	if c.debug {
		debugCheckSingleRunning(c.stack)
	}
}

// MergeTopLayer commits the running operation: the top layer is popped and
// finished, the layer below absorbs its result, and the popped layer is
// cleaned. No-op on the bottom layer.
func (c *Canvas) MergeTopLayer() {
	if len(c.stack) < 2 {
		return
	}
	child := c.popLayer()
	child.Finish()
	c.TopLayer().Merge(child)
	child.Clean()
	c.TopLayer().Resume()
	c.hub.EmitLayerEvent(EventLayerMerged, child.Kind())
}

// CancelTopLayer abandons the running operation: the top layer is popped,
// canceled, and cleaned without touching the layer below's model. No-op on
// the bottom layer.
func (c *Canvas) CancelTopLayer() {
	if len(c.stack) < 2 {
		return
	}
	child := c.popLayer()
	child.Cancel()
	child.Clean()
	c.TopLayer().Resume()
	c.hub.EmitLayerEvent(EventLayerCanceled, child.Kind())
}

func (c *Canvas) popLayer() Layer {
	l := c.TopLayer()
	c.stack = c.stack[:len(c.stack)-1]
	return l
}

// --- Event routing ---

func (c *Canvas) routeModelEvent(ev ModelEvent) {
	for _, l := range c.stack {
		if l.Alive() {
			l.HandleModelEvent(ev)
		}
	}
}

func (c *Canvas) routeBrushEvent(ev BrushEvent) {
	for _, l := range c.stack {
		if !l.Alive() {
			continue
		}
		if r, ok := l.(brushReceiver); ok {
			r.handleBrushEvent(ev)
		}
	}
}

func (c *Canvas) routeClipboardEvent(ev ClipboardEvent) {
	for _, l := range c.stack {
		if !l.Alive() {
			continue
		}
		if r, ok := l.(clipboardReceiver); ok {
			r.handleClipboardEvent(ev)
		}
	}
}

// --- View state ---

// Zoom returns the current zoom factor.
func (c *Canvas) Zoom() float64 { return c.zoom }

// Diameter returns the cell size in canvas pixels at the current zoom.
func (c *Canvas) Diameter() float64 { return c.baseDiameter * c.zoom }

// Padding returns the whitespace ring kept around the model, in cells.
func (c *Canvas) Padding() int { return c.padding }

// SetZoom sets the zoom factor. The cell diameter every layer maps
// coordinates through changes, so all shadows redraw.
func (c *Canvas) SetZoom(zoom float64) {
	if zoom == c.zoom || zoom <= 0 || math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return
	}
	c.zoom = zoom
	for _, l := range c.stack {
		if l.Alive() {
			l.HandleZoomChange()
		}
	}
}

// ZoomBy scales the zoom factor, for wheel input.
func (c *Canvas) ZoomBy(factor float64) {
	c.SetZoom(c.zoom * factor)
}

// Resize sets the viewport size in pixels.
func (c *Canvas) Resize(w, h float64) {
	if w == c.viewW && h == c.viewH {
		return
	}
	c.viewW, c.viewH = w, h
	c.origin = c.clampOrigin(c.origin)
	for _, l := range c.stack {
		if l.Alive() {
			l.HandleResize()
		}
	}
}

// Origin returns the canvas pixel at the viewport's top-left corner.
func (c *Canvas) Origin() Point { return c.origin }

// VisibleBBox returns the canvas-pixel box currently visible in the viewport.
func (c *Canvas) VisibleBBox() PixelBBox {
	return PixelBBox{
		MinX: c.origin.X,
		MinY: c.origin.Y,
		MaxX: c.origin.X + c.viewW,
		MaxY: c.origin.Y + c.viewH,
	}
}

// ScrollRegion returns the scrollable region in canvas pixels.
func (c *Canvas) ScrollRegion() PixelBBox { return c.region }

// setScrollRegion replaces the scrollable region and clamps the origin back
// into it. Layers set this from their view mode on update.
func (c *Canvas) setScrollRegion(r PixelBBox) {
	c.region = r
	c.origin = c.clampOrigin(c.origin)
}

// clampOrigin restricts a scroll origin so the viewport stays within the
// scroll region. A region smaller than the viewport pins to its corner.
func (c *Canvas) clampOrigin(o Point) Point {
	maxX := c.region.MaxX - c.viewW
	maxY := c.region.MaxY - c.viewH
	if maxX < c.region.MinX {
		maxX = c.region.MinX
	}
	if maxY < c.region.MinY {
		maxY = c.region.MinY
	}
	return Point{
		X: math.Max(c.region.MinX, math.Min(o.X, maxX)),
		Y: math.Max(c.region.MinY, math.Min(o.Y, maxY)),
	}
}

// ScrollBy immediately shifts the scroll origin, clamped to the scroll
// region, and interrupts any scroll animation.
func (c *Canvas) ScrollBy(dx, dy float64) {
	c.scroll = nil
	c.setOrigin(c.clampOrigin(c.origin.Add(dx, dy)))
}

// ScrollTo animates the scroll origin to the given canvas-pixel position over
// duration seconds. A zero duration jumps immediately.
func (c *Canvas) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	target := c.clampOrigin(Point{X: x, Y: y})
	if duration <= 0 {
		c.scroll = nil
		c.setOrigin(target)
		return
	}
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.origin.X), float32(target.X), duration, easeFn),
		tweenY: gween.New(float32(c.origin.Y), float32(target.Y), duration, easeFn),
	}
}

// setOrigin moves the scroll origin and queues every alive layer for an
// update, since what is visible has changed.
func (c *Canvas) setOrigin(o Point) {
	if o == c.origin {
		return
	}
	c.origin = o
	for _, l := range c.stack {
		if l.Alive() {
			c.requestUpdate(l)
		}
	}
}

// stepScroll advances the scroll animation by dt seconds.
func (c *Canvas) stepScroll(dt float32) {
	anim := c.scroll
	if anim == nil {
		return
	}
	o := c.origin
	if !anim.doneX {
		val, done := anim.tweenX.Update(dt)
		o.X = float64(val)
		anim.doneX = done
	}
	if !anim.doneY {
		val, done := anim.tweenY.Update(dt)
		o.Y = float64(val)
		anim.doneY = done
	}
	if anim.doneX && anim.doneY {
		c.scroll = nil
	}
	c.setOrigin(c.clampOrigin(o))
}

// --- Frame update ---

// requestUpdate queues a layer for an update on the next frame. Duplicate
// requests coalesce.
func (c *Canvas) requestUpdate(l Layer) {
	if l == nil {
		return
	}
	if _, ok := c.queued[l]; ok {
		return
	}
	c.queued[l] = struct{}{}
	c.queue = append(c.queue, l)
}

// Update advances the canvas one frame: the scroll animation, scripted and
// injected input, then the queued layer updates. Updates requested while
// flushing run on the next frame.
func (c *Canvas) Update(dt float32) {
	if c.script != nil {
		c.script.step(c)
	}

	if !c.debug {
		c.stepScroll(dt)
		c.processInjected()
		c.flushUpdates()
		return
	}

	start := time.Now()
	c.stepScroll(dt)
	c.stats.scrollTime = time.Since(start)

	c.processInjected()

	start = time.Now()
	c.flushUpdates()
	c.stats.particleTime = time.Since(start)

	c.stats.layerCount = len(c.stack)
	c.stats.dirtyCount = 0
	for _, l := range c.stack {
		if counter, ok := l.(interface{ dirtyCount() int }); ok {
			c.stats.dirtyCount += counter.dirtyCount()
		}
	}
	c.debugLog(c.stats)
}

func (c *Canvas) flushUpdates() {
	if len(c.queue) == 0 {
		return
	}
	queue := c.queue
	c.queue = nil
	for _, l := range queue {
		delete(c.queued, l)
	}
	for _, l := range queue {
		if l.Cleaned() {
			continue
		}
		l.Update()
	}
}

// Drawables returns every layer's drawables, bottom to top, in canvas pixel
// space. The host offsets them by Origin to place them in the viewport.
func (c *Canvas) Drawables() []DrawParams {
	var out []DrawParams
	for _, l := range c.stack {
		out = append(out, l.Drawables()...)
	}
	if c.debug {
		c.stats.drawableCount = len(out)
	}
	return out
}

// --- Input ---

// FeedPointer advances the pointer state machine with one frame's pointer
// snapshot: viewport position, whether a button is held, and which. The
// canvas converts positions into canvas pixel space and synthesizes press,
// click, and drag events for the running layer. Only left-button travel
// past the dead zone becomes a drag; other buttons always click.
func (c *Canvas) FeedPointer(x, y float64, pressed bool, button MouseButton, mods KeyModifiers) {
	pos := c.origin.Add(x, y)
	ps := &c.pointer

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.start = pos
		ps.last = pos
		ps.dragging = false
		c.firePress(PointerEvent{Pos: pos, Button: ps.button, Mods: mods})

	case !pressed && ps.down:
		if ps.dragging {
			c.fireDragEnd(c.dragEvent(pos, mods))
		} else {
			c.fireClick(PointerEvent{Pos: pos, Button: ps.button, Mods: mods})
		}
		ps.down = false
		ps.dragging = false

	case pressed && ps.down:
		if pos == ps.last {
			return
		}
		if !ps.dragging && ps.button == MouseButtonLeft {
			dx := pos.X - ps.start.X
			dy := pos.Y - ps.start.Y
			if math.Sqrt(dx*dx+dy*dy) > c.dragDeadZone {
				ps.dragging = true
				c.fireDragStart(c.dragEvent(pos, mods))
			}
		}
		if ps.dragging {
			c.fireDrag(c.dragEvent(pos, mods))
		}
		ps.last = pos
	}
}

// FeedKey routes one key press to the running layer. Feed Shift presses and
// releases too, with the post-event modifier state, so move layers track
// duplication while the pointer is held.
func (c *Canvas) FeedKey(key Key, mods KeyModifiers) {
	if t, ok := c.TopLayer().(KeyTarget); ok {
		t.HandleKey(KeyEvent{Key: key, Mods: mods})
	}
}

func (c *Canvas) dragEvent(pos Point, mods KeyModifiers) DragEvent {
	ps := &c.pointer
	return DragEvent{
		Pos:   pos,
		Start: ps.start,
		Delta: Point{X: pos.X - ps.start.X, Y: pos.Y - ps.start.Y},
		Mods:  mods,
	}
}

// fire* resolve the top layer at dispatch time, so a drag that starts on an
// edit layer continues on the move layer it spawned.

func (c *Canvas) firePress(ev PointerEvent) {
	if t, ok := c.TopLayer().(PointerTarget); ok {
		t.HandlePress(ev)
	}
}

func (c *Canvas) fireClick(ev PointerEvent) {
	if t, ok := c.TopLayer().(ClickTarget); ok {
		t.HandleClick(ev)
	}
}

func (c *Canvas) fireDragStart(ev DragEvent) {
	if t, ok := c.TopLayer().(DragTarget); ok {
		t.HandleDragStart(ev)
	}
}

func (c *Canvas) fireDrag(ev DragEvent) {
	if t, ok := c.TopLayer().(DragTarget); ok {
		t.HandleDrag(ev)
	}
}

func (c *Canvas) fireDragEnd(ev DragEvent) {
	if t, ok := c.TopLayer().(DragTarget); ok {
		t.HandleDragEnd(ev)
	}
}
