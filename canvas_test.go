package rbdesign

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCanvasBottomLayerByMode(t *testing.T) {
	tests := []struct {
		name string
		mode CanvasMode
		kind string
	}{
		{"view", ModeView, "view"},
		{"edit", ModeEdit, "background"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(NewModel(), tt.mode)
			if got := c.TopLayer().Kind(); got != tt.kind {
				t.Errorf("bottom layer kind = %q, want %q", got, tt.kind)
			}
			if !c.TopLayer().Running() {
				t.Error("bottom layer not running after NewCanvas")
			}
		})
	}
}

func TestCanvasUnsupportedModePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewCanvas with a bogus mode did not panic")
		}
	}()
	NewCanvas(NewModel(), CanvasMode(99))
}

// assertOneRunning fails unless exactly the top of the given layers runs.
func assertOneRunning(t *testing.T, layers []Layer) {
	t.Helper()
	for i, l := range layers {
		want := i == len(layers)-1
		if l.Running() != want {
			t.Errorf("layer %d (%s) running = %v, want %v", i, l.Kind(), l.Running(), want)
		}
	}
}

func TestCanvasExactlyOneRunning(t *testing.T) {
	specs, body := testSpecs()
	c, _ := editFixture()
	c.SetBrush(&Brush{Specs: specs, Body: body})
	clickAt(c, GridCoord{1, 1}, MouseButtonLeft, 0)

	layers := []Layer{c.TopLayer()}
	assertOneRunning(t, layers)

	// Nest two cut children and check the invariant at every depth.
	c.FeedKey(KeyA, ModCtrl)
	c.FeedKey(KeyX, ModCtrl)
	layers = append(layers, c.TopLayer())
	assertOneRunning(t, layers)

	c.FeedKey(KeyX, ModCtrl)
	layers = append(layers, c.TopLayer())
	assertOneRunning(t, layers)

	c.FeedKey(KeyReturn, 0)
	assertOneRunning(t, layers[:2])
	c.FeedKey(KeyReturn, 0)
	assertOneRunning(t, layers[:1])

	// Popped layers are finished and cleaned, never left running.
	for _, l := range layers[1:] {
		if l.Running() || !l.Cleaned() {
			t.Errorf("popped %s layer running=%v cleaned=%v", l.Kind(), l.Running(), l.Cleaned())
		}
	}
}

func TestCanvasMergeAndCancelNoopOnBottom(t *testing.T) {
	c, _ := editFixture()
	bottom := c.TopLayer()
	c.MergeTopLayer()
	c.CancelTopLayer()
	if c.StackDepth() != 1 || c.TopLayer() != bottom || !bottom.Running() {
		t.Error("merge/cancel on the bottom layer changed the stack")
	}
}

func TestCanvasStartLayerPausesParent(t *testing.T) {
	c, _ := editFixture()
	bottom := c.TopLayer()

	child := NewEditLayer(c, NewModel(), ViewNone)
	c.StartLayer(child)

	if !bottom.Paused() {
		t.Error("parent not paused after StartLayer")
	}
	if !child.Running() {
		t.Error("child not running after StartLayer")
	}

	c.CancelTopLayer()
	if bottom.Paused() || !bottom.Running() {
		t.Error("parent not resumed after CancelTopLayer")
	}
	if !child.Canceled() || !child.Cleaned() {
		t.Error("child not canceled and cleaned after CancelTopLayer")
	}
}

// countingLayer counts Update calls to observe the canvas queue.
type countingLayer struct {
	*ViewLayer
	updates int
}

func newCountingLayer(c *Canvas) *countingLayer {
	l := &countingLayer{ViewLayer: &ViewLayer{}}
	l.initView(l, c, nil, nil, ViewNone)
	return l
}

func (l *countingLayer) Update() {
	l.updates++
	l.ViewLayer.Update()
}

func TestCanvasUpdateQueueCoalesces(t *testing.T) {
	c := NewCanvas(NewModel(), ModeView)
	l := newCountingLayer(c)
	c.StartLayer(l)
	c.Update(frameDt) // drain the start request
	l.updates = 0

	c.requestUpdate(l)
	c.requestUpdate(l)
	c.requestUpdate(l)
	c.Update(frameDt)

	if l.updates != 1 {
		t.Errorf("three requests ran %d updates, want 1", l.updates)
	}

	// A fresh request after the flush runs again.
	c.requestUpdate(l)
	c.Update(frameDt)
	if l.updates != 2 {
		t.Errorf("request after flush ran %d total updates, want 2", l.updates)
	}
}

func TestCanvasUpdateSkipsCleanedLayers(t *testing.T) {
	c := NewCanvas(NewModel(), ModeView)
	l := newCountingLayer(c)
	c.StartLayer(l)
	c.Update(frameDt)
	l.updates = 0

	c.requestUpdate(l)
	c.CancelTopLayer()
	c.Update(frameDt)

	if l.updates != 0 {
		t.Errorf("cleaned layer updated %d times, want 0", l.updates)
	}
}

func TestCanvasZoom(t *testing.T) {
	c := NewCanvas(NewModel(), ModeEdit)
	if c.Diameter() != defaultDiameter {
		t.Fatalf("Diameter at zoom 1 = %v, want %v", c.Diameter(), defaultDiameter)
	}

	c.SetZoom(2)
	if c.Zoom() != 2 || c.Diameter() != 2*defaultDiameter {
		t.Errorf("after SetZoom(2): zoom %v diameter %v", c.Zoom(), c.Diameter())
	}

	c.ZoomBy(0.5)
	if c.Zoom() != 1 {
		t.Errorf("after ZoomBy(0.5): zoom %v, want 1", c.Zoom())
	}

	// Degenerate zooms are ignored.
	for _, bad := range []float64{0, -1} {
		c.SetZoom(bad)
		if c.Zoom() != 1 {
			t.Errorf("SetZoom(%v) applied, zoom %v", bad, c.Zoom())
		}
	}
}

// scrollFixture builds an editing canvas over a model large enough that its
// scroll region exceeds the viewport.
func scrollFixture() *Canvas {
	specs, body := testSpecs()
	m := NewModel()
	m.Add(NewParticle(GridCoord{0, 0}, specs, body))
	m.Add(NewParticle(GridCoord{50, 40}, specs, body))
	c := NewCanvas(m, ModeEdit)
	c.Resize(400, 300)
	c.Update(frameDt)
	return c
}

func TestCanvasScrollBy(t *testing.T) {
	c := scrollFixture()
	c.ScrollBy(60, 45)
	if got := c.Origin(); got != (Point{60, 45}) {
		t.Errorf("Origin after ScrollBy = %v, want (60,45)", got)
	}

	// Scrolling is clamped to the scroll region.
	c.ScrollBy(-1e6, -1e6)
	region := c.ScrollRegion()
	if got := c.Origin(); got != (Point{region.MinX, region.MinY}) {
		t.Errorf("Origin after huge negative scroll = %v, want region corner", got)
	}
}

func TestCanvasScrollToAnimates(t *testing.T) {
	c := scrollFixture()
	c.ScrollTo(100, 80, 0.5, ease.Linear)

	// Partway through, the origin is between start and target.
	for i := 0; i < 15; i++ {
		c.Update(frameDt)
	}
	mid := c.Origin()
	if mid.X <= 0 || mid.X >= 100 {
		t.Errorf("mid-tween origin X = %v, want between 0 and 100", mid.X)
	}

	for i := 0; i < 60; i++ {
		c.Update(frameDt)
	}
	got := c.Origin()
	if !approxEqual(got.X, 100, 0.5) || !approxEqual(got.Y, 80, 0.5) {
		t.Errorf("Origin after tween = %v, want (100,80)", got)
	}
}

func TestCanvasScrollToZeroDurationJumps(t *testing.T) {
	c := scrollFixture()
	c.ScrollTo(100, 80, 0, ease.Linear)
	if got := c.Origin(); got != (Point{100, 80}) {
		t.Errorf("Origin after instant ScrollTo = %v, want (100,80)", got)
	}
}

func TestCanvasScrollByInterruptsTween(t *testing.T) {
	c := scrollFixture()
	c.ScrollTo(100, 80, 1, ease.Linear)
	c.Update(frameDt)
	c.ScrollBy(10, 0)
	at := c.Origin()
	c.Update(frameDt)
	if got := c.Origin(); got != at {
		t.Errorf("tween kept running after ScrollBy: origin %v, then %v", at, got)
	}
}

func TestCanvasRightButtonNeverDrags(t *testing.T) {
	specs, body := testSpecs()
	c, _ := editFixture()
	c.SetBrush(&Brush{Specs: specs, Body: body})
	clickAt(c, GridCoord{0, 0}, MouseButtonLeft, 0)

	c.FeedPointer(10, 10, true, MouseButtonRight, 0)
	c.FeedPointer(80, 10, true, MouseButtonRight, 0)
	if c.StackDepth() != 1 {
		t.Errorf("right drag pushed a layer, depth %d", c.StackDepth())
	}
	c.FeedPointer(80, 10, false, MouseButtonRight, 0)
}

func TestCanvasClickWithinDeadZone(t *testing.T) {
	specs, body := testSpecs()
	c, m := editFixture()
	c.SetBrush(&Brush{Specs: specs, Body: body})

	// 3 pixels of travel stays inside the dead zone: still a click.
	c.FeedPointer(10, 10, true, MouseButtonLeft, 0)
	c.FeedPointer(13, 10, true, MouseButtonLeft, 0)
	c.FeedPointer(13, 10, false, MouseButtonLeft, 0)

	if !m.Has(GridCoord{0, 0}) {
		t.Error("dead-zone click did not paint")
	}
	if c.StackDepth() != 1 {
		t.Errorf("dead-zone click pushed a layer, depth %d", c.StackDepth())
	}
}

func TestCanvasPointerAddsScrollOrigin(t *testing.T) {
	c := scrollFixture()
	specs, body := testSpecs()
	c.SetBrush(&Brush{Specs: specs, Body: body})
	c.ScrollBy(100, 60) // viewport (10,10) is canvas (110,70), cell (5,3)
	clickAt(c, GridCoord{0, 0}, MouseButtonLeft, 0)

	if !c.Model().Has(GridCoord{5, 3}) {
		t.Error("click not offset by the scroll origin")
	}
}

func TestCanvasSharedHubKeepsModelsInSync(t *testing.T) {
	specs, body := testSpecs()
	m := NewModel()
	hub := NewHub()
	edit := NewCanvasWithHub(m, ModeEdit, hub)
	edit.Resize(400, 300)
	edit.Update(frameDt)
	thumb := NewCanvasWithHub(m, ModeView, hub)
	thumb.Resize(100, 80)
	thumb.Update(frameDt)

	edit.SetBrush(&Brush{Specs: specs, Body: body})
	clickAt(edit, GridCoord{1, 1}, MouseButtonLeft, 0)
	thumb.Update(frameDt)

	for _, dp := range thumb.Drawables() {
		if dp.Fill == specs.Color.washed() || dp.Fill == specs.Color {
			return
		}
	}
	t.Error("thumbnail canvas never drew the particle painted on the editor")
}
