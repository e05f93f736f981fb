package rbdesign

import "testing"

// viewFixture builds a model with particles at the given coordinates and a
// started ViewNone layer over it, backed by a throwaway canvas.
func viewFixture(coords ...GridCoord) (*Canvas, *Model, *ViewLayer) {
	specs, body := testSpecs()
	m := NewModel()
	for _, c := range coords {
		m.Add(NewParticle(c, specs, body))
	}
	canvas := NewCanvas(NewModel(), ModeView)
	canvas.Resize(400, 300)
	l := NewViewLayer(canvas, m, ViewNone)
	l.Start()
	l.Update()
	return canvas, m, l
}

func TestViewLayerStart(t *testing.T) {
	specs, _ := testSpecs()
	_, _, l := viewFixture(GridCoord{0, 0}, GridCoord{2, 1})

	if !l.Running() {
		t.Fatal("layer not running after Start")
	}
	ds := l.Drawables()
	if len(ds) != 2 {
		t.Fatalf("Drawables len = %d, want 2", len(ds))
	}
	want := PixelBBox{MinX: 0, MinY: 0, MaxX: 20, MaxY: 20}
	if ds[0].Rect != want {
		t.Errorf("first drawable rect = %+v, want %+v", ds[0].Rect, want)
	}
	if ds[0].Fill != specs.Color {
		t.Errorf("fill = %+v, want specs color %+v", ds[0].Fill, specs.Color)
	}
}

func TestViewLayerDrawables_RowMajor(t *testing.T) {
	_, _, l := viewFixture(GridCoord{1, 0}, GridCoord{0, 1}, GridCoord{0, 0})

	ds := l.Drawables()
	if len(ds) != 3 {
		t.Fatalf("Drawables len = %d, want 3", len(ds))
	}
	wantX := []float64{0, 20, 0}
	wantY := []float64{0, 0, 20}
	for i, d := range ds {
		if d.Rect.MinX != wantX[i] || d.Rect.MinY != wantY[i] {
			t.Errorf("drawable %d at (%v, %v), want (%v, %v)",
				i, d.Rect.MinX, d.Rect.MinY, wantX[i], wantY[i])
		}
	}
}

func TestViewLayerHiddenPointsFiltered(t *testing.T) {
	_, m, l := viewFixture(GridCoord{0, 0}, GridCoord{1, 0})

	m.Remove(GridCoord{1, 0})
	l.HandleModelEvent(ModelEvent{Model: m, Coords: []GridCoord{{1, 0}}})
	l.Update()

	ds := l.Drawables()
	if len(ds) != 1 {
		t.Fatalf("Drawables len = %d, want 1 after removal", len(ds))
	}
	d, ok := l.shadowAt(GridCoord{1, 0})
	if !ok {
		t.Fatal("shadow dropped instead of hidden")
	}
	if !d.Params().Hidden {
		t.Error("removed point not marked hidden")
	}
}

func TestViewLayerWashedWhilePaused(t *testing.T) {
	specs, body := testSpecs()
	_, _, l := viewFixture(GridCoord{0, 0})

	l.Pause()
	l.Update()
	d, _ := l.shadowAt(GridCoord{0, 0})
	if d.Params().Fill != specs.Color.washed() {
		t.Errorf("paused fill = %+v, want washed %+v", d.Params().Fill, specs.Color.washed())
	}
	if d.Params().Outline != body.Color.washed() {
		t.Errorf("paused outline = %+v, want washed %+v", d.Params().Outline, body.Color.washed())
	}

	l.Resume()
	l.Update()
	if d.Params().Fill != specs.Color {
		t.Errorf("resumed fill = %+v, want %+v", d.Params().Fill, specs.Color)
	}
}

func TestViewLayerSetModel(t *testing.T) {
	specs, body := testSpecs()
	_, _, l := viewFixture(GridCoord{0, 0})

	next := NewModel()
	next.Add(NewParticle(GridCoord{3, 3}, specs, body))
	l.SetModel(next)
	l.Update()

	if l.Model() != next {
		t.Fatal("SetModel did not swap the model")
	}
	ds := l.Drawables()
	if len(ds) != 2 {
		t.Fatalf("Drawables len = %d, want 2 (old point blank, new point drawn)", len(ds))
	}
	// The old point stays tracked but now draws blank.
	old, _ := l.shadowAt(GridCoord{0, 0})
	if old.InModel() {
		t.Error("old point still holds a particle copy")
	}
	if old.Params().Fill != ColorBlankFill {
		t.Errorf("old point fill = %+v, want blank %+v", old.Params().Fill, ColorBlankFill)
	}
	added, ok := l.shadowAt(GridCoord{3, 3})
	if !ok || !added.InModel() {
		t.Error("new model's point did not gain a shadow")
	}
}

func TestViewLayerHandleModelEvent(t *testing.T) {
	specs, body := testSpecs()
	_, m, l := viewFixture(GridCoord{0, 0})

	// Occupancy added to the model joins the tracked set.
	m.Add(NewParticle(GridCoord{2, 2}, specs, body))
	l.HandleModelEvent(ModelEvent{Model: m, Coords: []GridCoord{{2, 2}}})
	l.Update()
	if len(l.Drawables()) != 2 {
		t.Errorf("Drawables len = %d, want 2 after model add", len(l.Drawables()))
	}

	// Events for another model are ignored.
	stranger := NewModel()
	stranger.Add(NewParticle(GridCoord{5, 5}, specs, body))
	l.HandleModelEvent(ModelEvent{Model: stranger, Coords: []GridCoord{{5, 5}}})
	l.Update()
	if _, ok := l.shadowAt(GridCoord{5, 5}); ok {
		t.Error("event for a foreign model changed the layer")
	}
}

func TestViewLayerCoordinates(t *testing.T) {
	specs, body := testSpecs()
	_, m, l := viewFixture(GridCoord{0, 0})

	m.Add(NewParticle(GridCoord{1, 1}, specs, body))
	l.HandleModelEvent(ModelEvent{Model: m, Coords: []GridCoord{{1, 1}}})

	if n := len(l.StartCoordinates()); n != 1 {
		t.Errorf("StartCoordinates len = %d, want the frozen 1", n)
	}
	if n := len(l.FinishCoordinates()); n != 2 {
		t.Errorf("FinishCoordinates len = %d, want 2", n)
	}
}

func TestViewLayerMergePanics(t *testing.T) {
	_, _, l := viewFixture(GridCoord{0, 0})
	defer func() {
		if recover() == nil {
			t.Error("Merge into a view layer should panic")
		}
	}()
	l.Merge(l)
}

func TestViewLayerCleanSkipsUpdate(t *testing.T) {
	_, _, l := viewFixture(GridCoord{0, 0})
	l.Finish()
	l.Clean()
	if !l.Cleaned() {
		t.Fatal("layer not cleaned")
	}
	l.Update() // must not touch the released shadow maps
}

func TestViewAutoFitsAndCenters(t *testing.T) {
	specs, body := testSpecs()
	m := NewModel()
	m.Add(NewParticle(GridCoord{0, 0}, specs, body))
	m.Add(NewParticle(GridCoord{1, 0}, specs, body))

	c := NewCanvas(m, ModeView)
	c.Resize(400, 300)
	for i := 0; i < 4; i++ {
		c.Update(1.0 / 60)
	}

	// Two cells plus the 10-cell padding ring is 22x21 cells; the 300px
	// viewport height is the tight side, so zoom settles at 300/420.
	wantZoom := 300.0 / 420.0
	if !approxEqual(c.Zoom(), wantZoom, epsilon) {
		t.Errorf("zoom = %v, want %v", c.Zoom(), wantZoom)
	}
	d := c.Diameter()
	if !approxEqual(c.Origin().X, d-200, epsilon) {
		t.Errorf("origin X = %v, want %v", c.Origin().X, d-200)
	}
	if !approxEqual(c.Origin().Y, d/2-150, epsilon) {
		t.Errorf("origin Y = %v, want %v", c.Origin().Y, d/2-150)
	}
}
