package rbdesign

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// rotateFixture returns a started rotate layer over particles A at (0,0) and
// B at (2,0), both selected, plus the backing canvas.
func rotateFixture(t *testing.T, steps int) (*Canvas, *RotateLayer) {
	t.Helper()
	_, body := testSpecs()
	m := NewModel()
	m.Add(NewParticle(GridCoord{0, 0}, NewParticleSpecs("A", Color{R: 1, A: 1}), body))
	m.Add(NewParticle(GridCoord{2, 0}, NewParticleSpecs("B", Color{B: 1, A: 1}), body))
	canvas := NewCanvas(NewModel(), ModeView)
	canvas.Resize(400, 300)
	l := NewRotateLayer(canvas, m, m.Coords(), steps)
	l.Start()
	l.Update()
	return canvas, l
}

func TestRotateLayerQuarterTurnCCW(t *testing.T) {
	// Points (0,0) and (2,0) span the pixel box (0,0)-(60,20); its truncated
	// center (30,10) lies in cell (1,0), the rotation basepoint. One CCW turn
	// maps (x,y) to (cx+(y-cy), cy-(x-cx)).
	_, l := rotateFixture(t, 1)

	want := map[GridCoord]cellTag{
		{1, 1}:  {Specs: "A", Body: 0},
		{1, -1}: {Specs: "B", Body: 0},
	}
	if diff := cmp.Diff(want, modelSnapshot(l.Model())); diff != "" {
		t.Errorf("model after CCW quarter turn (-want +got):\n%s", diff)
	}
}

func TestRotateLayerQuarterTurnCW(t *testing.T) {
	_, l := rotateFixture(t, -1)

	want := map[GridCoord]cellTag{
		{1, -1}: {Specs: "A", Body: 0},
		{1, 1}:  {Specs: "B", Body: 0},
	}
	if diff := cmp.Diff(want, modelSnapshot(l.Model())); diff != "" {
		t.Errorf("model after CW quarter turn (-want +got):\n%s", diff)
	}
}

func TestRotateLayerFourTurnsIdentity(t *testing.T) {
	_, l := rotateFixture(t, 4)

	want := map[GridCoord]cellTag{
		{0, 0}: {Specs: "A", Body: 0},
		{2, 0}: {Specs: "B", Body: 0},
	}
	if diff := cmp.Diff(want, modelSnapshot(l.Model())); diff != "" {
		t.Errorf("model after four turns (-want +got):\n%s", diff)
	}
}

func TestRotateLayerCarriesSelection(t *testing.T) {
	_, l := rotateFixture(t, 1)

	cs := l.SelectionCoords()
	if len(cs) != 2 || !hasCoord(cs, GridCoord{1, 1}) || !hasCoord(cs, GridCoord{1, -1}) {
		t.Errorf("selection after rotate = %v, want the rotated coordinates", cs)
	}
}

func TestRotateThroughCanvasMergeAndCancel(t *testing.T) {
	specs, body := testSpecs()
	c, m := editFixture()
	c.SetBrush(&Brush{Specs: specs, Body: body})
	clickAt(c, GridCoord{0, 0}, MouseButtonLeft, 0)
	clickAt(c, GridCoord{2, 0}, MouseButtonLeft, 0)
	c.FeedKey(KeyA, ModCtrl)
	before := modelSnapshot(m)

	// Rotate and cancel: the canvas model must be exactly as before.
	c.FeedKey(KeyR, ModCtrl)
	c.Update(frameDt)
	c.FeedKey(KeyEscape, 0)
	if diff := cmp.Diff(before, modelSnapshot(m)); diff != "" {
		t.Fatalf("canceled rotate changed the model (-want +got):\n%s", diff)
	}

	// Rotate and merge: the canvas model holds the rotated coordinates.
	c.FeedKey(KeyA, ModCtrl)
	c.FeedKey(KeyR, ModCtrl)
	c.Update(frameDt)
	c.FeedKey(KeyReturn, 0)
	c.Update(frameDt)

	want := map[GridCoord]cellTag{
		{1, 1}:  {Specs: "A", Body: 0},
		{1, -1}: {Specs: "A", Body: 0},
	}
	if diff := cmp.Diff(want, modelSnapshot(m)); diff != "" {
		t.Errorf("merged rotate result (-want +got):\n%s", diff)
	}
}

func TestRotateLayerEmptyModel(t *testing.T) {
	canvas := NewCanvas(NewModel(), ModeView)
	l := NewRotateLayer(canvas, NewModel(), nil, 1)
	l.Start() // no points: the rotation is a no-op, not a panic
	if got := l.Model().Len(); got != 0 {
		t.Errorf("empty rotate produced %d particles", got)
	}
}

func TestRotateLayerSetModelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("SetModel on a rotate layer did not panic")
		}
	}()
	canvas := NewCanvas(NewModel(), ModeView)
	l := NewRotateLayer(canvas, NewModel(), nil, 1)
	l.SetModel(NewModel())
}
