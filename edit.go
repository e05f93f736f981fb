package rbdesign

// EditLayer extends SelectLayer with model editing. A left click paints the
// selection with the active brush, a left drag starts a move, and key
// commands spawn the other operation layers over the current selection.
//
// Key bindings (while running): Return merges the layer into its parent and
// Escape cancels it. Ctrl+A selects all, Ctrl+C copies the selection to the
// clipboard, Ctrl+X cuts it into a child layer, Ctrl+V pastes the clipboard,
// and Ctrl+R rotates a quarter turn (Shift reverses direction).
type EditLayer struct {
	SelectLayer
	brush     *Brush
	clipboard *Clipboard

	// background marks the canvas's bottom edit layer. It is never merged or
	// canceled, every point is visible, and updates backfill the scrollable
	// region so blank cells can be painted.
	background bool
}

// NewEditLayer returns an editing layer over model's occupied points.
func NewEditLayer(canvas *Canvas, model *Model, mode ViewMode) *EditLayer {
	l := &EditLayer{}
	var coords []GridCoord
	if model != nil {
		coords = model.Coords()
	}
	l.initEdit(l, canvas, model, coords, mode)
	return l
}

// newBackgroundLayer returns the bottom layer of an editing canvas.
func newBackgroundLayer(canvas *Canvas, model *Model) *EditLayer {
	l := &EditLayer{}
	var coords []GridCoord
	if model != nil {
		coords = model.Coords()
	}
	l.initEdit(l, canvas, model, coords, ViewScroll)
	l.background = true
	l.allVisible = true
	l.backfillScroll = true
	return l
}

// newEditChild returns the child layer a cut spawns: an editing layer over a
// private model of the cut particles.
func newEditChild(canvas *Canvas, model *Model, coords []GridCoord, brush *Brush) *EditLayer {
	l := &EditLayer{}
	l.initEdit(l, canvas, model, coords, ViewNone)
	l.brush = brush
	return l
}

func (l *EditLayer) initEdit(owner Layer, canvas *Canvas, model *Model, coords []GridCoord, mode ViewMode) {
	l.initSelect(owner, canvas, model, coords, mode)
}

// Kind names the layer's operation.
func (l *EditLayer) Kind() string {
	if l.background {
		return "background"
	}
	return "edit"
}

// Brush returns the layer's active brush; nil is the eraser.
func (l *EditLayer) Brush() *Brush { return l.brush }

// SetBrush replaces the layer's active brush without touching the rest of the
// canvas. Use [Canvas.SetBrush] to change every layer at once.
func (l *EditLayer) SetBrush(b *Brush) { l.brush = b }

func (l *EditLayer) handleBrushEvent(ev BrushEvent) {
	l.brush = ev.Brush
}

func (l *EditLayer) handleClipboardEvent(ev ClipboardEvent) {
	l.clipboard = ev.Clipboard
}

// Merge folds a finished child operation into this layer: the child's start
// points are cleared, its finished particles are copied in, and its selection
// becomes this layer's selection. Emits a single model event covering every
// touched coordinate.
func (l *EditLayer) Merge(child Layer) {
	start := child.StartCoordinates()
	finish := child.FinishCoordinates()
	dirty := coordSet(start)
	for _, c := range finish {
		dirty[c] = struct{}{}
	}

	l.removeParticlesAt(start)
	for _, c := range finish {
		l.points[c] = struct{}{}
	}
	childModel := child.Model()
	for _, c := range finish {
		var mp *Particle
		if childModel != nil {
			mp, _ = childModel.At(c)
		}
		l.setParticleAt(c, mp)
	}

	if sel, ok := child.(Selector); ok {
		selCoords := sel.SelectionCoords()
		for _, c := range selCoords {
			dirty[c] = struct{}{}
		}
		l.addShadowsAt(selCoords)
		newSel := make([]*DrawnParticle, 0, len(selCoords))
		for _, c := range selCoords {
			if d, ok := l.shadowAt(c); ok {
				newSel = append(newSel, d)
			}
		}
		l.newSelection(newSel, false)
	}

	l.canvas.hub.EmitModel(ModelEvent{Model: l.model, Coords: coordSlice(dirty)})
}

// applyBrush paints the given shadows' model cells with the active brush and
// emits one model event for the batch. Redrawing waits for the next update.
func (l *EditLayer) applyBrush(ds []*DrawnParticle) {
	coords := make([]GridCoord, len(ds))
	for i, d := range ds {
		coords[i] = d.Coord()
		l.brush.applyTo(l.model, d.Coord())
	}
	l.markDirty(ds...)
	l.canvas.hub.EmitModel(ModelEvent{Model: l.model, Coords: coords})
}

// HandleClick paints the selection with the active brush. Clicking an
// unselected particle first replaces the selection with it.
func (l *EditLayer) HandleClick(ev PointerEvent) {
	if ev.Button != MouseButtonLeft {
		return
	}
	c := PixelToCoord(ev.Pos, l.canvas.Diameter())
	if l.pointHidden(c) {
		return
	}
	d, ok := l.shadowAt(c)
	if !ok {
		return
	}
	if !l.selected(d) {
		l.newSelection([]*DrawnParticle{d}, false)
	}
	l.applyBrush(l.Selection())
	l.requestUpdate()
}

// HandleDragStart lifts the operation particles into a move layer that
// follows the rest of the drag.
func (l *EditLayer) HandleDragStart(ev DragEvent) {
	opModel, opCoords := l.operationParticles()
	l.canvas.StartLayer(NewMoveLayer(l.canvas, opModel, opCoords, ev.Start))
}

// HandleDrag ignores drag motion: the move child spawned on drag start
// receives it as the new top layer. Motion after a mid-drag cancel lands
// here and is dropped.
func (l *EditLayer) HandleDrag(ev DragEvent) {}

// HandleDragEnd ignores the release for the same reason as HandleDrag.
func (l *EditLayer) HandleDragEnd(ev DragEvent) {}

// HandleKey dispatches the editing key commands.
func (l *EditLayer) HandleKey(ev KeyEvent) {
	switch {
	case ev.Key == KeyReturn:
		if !l.background {
			l.canvas.MergeTopLayer()
		}
	case ev.Key == KeyEscape:
		if !l.background {
			l.canvas.CancelTopLayer()
		}
	case ev.Key == KeyA && ev.Mods&ModCtrl != 0:
		l.handleSelectAll()
	case ev.Key == KeyC && ev.Mods&ModCtrl != 0:
		l.handleCopy()
	case ev.Key == KeyX && ev.Mods&ModCtrl != 0:
		l.handleCut()
	case ev.Key == KeyV && ev.Mods&ModCtrl != 0:
		l.handlePaste()
	case ev.Key == KeyR && ev.Mods&ModCtrl != 0:
		l.handleRotate(ev.Mods)
	}
}

// handleSelectAll selects every tracked point. Background layers track the
// whole scrollable region, so they select the model's occupied points
// instead.
func (l *EditLayer) handleSelectAll() {
	if !l.background {
		l.selectAll()
		return
	}
	if l.model == nil {
		return
	}
	coords := l.model.Coords()
	l.addShadowsAt(coords)
	sel := make([]*DrawnParticle, 0, len(coords))
	for _, c := range coords {
		if d, ok := l.shadowAt(c); ok {
			sel = append(sel, d)
		}
	}
	l.newSelection(sel, false)
	l.requestUpdate()
}

// handleCopy publishes the operation particles as the shared clipboard.
// Requires a selection.
func (l *EditLayer) handleCopy() {
	if len(l.selection) == 0 {
		return
	}
	opModel, opCoords := l.operationParticles()
	l.canvas.hub.EmitClipboard(ClipboardEvent{
		Clipboard: &Clipboard{Model: opModel, Coords: opCoords},
	})
}

// handleCut lifts the selection into a child editing layer. The particles
// leave this layer's model when the child merges or reappear when it cancels;
// the clipboard is untouched.
func (l *EditLayer) handleCut() {
	if len(l.selection) == 0 {
		return
	}
	opModel, opCoords := l.operationParticles()
	l.canvas.StartLayer(newEditChild(l.canvas, opModel, opCoords, l.brush))
}

// handlePaste starts a paste layer over a private copy of the clipboard.
func (l *EditLayer) handlePaste() {
	if l.clipboard == nil {
		return
	}
	cb := l.clipboard.Clone()
	child := NewPasteLayer(l.canvas, cb.Model, cb.Coords)
	child.brush = l.brush
	l.canvas.StartLayer(child)
}

// handleRotate starts a rotate layer over the operation particles: a quarter
// turn counterclockwise, or clockwise with Shift held.
func (l *EditLayer) handleRotate(mods KeyModifiers) {
	steps := 1
	if mods&ModShift != 0 {
		steps = -1
	}
	opModel, opCoords := l.operationParticles()
	child := NewRotateLayer(l.canvas, opModel, opCoords, steps)
	child.brush = l.brush
	l.canvas.StartLayer(child)
}

// operationParticles captures what an operation should act on: the selection
// when there is one, the whole model otherwise. The returned model holds
// private copies; the coordinates include selected blank points.
func (l *EditLayer) operationParticles() (*Model, []GridCoord) {
	m := NewModel()
	var coords []GridCoord
	switch {
	case len(l.selection) > 0:
		coords = make([]GridCoord, 0, len(l.selection))
		for d := range l.selection {
			if d.InModel() {
				m.Add(d.ModelParticle().Clone())
			}
			coords = append(coords, d.Coord())
		}
	case l.model != nil:
		for _, p := range l.model.Particles() {
			m.Add(p.Clone())
		}
		if l.background {
			coords = m.Coords()
		} else {
			coords = l.Points()
		}
	}
	return m, coords
}
