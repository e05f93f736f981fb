package rbdesign

// SelectLayer extends ViewLayer with a selection of drawn particles. The
// selection is a set of shadows rather than coordinates, so it follows
// particles through operations that move them. Selected particles draw with a
// heavier outline.
//
// Pointer bindings: a left press selects the pressed particle (if it was not
// already selected). A right press replaces the selection; with Shift it
// grows a box selection to contain the pressed particle, with Ctrl it selects
// the pressed particle's whole body (plus Shift to append).
type SelectLayer struct {
	ViewLayer
	selection map[*DrawnParticle]struct{}
}

// NewSelectLayer returns a selection-capable display layer over model's
// occupied points.
func NewSelectLayer(canvas *Canvas, model *Model, mode ViewMode) *SelectLayer {
	l := &SelectLayer{}
	var coords []GridCoord
	if model != nil {
		coords = model.Coords()
	}
	l.initSelect(l, canvas, model, coords, mode)
	return l
}

func (l *SelectLayer) initSelect(owner Layer, canvas *Canvas, model *Model, coords []GridCoord, mode ViewMode) {
	l.initView(owner, canvas, model, coords, mode)
	l.selection = make(map[*DrawnParticle]struct{})
	l.styleShadow = l.styleSelected
}

// Kind names the layer's operation.
func (l *SelectLayer) Kind() string { return "select" }

// Start displays the layer with every tracked point selected.
func (l *SelectLayer) Start() {
	l.ViewLayer.Start()
	l.selectAll()
}

// Clean releases the layer's display state.
func (l *SelectLayer) Clean() {
	l.ViewLayer.Clean()
	l.selection = nil
}

// Selection returns the selected shadows in unspecified order.
func (l *SelectLayer) Selection() []*DrawnParticle {
	ds := make([]*DrawnParticle, 0, len(l.selection))
	for d := range l.selection {
		ds = append(ds, d)
	}
	return ds
}

// SelectionCoords returns the grid coordinates of the selected shadows.
func (l *SelectLayer) SelectionCoords() []GridCoord {
	cs := make([]GridCoord, 0, len(l.selection))
	for d := range l.selection {
		cs = append(cs, d.Coord())
	}
	return cs
}

// selected reports whether the shadow is selected.
func (l *SelectLayer) selected(d *DrawnParticle) bool {
	_, ok := l.selection[d]
	return ok
}

// coordSelected reports whether a drawn, selected shadow sits at c.
func (l *SelectLayer) coordSelected(c GridCoord) bool {
	d, ok := l.shadowAt(c)
	return ok && l.selected(d)
}

// setSelection replaces the selection, marking the symmetric difference of
// the old and new sets dirty so the outline change is redrawn.
func (l *SelectLayer) setSelection(sel map[*DrawnParticle]struct{}) {
	for d := range l.selection {
		if _, ok := sel[d]; !ok {
			l.markDirty(d)
		}
	}
	for d := range sel {
		if _, ok := l.selection[d]; !ok {
			l.markDirty(d)
		}
	}
	l.selection = sel
}

// newSelection selects the given shadows, replacing the current selection or
// appending to it.
func (l *SelectLayer) newSelection(ds []*DrawnParticle, appendTo bool) {
	sel := make(map[*DrawnParticle]struct{}, len(ds))
	if appendTo {
		for d := range l.selection {
			sel[d] = struct{}{}
		}
	}
	for _, d := range ds {
		sel[d] = struct{}{}
	}
	l.setSelection(sel)
}

// removeSelection deselects the given shadows.
func (l *SelectLayer) removeSelection(ds []*DrawnParticle) {
	sel := make(map[*DrawnParticle]struct{}, len(l.selection))
	for d := range l.selection {
		sel[d] = struct{}{}
	}
	for _, d := range ds {
		delete(sel, d)
	}
	l.setSelection(sel)
}

// boxSelection selects every visible shadow inside the bounding box of the
// given shadows' coordinates.
func (l *SelectLayer) boxSelection(ds []*DrawnParticle, appendTo bool) {
	coords := make([]GridCoord, len(ds))
	for i, d := range ds {
		coords[i] = d.Coord()
	}
	box, ok := BBoxOf(coords, 0)
	if !ok {
		l.newSelection(nil, appendTo)
		return
	}
	var sel []*DrawnParticle
	for _, c := range CoordsIn(box) {
		if l.pointHidden(c) {
			continue
		}
		if d, ok := l.shadowAt(c); ok {
			sel = append(sel, d)
		}
	}
	l.newSelection(sel, appendTo)
}

// bodySelection selects every shadow whose particle belongs to the same body
// as d's. A particle with no body selects only itself.
func (l *SelectLayer) bodySelection(d *DrawnParticle, appendTo bool) {
	body := d.ModelParticle().Body()
	if body == nil {
		l.newSelection([]*DrawnParticle{d}, appendTo)
		return
	}
	var sel []*DrawnParticle
	for _, s := range l.shadows {
		if s.InModel() && s.ModelParticle().Body() == body {
			sel = append(sel, s)
		}
	}
	l.newSelection(sel, appendTo)
}

// toggleSelection flips the selection state of each given shadow.
func (l *SelectLayer) toggleSelection(ds []*DrawnParticle) {
	sel := make(map[*DrawnParticle]struct{}, len(l.selection)+len(ds))
	for d := range l.selection {
		sel[d] = struct{}{}
	}
	for _, d := range ds {
		if _, ok := sel[d]; ok {
			delete(sel, d)
		} else {
			sel[d] = struct{}{}
		}
	}
	l.setSelection(sel)
}

// clearSelection deselects everything.
func (l *SelectLayer) clearSelection() {
	l.newSelection(nil, false)
}

// selectAll selects the shadow at every tracked point.
func (l *SelectLayer) selectAll() {
	l.addShadowsAt(l.Points())
	sel := make([]*DrawnParticle, 0, len(l.points))
	for c := range l.points {
		if d, ok := l.shadowAt(c); ok {
			sel = append(sel, d)
		}
	}
	l.newSelection(sel, false)
	l.requestUpdate()
}

// removeParticleAt removes the particle at c from the model and deselects its
// shadow.
func (l *SelectLayer) removeParticleAt(c GridCoord) {
	l.ViewLayer.removeParticleAt(c)
	if d, ok := l.shadowAt(c); ok && l.selected(d) {
		l.removeSelection([]*DrawnParticle{d})
	}
}

// removeParticlesAt removes the particles at every given coordinate.
func (l *SelectLayer) removeParticlesAt(coords []GridCoord) {
	for c := range coordSet(coords) {
		l.removeParticleAt(c)
	}
}

// styleSelected thickens the outline of selected shadows.
func (l *SelectLayer) styleSelected(d *DrawnParticle, params *DrawParams) {
	if l.selected(d) {
		params.Width = 4
	}
}

// Drawables returns the visible shadows' draw parameters, selected shadows
// last so their heavier outline draws over neighbors.
func (l *SelectLayer) Drawables() []DrawParams {
	rest := make([]*DrawnParticle, 0, len(l.shadows))
	sel := make([]*DrawnParticle, 0, len(l.selection))
	for _, d := range l.shadows {
		if l.selected(d) {
			sel = append(sel, d)
		} else {
			rest = append(rest, d)
		}
	}
	sortShadows(rest)
	sortShadows(sel)
	out := make([]DrawParams, 0, len(rest)+len(sel))
	for _, d := range rest {
		if !d.Params().Hidden {
			out = append(out, d.Params())
		}
	}
	for _, d := range sel {
		if !d.Params().Hidden {
			out = append(out, d.Params())
		}
	}
	return out
}

// HandlePress updates the selection from a button press.
func (l *SelectLayer) HandlePress(ev PointerEvent) {
	c := PixelToCoord(ev.Pos, l.canvas.Diameter())
	switch ev.Button {
	case MouseButtonLeft:
		l.handleLeftPress(c)
	case MouseButtonRight:
		l.handleRightPress(c, ev.Mods)
	}
}

func (l *SelectLayer) handleLeftPress(c GridCoord) {
	if l.pointHidden(c) {
		l.clearSelection()
	} else if d, ok := l.shadowAt(c); ok && !l.selected(d) {
		l.newSelection([]*DrawnParticle{d}, false)
	}
	l.requestUpdate()
}

func (l *SelectLayer) handleRightPress(c GridCoord, mods KeyModifiers) {
	if l.pointHidden(c) {
		l.clearSelection()
	} else if d, ok := l.shadowAt(c); ok {
		switch {
		case mods&ModCtrl != 0:
			l.bodySelection(d, mods&ModShift != 0)
		case mods&ModShift != 0:
			l.boxSelection(append(l.Selection(), d), false)
		default:
			l.newSelection([]*DrawnParticle{d}, false)
		}
	}
	l.requestUpdate()
}
