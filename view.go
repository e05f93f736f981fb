package rbdesign

// ViewLayer displays the particles of a model without any editing. It is the
// base of every other layer: tracked grid points, one shadow per point, dirty
// bookkeeping, and the view-mode handling that keeps the scroll region and
// zoom in step with the model.
type ViewLayer struct {
	life
	owner  Layer // outermost layer, for update requests from embedded code
	canvas *Canvas
	model  *Model
	mode   ViewMode

	points  map[GridCoord]struct{}
	init    []GridCoord // points at construction, frozen
	shadows map[GridCoord]*DrawnParticle
	dirty   map[*DrawnParticle]struct{}

	// allVisible drops point hiding: background layers draw every tracked
	// point, blank or not.
	allVisible bool
	// backfillScroll makes scroll-mode updates track every point of the
	// scrollable region, not only the model's.
	backfillScroll bool

	// styleShadow, when set, adjusts the draw parameters computed for a
	// shadow (selection emphasis, move offsets).
	styleShadow func(*DrawnParticle, *DrawParams)
	// eachShadow, when set, replaces iteration over the layer's shadows for
	// layers that keep more than one sheet.
	eachShadow func(yield func(*DrawnParticle))
	// makeShadow, when set, replaces shadow creation for layers that draw
	// more than one shadow per point.
	makeShadow func(GridCoord) *DrawnParticle
}

// NewViewLayer returns a display layer over model's occupied points. The view
// mode controls how updates adjust the canvas: ViewAuto zooms to fit and
// centers, ViewScroll grows the scroll region, ViewNone leaves it alone.
func NewViewLayer(canvas *Canvas, model *Model, mode ViewMode) *ViewLayer {
	l := &ViewLayer{}
	var coords []GridCoord
	if model != nil {
		coords = model.Coords()
	}
	l.initView(l, canvas, model, coords, mode)
	return l
}

func (l *ViewLayer) initView(owner Layer, canvas *Canvas, model *Model, coords []GridCoord, mode ViewMode) {
	l.owner = owner
	l.canvas = canvas
	l.model = model
	l.mode = mode
	l.points = coordSet(coords)
	l.init = append([]GridCoord(nil), coords...)
	l.shadows = make(map[GridCoord]*DrawnParticle)
	l.dirty = make(map[*DrawnParticle]struct{})
}

// Kind names the layer's operation.
func (l *ViewLayer) Kind() string { return "view" }

// Model returns the model the layer displays.
func (l *ViewLayer) Model() *Model { return l.model }

// SetModel replaces the displayed model. The new model's points join the
// tracked set and every shadow is refreshed on the next update.
func (l *ViewLayer) SetModel(m *Model) {
	l.model = m
	if m != nil {
		for _, c := range m.Coords() {
			l.points[c] = struct{}{}
		}
	}
	if l.started && m != nil {
		l.addShadowsAt(l.Points())
		l.markAllDirty()
		l.requestUpdate()
	}
}

// Points returns the tracked grid points in unspecified order.
func (l *ViewLayer) Points() []GridCoord { return coordSlice(l.points) }

// Start displays the layer: a shadow for every tracked point, all dirty.
func (l *ViewLayer) Start() {
	l.started = true
	l.addShadowsAt(l.Points())
	l.markAllDirty()
	l.requestUpdate()
}

// Pause suspends the layer while a child runs. Every shadow is redrawn washed
// out.
func (l *ViewLayer) Pause() {
	l.paused = true
	l.markAllDirty()
	l.requestUpdate()
}

// Resume restores the layer after a child ends, redrawing at full strength.
func (l *ViewLayer) Resume() {
	l.paused = false
	l.markAllDirty()
	l.requestUpdate()
}

// Finish commits the operation. A plain view layer has nothing to commit.
func (l *ViewLayer) Finish() { l.finished = true }

// Cancel abandons the operation.
func (l *ViewLayer) Cancel() { l.canceled = true }

// Clean releases the layer's display state.
func (l *ViewLayer) Clean() {
	l.cleaned = true
	l.shadows = nil
	l.dirty = nil
}

// Merge panics: a view layer cannot absorb edits.
func (l *ViewLayer) Merge(child Layer) {
	panic("rbdesign: merge into view layer")
}

// StartCoordinates returns the points the layer was created over.
func (l *ViewLayer) StartCoordinates() []GridCoord { return l.init }

// FinishCoordinates returns the points holding the operation's result.
func (l *ViewLayer) FinishCoordinates() []GridCoord { return l.Points() }

// Update adjusts the view for the layer's mode, then redraws dirty shadows.
func (l *ViewLayer) Update() {
	if l.cleaned {
		return
	}
	l.updateView()
	l.updateParticles()
}

func (l *ViewLayer) updateView() {
	switch l.mode {
	case ViewAuto:
		l.updateViewAuto()
	case ViewScroll:
		l.updateViewScroll()
	case ViewNone:
	}
}

// updateViewAuto zooms so the whole model is visible and centers it. The fit
// is computed against the current zoom, so it converges over two updates.
func (l *ViewLayer) updateViewAuto() {
	fit := l.calcZoomFit()
	offset := l.calcCenteringOffset(fit)
	vis := l.canvas.VisibleBBox()
	l.canvas.SetZoom(l.canvas.Zoom() * fit)
	l.canvas.setScrollRegion(PixelBBox{
		MinX: offset.X,
		MinY: offset.Y,
		MaxX: offset.X + vis.Width(),
		MaxY: offset.Y + vis.Height(),
	})
}

// updateViewScroll grows the scroll region to cover the model and whatever is
// currently visible.
func (l *ViewLayer) updateViewScroll() {
	region := l.canvas.VisibleBBox()
	if mb, ok := l.modelPixelBBox(); ok {
		region = region.Union(mb)
	}
	l.canvas.setScrollRegion(region)

	if l.backfillScroll {
		box := CoordBBoxOfPixels(l.canvas.ScrollRegion(), l.canvas.Diameter())
		for _, c := range CoordsIn(box) {
			l.points[c] = struct{}{}
		}
		l.addShadowsAt(l.Points())
	}
}

// updateParticles redraws every dirty shadow and marks the layer clean.
func (l *ViewLayer) updateParticles() {
	for d := range l.dirty {
		l.updateShadow(d)
	}
	l.markClean()
}

// updateShadow refreshes one shadow from the model and recomputes its cached
// pixel position and draw parameters.
func (l *ViewLayer) updateShadow(d *DrawnParticle) {
	var mp *Particle
	if l.model != nil {
		mp, _ = l.model.At(d.Coord())
	}
	d.SetModelParticle(mp)
	d.setPixel(CoordToPixel(d.Coord(), l.canvas.Diameter()))
	d.setParams(l.particleParams(d))
}

// particleParams computes how a shadow draws right now: cell rectangle, fill
// from the particle kind (blank gray otherwise), outline from the body,
// washed toward white while the layer is not running.
func (l *ViewLayer) particleParams(d *DrawnParticle) DrawParams {
	diameter := l.canvas.Diameter()
	px := d.Pixel()
	params := DrawParams{
		Rect:    PixelBBox{MinX: px.X, MinY: px.Y, MaxX: px.X + diameter, MaxY: px.Y + diameter},
		Fill:    ColorBlankFill,
		Outline: ColorBlankOutline,
		Width:   2,
		Hidden:  l.pointHidden(d.Coord()),
	}
	if c, ok := d.ModelParticle().Color(); ok {
		params.Fill = c
	}
	if c, ok := d.ModelParticle().BodyColor(); ok {
		params.Outline = c
	}
	if !l.Running() {
		params.Fill = params.Fill.washed()
		params.Outline = params.Outline.washed()
	}
	if l.styleShadow != nil {
		l.styleShadow(d, &params)
	}
	return params
}

// Drawables returns the visible shadows' draw parameters, row-major.
func (l *ViewLayer) Drawables() []DrawParams {
	ds := make([]*DrawnParticle, 0, len(l.shadows))
	for _, d := range l.shadows {
		ds = append(ds, d)
	}
	sortShadows(ds)
	out := make([]DrawParams, 0, len(ds))
	for _, d := range ds {
		if !d.Params().Hidden {
			out = append(out, d.Params())
		}
	}
	return out
}

// --- Shadow bookkeeping ---

// shadowAt returns the shadow drawn at c.
func (l *ViewLayer) shadowAt(c GridCoord) (*DrawnParticle, bool) {
	d, ok := l.shadows[c]
	return d, ok
}

// addShadowAt draws a new shadow at c seeded from the model, and marks it
// dirty.
func (l *ViewLayer) addShadowAt(c GridCoord) *DrawnParticle {
	if l.makeShadow != nil {
		return l.makeShadow(c)
	}
	var mp *Particle
	if l.model != nil {
		mp, _ = l.model.At(c)
	}
	d := newShadow(c, mp)
	l.shadows[c] = d
	l.markDirty(d)
	return d
}

// addShadowsAt draws shadows for any of the given points not yet drawn and
// not hidden.
func (l *ViewLayer) addShadowsAt(coords []GridCoord) {
	for _, c := range coords {
		if _, ok := l.shadows[c]; !ok && !l.pointHidden(c) {
			l.addShadowAt(c)
		}
	}
}

// removeParticleAt removes the particle at c from the model and the point
// from the tracked set.
func (l *ViewLayer) removeParticleAt(c GridCoord) {
	l.model.Remove(c)
	delete(l.points, c)
}

// setParticleAt places a copy of p (nil erases) at c in both the shadow sheet
// and the model.
func (l *ViewLayer) setParticleAt(c GridCoord, p *Particle) {
	d, ok := l.shadows[c]
	if !ok {
		d = l.addShadowAt(c)
	}
	d.SetModelParticle(p)
	if d.InModel() {
		l.model.Set(c, d.ModelParticle().Clone())
	} else {
		l.model.Remove(c)
	}
	l.points[c] = struct{}{}
	l.markDirty(d)
}

// --- Dirty bookkeeping ---

// markDirty queues shadows for redraw on the next update.
func (l *ViewLayer) markDirty(ds ...*DrawnParticle) {
	for _, d := range ds {
		l.dirty[d] = struct{}{}
	}
}

// markAllDirty queues every shadow for redraw.
func (l *ViewLayer) markAllDirty() {
	if l.eachShadow != nil {
		l.eachShadow(func(d *DrawnParticle) {
			l.dirty[d] = struct{}{}
		})
		return
	}
	for _, d := range l.shadows {
		l.dirty[d] = struct{}{}
	}
}

// markClean drops the dirty queue after a redraw.
func (l *ViewLayer) markClean() {
	clear(l.dirty)
}

// dirtyCount reports the redraw backlog, for debug stats.
func (l *ViewLayer) dirtyCount() int { return len(l.dirty) }

// --- Point information ---

// pointInModel reports whether the model holds a particle at c.
func (l *ViewLayer) pointInModel(c GridCoord) bool {
	return l.model != nil && l.model.Has(c)
}

// pointHidden reports whether c is outside the layer's tracked points.
func (l *ViewLayer) pointHidden(c GridCoord) bool {
	if l.allVisible {
		return false
	}
	_, ok := l.points[c]
	return !ok
}

// modelPixelBBox returns the pixel box of the model plus the canvas padding;
// ok is false for an empty or missing model.
func (l *ViewLayer) modelPixelBBox() (PixelBBox, bool) {
	if l.model == nil {
		return PixelBBox{}, false
	}
	box, ok := l.model.BBox(0)
	if !ok {
		return PixelBBox{}, false
	}
	diameter := l.canvas.Diameter()
	pad := float64(l.canvas.Padding()) * diameter
	return PixelBBoxOf(box, diameter).Expand(pad), true
}

// calcZoomFit returns the factor that scales the model box to fill the
// viewport, or 1 with no model.
func (l *ViewLayer) calcZoomFit() float64 {
	mb, ok := l.modelPixelBBox()
	if !ok {
		return 1
	}
	vis := l.canvas.VisibleBBox()
	fitX := vis.Width() / mb.Width()
	fitY := vis.Height() / mb.Height()
	return min(fitX, fitY)
}

// calcCenteringOffset returns the scroll origin that centers the model in the
// viewport after the given zoom factor is applied.
func (l *ViewLayer) calcCenteringOffset(zoom float64) Point {
	mb, ok := l.modelPixelBBox()
	if !ok {
		return Point{}
	}
	vis := l.canvas.VisibleBBox()
	return Point{
		X: mb.MinX*zoom - (vis.Width()-mb.Width()*zoom)/2,
		Y: mb.MinY*zoom - (vis.Height()-mb.Height()*zoom)/2,
	}
}

// --- Event handlers ---

// HandleResize re-runs the view computation for the new viewport.
func (l *ViewLayer) HandleResize() {
	l.requestUpdate()
}

// HandleZoomChange redraws everything at the new cell diameter.
func (l *ViewLayer) HandleZoomChange() {
	l.markAllDirty()
	l.requestUpdate()
}

// HandleModelEvent re-syncs the tracked points with the model's occupancy at
// the touched coordinates and queues their redraw.
func (l *ViewLayer) HandleModelEvent(ev ModelEvent) {
	if l.model == nil || ev.Model != l.model {
		return
	}
	coords := ev.Coords
	if coords == nil {
		coords = l.Points()
	}
	for _, c := range coords {
		if l.model.Has(c) {
			l.points[c] = struct{}{}
		} else {
			delete(l.points, c)
		}
	}
	l.addShadowsAt(coords)
	for _, c := range coords {
		if d, ok := l.shadows[c]; ok {
			l.markDirty(d)
		}
	}
	l.requestUpdate()
}

// requestUpdate queues the outermost layer for an update on the next flush.
func (l *ViewLayer) requestUpdate() {
	l.canvas.requestUpdate(l.owner)
}
