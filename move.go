package rbdesign

// MoveLayer translates its particles by a pointer drag, snapping the offset
// to whole cells. It draws two shadows per point: the moving copy, offset by
// the drag, and a stationary one at the original cell that only shows while
// duplicating (Shift held). Releasing the pointer merges the layer, or
// cancels it if the drag never left the starting position; Escape cancels.
type MoveLayer struct {
	SelectLayer
	start       Point // press position, canvas pixels
	offset      Point // total drag offset, canvas pixels
	duplicating bool

	// stationary holds the second shadow sheet; the inherited shadow map is
	// the moving sheet. Keys stay at the original coordinates after Finish
	// mutates the moving shadows, so iterate values only.
	stationary map[GridCoord]*DrawnParticle
}

// NewMoveLayer returns a move layer over a private model of the particles
// being moved. start is the pointer press position in canvas pixels.
func NewMoveLayer(canvas *Canvas, model *Model, coords []GridCoord, start Point) *MoveLayer {
	l := &MoveLayer{}
	l.initSelect(l, canvas, model, coords, ViewNone)
	l.start = start
	l.stationary = make(map[GridCoord]*DrawnParticle)
	l.makeShadow = l.addMovePair
	l.eachShadow = l.eachMoveShadow
	l.styleShadow = l.styleMove
	return l
}

// Kind names the layer's operation.
func (l *MoveLayer) Kind() string { return "move" }

// SetModel panics: a move layer's model is fixed at construction.
func (l *MoveLayer) SetModel(m *Model) {
	panic("rbdesign: SetModel on move layer")
}

// Merge panics: operations cannot merge into a move layer.
func (l *MoveLayer) Merge(child Layer) {
	panic("rbdesign: merge into move layer")
}

// Clean releases the layer's display state.
func (l *MoveLayer) Clean() {
	l.SelectLayer.Clean()
	l.stationary = nil
}

// addMovePair creates the moving and stationary shadows for one point. The
// moving shadow carries the model particle; the stationary one starts blank
// and picks up the model particle on the first update.
func (l *MoveLayer) addMovePair(c GridCoord) *DrawnParticle {
	var mp *Particle
	if l.model != nil {
		mp, _ = l.model.At(c)
	}
	moving := newShadow(c, mp)
	stationary := newShadow(c, nil)
	l.shadows[c] = moving
	l.stationary[c] = stationary
	l.markDirty(moving, stationary)
	return moving
}

func (l *MoveLayer) eachMoveShadow(yield func(*DrawnParticle)) {
	for _, d := range l.shadows {
		yield(d)
	}
	for _, d := range l.stationary {
		yield(d)
	}
}

// isStationary reports whether d belongs to the stationary sheet.
func (l *MoveLayer) isStationary(d *DrawnParticle) bool {
	return l.stationary[d.Coord()] == d
}

// styleMove hides stationary shadows unless duplicating and offsets moving
// shadows by the snapped drag.
func (l *MoveLayer) styleMove(d *DrawnParticle, params *DrawParams) {
	l.styleSelected(d, params)
	if l.isStationary(d) {
		params.Hidden = !l.duplicating
		return
	}
	params.Hidden = false
	off := l.offsetRounded()
	params.Rect = params.Rect.Translate(off.X, off.Y)
}

// Finish commits the move into the layer's model: original cells are cleared
// (or restored, when duplicating) and each moving particle lands on the cell
// under its offset position. A moving blank landing on a particle erases it.
func (l *MoveLayer) Finish() {
	l.ViewLayer.Finish()

	offset := l.offsetRounded()

	for _, d := range l.stationary {
		if !l.duplicating || !d.InModel() {
			l.model.Remove(d.Coord())
		} else {
			l.model.Set(d.Coord(), d.ModelParticle().Clone())
		}
	}

	for _, d := range l.shadows {
		l.moveShadow(d, offset)
		if !d.InModel() {
			l.model.Remove(d.Coord())
		} else {
			l.model.Set(d.Coord(), d.ModelParticle().Clone())
		}
	}

	points := make(map[GridCoord]struct{}, len(l.shadows))
	if l.duplicating {
		points = l.points
	}
	for _, d := range l.shadows {
		points[d.Coord()] = struct{}{}
	}
	l.points = points

	l.requestUpdate()
}

// offsetRounded snaps the drag offset to whole cells: the difference between
// the cell origins under the drag's start and current positions.
func (l *MoveLayer) offsetRounded() Point {
	diameter := l.canvas.Diameter()
	final := l.start.Add(l.offset.X, l.offset.Y)
	startSnap := CoordToPixel(PixelToCoord(l.start, diameter), diameter)
	finalSnap := CoordToPixel(PixelToCoord(final, diameter), diameter)
	return Point{X: finalSnap.X - startSnap.X, Y: finalSnap.Y - startSnap.Y}
}

// moveShadow relocates a moving shadow to the cell under its offset pixel
// position.
func (l *MoveLayer) moveShadow(d *DrawnParticle, offset Point) {
	diameter := l.canvas.Diameter()
	pos := CoordToPixel(d.Coord(), diameter).Add(offset.X, offset.Y)
	d.SetCoord(PixelToCoord(pos, diameter))
}

// Drawables returns the stationary sheet below the moving sheet.
func (l *MoveLayer) Drawables() []DrawParams {
	stat := make([]*DrawnParticle, 0, len(l.stationary))
	for _, d := range l.stationary {
		stat = append(stat, d)
	}
	mov := make([]*DrawnParticle, 0, len(l.shadows))
	for _, d := range l.shadows {
		mov = append(mov, d)
	}
	sortShadows(stat)
	sortShadows(mov)
	out := make([]DrawParams, 0, len(stat)+len(mov))
	for _, d := range stat {
		if !d.Params().Hidden {
			out = append(out, d.Params())
		}
	}
	for _, d := range mov {
		if !d.Params().Hidden {
			out = append(out, d.Params())
		}
	}
	return out
}

// HandleDragStart follows the pointer like any other drag motion. The layer
// is pushed from the parent's drag start, so this only fires if a second
// gesture begins while the move is still the top layer.
func (l *MoveLayer) HandleDragStart(ev DragEvent) {
	l.HandleDrag(ev)
}

// HandleDrag follows the pointer, toggling duplication from the Shift state.
func (l *MoveLayer) HandleDrag(ev DragEvent) {
	l.offset = ev.Delta
	l.setDuplicating(ev.Mods&ModShift != 0)
	for _, d := range l.shadows {
		l.markDirty(d)
	}
	l.requestUpdate()
}

// HandleDragEnd merges the move, or cancels it when the pointer never moved.
func (l *MoveLayer) HandleDragEnd(ev DragEvent) {
	l.setDuplicating(ev.Mods&ModShift != 0)
	if l.offset == (Point{}) {
		l.canvas.CancelTopLayer()
	} else {
		l.canvas.MergeTopLayer()
	}
}

// HandleKey cancels on Escape; any other key re-reads the Shift state so
// duplication tracks presses and releases mid-drag.
func (l *MoveLayer) HandleKey(ev KeyEvent) {
	if ev.Key == KeyEscape {
		l.canvas.CancelTopLayer()
		return
	}
	l.setDuplicating(ev.Mods&ModShift != 0)
	l.requestUpdate()
}

func (l *MoveLayer) setDuplicating(dup bool) {
	if l.duplicating == dup {
		return
	}
	l.duplicating = dup
	for _, d := range l.stationary {
		l.markDirty(d)
	}
}
