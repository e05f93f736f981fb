package rbdesign

// PasteLayer drops a private copy of the clipboard onto the canvas. The
// pasted particles arrive selected, so they can be moved, painted, or rotated
// before Return merges them into the parent. Its start coordinates are empty:
// merging adds the pasted particles without clearing anything underneath
// (except where they land).
type PasteLayer struct {
	EditLayer
}

// NewPasteLayer returns a paste layer over a private clipboard copy.
func NewPasteLayer(canvas *Canvas, model *Model, coords []GridCoord) *PasteLayer {
	l := &PasteLayer{}
	l.initEdit(l, canvas, model, coords, ViewNone)
	return l
}

// Kind names the layer's operation.
func (l *PasteLayer) Kind() string { return "paste" }

// SetModel panics: a paste layer's model is fixed at construction.
func (l *PasteLayer) SetModel(m *Model) {
	panic("rbdesign: SetModel on paste layer")
}

// StartCoordinates returns nothing: a paste brings new particles, so the
// parent has nothing to clear when it merges.
func (l *PasteLayer) StartCoordinates() []GridCoord { return nil }
