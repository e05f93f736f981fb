package rbdesign

import "math"

// RotateLayer rotates its particles a quarter turn at a time about the center
// of their bounding box. The rotation is applied when the layer starts; being
// a full editing layer, the result can then be painted, moved, or rotated
// again before Return merges it into the parent.
type RotateLayer struct {
	EditLayer
	steps int // quarter turns counterclockwise; negative rotates clockwise
}

// NewRotateLayer returns a rotate layer over a private model of the particles
// being rotated.
func NewRotateLayer(canvas *Canvas, model *Model, coords []GridCoord, steps int) *RotateLayer {
	l := &RotateLayer{}
	l.initEdit(l, canvas, model, coords, ViewNone)
	l.steps = steps
	return l
}

// Kind names the layer's operation.
func (l *RotateLayer) Kind() string { return "rotate" }

// SetModel panics: a rotate layer's model is fixed at construction.
func (l *RotateLayer) SetModel(m *Model) {
	panic("rbdesign: SetModel on rotate layer")
}

// Start displays the layer, then rotates its particles in place.
func (l *RotateLayer) Start() {
	l.EditLayer.Start()
	l.rotate()
	l.requestUpdate()
}

// rotate relocates every tracked point about the pixel center of the layer's
// bounding box, carrying particles and selection along.
func (l *RotateLayer) rotate() {
	points := l.Points()
	box, ok := BBoxOf(points, 0)
	if !ok {
		return
	}
	diameter := l.canvas.Diameter()
	pb := PixelBBoxOf(box, diameter)
	centerPx := Point{
		X: math.Trunc((pb.MinX + pb.MaxX) / 2),
		Y: math.Trunc((pb.MinY + pb.MaxY) / 2),
	}
	center := PixelToCoord(centerPx, diameter)
	mapping := RotateCoords(points, center, l.steps)

	oldParticles := make(map[GridCoord]*Particle, len(points))
	oldSelected := make(map[GridCoord]bool, len(points))
	for _, c := range points {
		if d, ok := l.shadowAt(c); ok {
			oldParticles[c] = d.ModelParticle()
			oldSelected[c] = l.selected(d)
		}
	}

	l.removeParticlesAt(points)
	for oldC, newC := range mapping {
		l.setParticleAt(newC, oldParticles[oldC])
		if oldSelected[oldC] {
			if d, ok := l.shadowAt(newC); ok {
				l.newSelection([]*DrawnParticle{d}, true)
			}
		}
	}
}
