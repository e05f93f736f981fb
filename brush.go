package rbdesign

// Brush is what painting applies to each painted grid point. Specs and Body
// are each optional; what a stroke does is derived from which are set:
//
//   - both set: create. Empty points gain a particle; existing particles are
//     retagged.
//   - one set: modify. Existing particles have just that field retagged;
//     empty points are left alone.
//
// A nil *Brush is the eraser.
type Brush struct {
	Specs *ParticleSpecs
	Body  *BodySpecs
}

// creates reports whether painting adds particles to empty points.
func (b *Brush) creates() bool {
	return b.Specs != nil && b.Body != nil
}

// applyTo paints a single grid point of m: erase when the brush is nil, retag
// the set fields in place when a particle is present, create when both fields
// are set and the point is empty.
func (b *Brush) applyTo(m *Model, c GridCoord) {
	if b == nil {
		m.Remove(c)
		return
	}
	if p, ok := m.At(c); ok {
		if b.Specs != nil {
			p.SetSpecs(b.Specs)
		}
		if b.Body != nil {
			p.SetBody(b.Body)
		}
		return
	}
	if b.creates() {
		m.Add(NewParticle(c, b.Specs, b.Body))
	}
}
