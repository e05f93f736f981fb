package rbdesign

// Model is the authoritative particle assembly: at most one particle per grid
// coordinate. It is a passive container; edit layers mutate it and announce
// the touched coordinates through their [Hub].
type Model struct {
	particles map[GridCoord]*Particle
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{particles: make(map[GridCoord]*Particle)}
}

// Len returns the number of particles in the model.
func (m *Model) Len() int { return len(m.particles) }

// Has reports whether a particle occupies c.
func (m *Model) Has(c GridCoord) bool {
	_, ok := m.particles[c]
	return ok
}

// At returns the particle at c. The pointer is the model's own particle:
// callers that mutate it are editing the model.
func (m *Model) At(c GridCoord) (*Particle, bool) {
	p, ok := m.particles[c]
	return p, ok
}

// Add inserts p at its own coordinate. When a particle already occupies the
// coordinate, its specs and body are overwritten in place and its identity is
// preserved, so references held elsewhere keep pointing at the live particle.
func (m *Model) Add(p *Particle) {
	if p == nil {
		panic("rbdesign: Add nil particle")
	}
	if existing, ok := m.particles[p.Coord()]; ok {
		existing.SetSpecs(p.Specs())
		existing.SetBody(p.Body())
		return
	}
	m.particles[p.Coord()] = p
}

// Set places p at c, replacing any particle already there. Unlike [Model.Add]
// the new identity wins. Panics when p is nil; use [Model.Remove] to clear a
// coordinate.
func (m *Model) Set(c GridCoord, p *Particle) {
	if p == nil {
		panic("rbdesign: Set nil particle")
	}
	delete(m.particles, c)
	p.SetCoord(c)
	m.particles[c] = p
}

// Remove deletes the particle at c; a no-op when the coordinate is empty.
func (m *Model) Remove(c GridCoord) {
	delete(m.particles, c)
}

// ReplaceAll discards the model's contents and installs the given particles,
// keyed by their own coordinates. Later duplicates win.
func (m *Model) ReplaceAll(particles []*Particle) {
	m.particles = make(map[GridCoord]*Particle, len(particles))
	for _, p := range particles {
		m.particles[p.Coord()] = p
	}
}

// Coords returns the occupied grid coordinates in unspecified order.
func (m *Model) Coords() []GridCoord {
	coords := make([]GridCoord, 0, len(m.particles))
	for c := range m.particles {
		coords = append(coords, c)
	}
	return coords
}

// Particles returns the model's particles in unspecified order.
func (m *Model) Particles() []*Particle {
	ps := make([]*Particle, 0, len(m.particles))
	for _, p := range m.particles {
		ps = append(ps, p)
	}
	return ps
}

// BBox returns the bounding box of the occupied coordinates, padded on each
// side. ok is false for an empty model.
func (m *Model) BBox(padding int) (GridBBox, bool) {
	return BBoxOf(m.Coords(), padding)
}

// Clone returns a deep copy of the model. Particles are copied; their specs
// and bodies stay shared, matching [Particle.Clone].
func (m *Model) Clone() *Model {
	c := &Model{particles: make(map[GridCoord]*Particle, len(m.particles))}
	for coord, p := range m.particles {
		c.particles[coord] = p.Clone()
	}
	return c
}
