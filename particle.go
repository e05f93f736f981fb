package rbdesign

// ParticleSpecs describes a particle kind shared by many particles. Specs are
// registered once on a [Design] and referenced by pointer; two particles are
// the same kind iff they point at the same ParticleSpecs.
type ParticleSpecs struct {
	Name  string
	Color Color
}

// NewParticleSpecs returns a named particle kind with the given fill color.
func NewParticleSpecs(name string, color Color) *ParticleSpecs {
	return &ParticleSpecs{Name: name, Color: color}
}

// BodySpecs describes a rigid body shared by the particles that belong to it.
// Like [ParticleSpecs], bodies are compared by pointer identity; Index is the
// body's position in its design's registry, used by the file formats.
type BodySpecs struct {
	Index int
	Color Color
}

// NewBodySpecs returns a body with the given registry index and outline color.
func NewBodySpecs(index int, color Color) *BodySpecs {
	return &BodySpecs{Index: index, Color: color}
}

// Particle is one grid cell of an assembly: a coordinate plus references to
// the shared specs that type it. Either reference may be nil.
type Particle struct {
	coord GridCoord
	specs *ParticleSpecs
	body  *BodySpecs
}

// NewParticle returns a particle at coord typed by the given specs.
func NewParticle(coord GridCoord, specs *ParticleSpecs, body *BodySpecs) *Particle {
	return &Particle{coord: coord, specs: specs, body: body}
}

// Coord returns the particle's grid coordinate.
func (p *Particle) Coord() GridCoord { return p.coord }

// SetCoord moves the particle to c. Callers that store particles keyed by
// coordinate ([Model]) must re-key themselves.
func (p *Particle) SetCoord(c GridCoord) { p.coord = c }

// Specs returns the particle kind, or nil.
func (p *Particle) Specs() *ParticleSpecs { return p.specs }

// SetSpecs retypes the particle.
func (p *Particle) SetSpecs(s *ParticleSpecs) { p.specs = s }

// Body returns the rigid body the particle belongs to, or nil.
func (p *Particle) Body() *BodySpecs { return p.body }

// SetBody reassigns the particle's body.
func (p *Particle) SetBody(b *BodySpecs) { p.body = b }

// Color returns the fill color from the particle's specs; ok is false when
// the particle has no specs.
func (p *Particle) Color() (Color, bool) {
	if p.specs == nil {
		return Color{}, false
	}
	return p.specs.Color, true
}

// BodyColor returns the outline color from the particle's body; ok is false
// when the particle has no body.
func (p *Particle) BodyColor() (Color, bool) {
	if p.body == nil {
		return Color{}, false
	}
	return p.body.Color, true
}

// Clone returns a copy of the particle. The copy references the same specs
// and body: kinds are shared registry entries, never duplicated per particle.
func (p *Particle) Clone() *Particle {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// DrawnParticle is one rendered grid point of a layer: a coordinate, the
// cached pixel position it was last drawn at, and a private copy of the model
// particle there. A nil copy marks the point as blank, a grid point the layer
// tracks that holds no particle.
type DrawnParticle struct {
	coord    GridCoord
	pixel    Point
	params   DrawParams
	particle *Particle
}

// newShadow returns a drawn particle at coord holding a copy of p (nil for a
// blank point).
func newShadow(coord GridCoord, p *Particle) *DrawnParticle {
	d := &DrawnParticle{coord: coord}
	d.SetModelParticle(p)
	return d
}

// Coord returns the grid coordinate of the point.
func (d *DrawnParticle) Coord() GridCoord { return d.coord }

// SetCoord moves the point, keeping the embedded particle copy at the same
// coordinate as its shadow.
func (d *DrawnParticle) SetCoord(c GridCoord) {
	d.coord = c
	if d.particle != nil {
		d.particle.SetCoord(c)
	}
}

// InModel reports whether the point holds a particle. The embedded copy is
// the single source of truth: blank iff the copy is nil.
func (d *DrawnParticle) InModel() bool { return d.particle != nil }

// ModelParticle returns the embedded particle copy, or nil for a blank point.
func (d *DrawnParticle) ModelParticle() *Particle { return d.particle }

// SetModelParticle stores a fresh copy of p, or marks the point blank when p
// is nil. Copying keeps later model mutations from leaking into the layer.
func (d *DrawnParticle) SetModelParticle(p *Particle) {
	d.particle = p.Clone()
	if d.particle != nil {
		d.particle.SetCoord(d.coord)
	}
}

// Specs returns the embedded particle's kind; nil for a blank point.
func (d *DrawnParticle) Specs() *ParticleSpecs {
	if d.particle == nil {
		return nil
	}
	return d.particle.Specs()
}

// SetSpecs retypes the embedded particle. Panics on a blank point: a kind
// cannot be painted onto a point that holds nothing.
func (d *DrawnParticle) SetSpecs(s *ParticleSpecs) {
	if d.particle == nil {
		panic("rbdesign: SetSpecs on blank point")
	}
	d.particle.SetSpecs(s)
}

// Body returns the embedded particle's body; nil for a blank point.
func (d *DrawnParticle) Body() *BodySpecs {
	if d.particle == nil {
		return nil
	}
	return d.particle.Body()
}

// SetBody reassigns the embedded particle's body. Panics on a blank point.
func (d *DrawnParticle) SetBody(b *BodySpecs) {
	if d.particle == nil {
		panic("rbdesign: SetBody on blank point")
	}
	d.particle.SetBody(b)
}

// Pixel returns the pixel position the point was last drawn at.
func (d *DrawnParticle) Pixel() Point { return d.pixel }

// setPixel caches the pixel position computed on the latest redraw.
func (d *DrawnParticle) setPixel(p Point) { d.pixel = p }

// Params returns the draw parameters computed on the latest redraw. They go
// stale until the owning layer's next update; that staleness is what the
// dirty tracking exists to bound.
func (d *DrawnParticle) Params() DrawParams { return d.params }

// setParams caches the draw parameters computed on the latest redraw.
func (d *DrawnParticle) setParams(p DrawParams) { d.params = p }
