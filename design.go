package rbdesign

// Design is the unit of persistence: an ordered list of models plus the two
// specs registries their particles reference. Specs are registered once and
// shared by pointer; the file formats refer to particle specs by name and to
// body specs by index.
type Design struct {
	models        []*Model
	particleSpecs []*ParticleSpecs
	bodySpecs     []*BodySpecs
}

// NewDesign returns an empty design.
func NewDesign() *Design {
	return &Design{}
}

// Models returns the design's model list. The returned slice MUST NOT be
// mutated.
func (d *Design) Models() []*Model {
	return d.models
}

// ModelAt returns the model at index i; ok is false when out of range.
func (d *Design) ModelAt(i int) (*Model, bool) {
	if i < 0 || i >= len(d.models) {
		return nil, false
	}
	return d.models[i], true
}

// NewModel creates an empty model and appends it to the design.
func (d *Design) NewModel() *Model {
	m := NewModel()
	d.models = append(d.models, m)
	return m
}

// AddModel appends an existing model to the design.
func (d *Design) AddModel(m *Model) {
	d.models = append(d.models, m)
}

// RemoveModel removes the model at index i; a no-op when out of range.
func (d *Design) RemoveModel(i int) {
	if i < 0 || i >= len(d.models) {
		return
	}
	d.models = append(d.models[:i], d.models[i+1:]...)
}

// ParticleSpecs returns the particle kind registry in registration order. The
// returned slice MUST NOT be mutated.
func (d *Design) ParticleSpecs() []*ParticleSpecs {
	return d.particleSpecs
}

// BodySpecs returns the body registry in index order. The returned slice MUST
// NOT be mutated.
func (d *Design) BodySpecs() []*BodySpecs {
	return d.bodySpecs
}

// AddParticleSpecs registers a new particle kind.
func (d *Design) AddParticleSpecs(name string, color Color) *ParticleSpecs {
	s := NewParticleSpecs(name, color)
	d.particleSpecs = append(d.particleSpecs, s)
	return s
}

// AddBodySpecs registers a new body. Indices are assigned sequentially.
func (d *Design) AddBodySpecs(color Color) *BodySpecs {
	s := NewBodySpecs(len(d.bodySpecs), color)
	d.bodySpecs = append(d.bodySpecs, s)
	return s
}

// ParticleSpecsByName looks a particle kind up by name.
func (d *Design) ParticleSpecsByName(name string) (*ParticleSpecs, bool) {
	for _, s := range d.particleSpecs {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// BodySpecsByIndex looks a body up by its registry index.
func (d *Design) BodySpecsByIndex(index int) (*BodySpecs, bool) {
	for _, s := range d.bodySpecs {
		if s.Index == index {
			return s, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the design: fresh specs, fresh models, and
// every cloned particle remapped onto the cloned specs. Specs pointers not in
// the registries are cloned too, one copy per distinct pointer, so identity
// sharing survives the copy.
func (d *Design) Clone() *Design {
	c := &Design{}

	pmap := make(map[*ParticleSpecs]*ParticleSpecs, len(d.particleSpecs))
	for _, s := range d.particleSpecs {
		cs := NewParticleSpecs(s.Name, s.Color)
		pmap[s] = cs
		c.particleSpecs = append(c.particleSpecs, cs)
	}
	bmap := make(map[*BodySpecs]*BodySpecs, len(d.bodySpecs))
	for _, s := range d.bodySpecs {
		cs := NewBodySpecs(s.Index, s.Color)
		bmap[s] = cs
		c.bodySpecs = append(c.bodySpecs, cs)
	}

	cloneParticleSpecs := func(s *ParticleSpecs) *ParticleSpecs {
		if s == nil {
			return nil
		}
		if cs, ok := pmap[s]; ok {
			return cs
		}
		cs := NewParticleSpecs(s.Name, s.Color)
		pmap[s] = cs
		return cs
	}
	cloneBodySpecs := func(s *BodySpecs) *BodySpecs {
		if s == nil {
			return nil
		}
		if cs, ok := bmap[s]; ok {
			return cs
		}
		cs := NewBodySpecs(s.Index, s.Color)
		bmap[s] = cs
		return cs
	}

	for _, m := range d.models {
		cm := NewModel()
		for _, p := range m.Particles() {
			cp := p.Clone()
			cp.SetSpecs(cloneParticleSpecs(p.Specs()))
			cp.SetBody(cloneBodySpecs(p.Body()))
			cm.Add(cp)
		}
		c.models = append(c.models, cm)
	}
	return c
}
