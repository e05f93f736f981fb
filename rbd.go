package rbdesign

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// The .rbd format is the editor's native XML snapshot of a [Design]: the two
// specs registries followed by every model's particles. Particles reference
// particle specs by name and body specs by index. Only the square grid
// (grid_type 0) exists.

const gridTypeSquare = 0

type rbdFile struct {
	XMLName          xml.Name           `xml:"rbd"`
	NumModels        int                `xml:"num_models,attr"`
	NumParticleSpecs int                `xml:"num_particle_specs,attr"`
	NumBodySpecs     int                `xml:"num_body_specs,attr"`
	ParticleSpecs    []rbdParticleSpecs `xml:"particle_specs"`
	BodySpecs        []rbdBodySpecs     `xml:"body_specs"`
	Models           []rbdModel         `xml:"model"`
}

type rbdParticleSpecs struct {
	Index int    `xml:"index,attr"`
	Name  string `xml:"name,attr"`
	Color string `xml:"color,attr"`
}

type rbdBodySpecs struct {
	Index int    `xml:"index,attr"`
	Color string `xml:"color,attr"`
}

type rbdModel struct {
	Index     int           `xml:"index,attr"`
	GridType  int           `xml:"grid_type,attr"`
	BBox      string        `xml:"bbox,attr,omitempty"`
	Particles []rbdParticle `xml:"particle"`
}

type rbdParticle struct {
	GridCoord     string `xml:"grid_coord,attr"`
	ParticleSpecs string `xml:"particle_specs,attr"`
	BodySpecs     int    `xml:"body_specs,attr"`
}

// WriteDesign writes the design to w as .rbd XML. Models are written in list
// order, particles row-major, so output is deterministic.
func WriteDesign(w io.Writer, d *Design) error {
	f := rbdFile{
		NumModels:        len(d.Models()),
		NumParticleSpecs: len(d.ParticleSpecs()),
		NumBodySpecs:     len(d.BodySpecs()),
	}

	for i, s := range d.ParticleSpecs() {
		f.ParticleSpecs = append(f.ParticleSpecs, rbdParticleSpecs{
			Index: i,
			Name:  s.Name,
			Color: s.Color.Hex(),
		})
	}
	for _, s := range d.BodySpecs() {
		f.BodySpecs = append(f.BodySpecs, rbdBodySpecs{
			Index: s.Index,
			Color: s.Color.Hex(),
		})
	}

	for i, m := range d.Models() {
		rm := rbdModel{Index: i, GridType: gridTypeSquare}
		coords := m.Coords()
		sortCoords(coords)
		if box, ok := BBoxOf(coords, 0); ok {
			rm.BBox = fmt.Sprintf("%d,%d,%d,%d", box.MinX, box.MinY, box.MaxX, box.MaxY)
		}
		for _, c := range coords {
			p, _ := m.At(c)
			rp := rbdParticle{GridCoord: formatGridCoord(c)}
			if s := p.Specs(); s != nil {
				rp.ParticleSpecs = s.Name
			}
			if b := p.Body(); b != nil {
				rp.BodySpecs = b.Index
			}
			rm.Particles = append(rm.Particles, rp)
		}
		f.Models = append(f.Models, rm)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("rbd: write: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("rbd: write: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("rbd: write: %w", err)
	}
	return nil
}

// ReadDesign parses a .rbd document from r. Any unknown specs reference,
// malformed coordinate, or unsupported grid fails the whole load; no partial
// design is returned.
func ReadDesign(r io.Reader) (*Design, error) {
	var f rbdFile
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("rbd: parse: %w", err)
	}

	d := NewDesign()
	byName := make(map[string]*ParticleSpecs, len(f.ParticleSpecs))
	for _, rs := range f.ParticleSpecs {
		color, err := ParseHexColor(rs.Color)
		if err != nil {
			return nil, fmt.Errorf("rbd: particle specs %q: %w", rs.Name, err)
		}
		s := d.AddParticleSpecs(rs.Name, color)
		byName[s.Name] = s
	}
	byIndex := make(map[int]*BodySpecs, len(f.BodySpecs))
	for _, rs := range f.BodySpecs {
		color, err := ParseHexColor(rs.Color)
		if err != nil {
			return nil, fmt.Errorf("rbd: body specs %d: %w", rs.Index, err)
		}
		s := NewBodySpecs(rs.Index, color)
		d.bodySpecs = append(d.bodySpecs, s)
		byIndex[s.Index] = s
	}

	for i, rm := range f.Models {
		if rm.GridType != gridTypeSquare {
			return nil, fmt.Errorf("rbd: model %d: unsupported grid type %d", i, rm.GridType)
		}
		m := d.NewModel()
		for _, rp := range rm.Particles {
			coord, err := parseGridCoord(rp.GridCoord)
			if err != nil {
				return nil, fmt.Errorf("rbd: model %d: %w", i, err)
			}
			specs, ok := byName[rp.ParticleSpecs]
			if !ok {
				return nil, fmt.Errorf("rbd: model %d: unknown particle specs %q", i, rp.ParticleSpecs)
			}
			body, ok := byIndex[rp.BodySpecs]
			if !ok {
				return nil, fmt.Errorf("rbd: model %d: unknown body specs %d", i, rp.BodySpecs)
			}
			m.Add(NewParticle(coord, specs, body))
		}
	}
	return d, nil
}

// formatGridCoord renders a coordinate as "x,y".
func formatGridCoord(c GridCoord) string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

// parseGridCoord accepts "x,y", with optional spaces and an optional
// surrounding "( )" as older files wrote them.
func parseGridCoord(s string) (GridCoord, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "(")
	t = strings.TrimSuffix(t, ")")
	parts := strings.Split(t, ",")
	if len(parts) != 2 {
		return GridCoord{}, fmt.Errorf("malformed grid coordinate %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return GridCoord{}, fmt.Errorf("malformed grid coordinate %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return GridCoord{}, fmt.Errorf("malformed grid coordinate %q", s)
	}
	return GridCoord{X: x, Y: y}, nil
}

// sortCoords orders coordinates row-major, matching the draw list order.
func sortCoords(coords []GridCoord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
}
