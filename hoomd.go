package rbdesign

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
)

// HOOMD export: models are stamped onto a centered 2D lattice, one stamp per
// copy, and written as a HOOMD XML configuration (version 1.5). Every copy of
// a model gets its own range of rigid-body ids, so copies move independently
// in the simulation. Positions are in cell units (diameter 1).

const (
	hoomdVersion = "1.5"

	// Lattice cells are the model footprint stretched by this factor, so
	// neighboring copies start separated.
	latticeSpacing = 1.3
)

// ExportEntry pairs a model with the number of copies to place.
type ExportEntry struct {
	Model  *Model
	Copies int
}

// exportModel is one entry resolved for emission: deterministic particle
// order, footprint, and the model's dense body numbering.
type exportModel struct {
	particles []*Particle
	width     float64
	height    float64
	bodyLocal map[int]int // registry body index -> dense per-model index
	offsets   []Point     // lattice position per copy
}

// ExportHOOMD writes the entries to w as a HOOMD XML configuration. Entries
// with zero copies are skipped; an empty model or a particle missing specs or
// body fails the whole export.
func ExportHOOMD(w io.Writer, entries []ExportEntry) error {
	models, err := resolveExportModels(entries)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return fmt.Errorf("hoomd: nothing to export")
	}

	width, height := layoutLattice(models)

	total := 0
	for _, em := range models {
		total += len(em.offsets) * len(em.particles)
	}

	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&buf, "<hoomd_xml version=%q>\n", hoomdVersion)
	buf.WriteString("<configuration time_step=\"0\" dimensions=\"2\" vizsigma=\"1.5\">\n")
	fmt.Fprintf(&buf, "<box lx=\"%g\" ly=\"%g\" lz=\"1\" xy=\"0\" xz=\"0\" yz=\"0\"/>\n", width, height)

	fmt.Fprintf(&buf, "<position num=\"%d\">\n", total)
	for _, em := range models {
		box, _ := BBoxOf(coordsOf(em.particles), 0)
		for _, off := range em.offsets {
			for _, p := range em.particles {
				c := p.Coord()
				x := float64(c.X-box.MinX) + off.X
				y := float64(c.Y-box.MinY) + off.Y
				fmt.Fprintf(&buf, "%g %g 0.0\n", x, y)
			}
		}
	}
	buf.WriteString("</position>\n")

	fmt.Fprintf(&buf, "<body num=\"%d\">\n", total)
	idxOffset := 0
	for _, em := range models {
		for range em.offsets {
			for _, p := range em.particles {
				local := em.bodyLocal[p.Body().Index]
				fmt.Fprintf(&buf, "%d\n", local+idxOffset)
			}
			idxOffset += len(em.bodyLocal)
		}
	}
	buf.WriteString("</body>\n")

	fmt.Fprintf(&buf, "<type num=\"%d\">\n", total)
	for _, em := range models {
		for range em.offsets {
			for _, p := range em.particles {
				buf.WriteString(p.Specs().Name)
				buf.WriteByte('\n')
			}
		}
	}
	buf.WriteString("</type>\n")

	fmt.Fprintf(&buf, "<diameter num=\"%d\">\n", total)
	for i := 0; i < total; i++ {
		buf.WriteString("1.0\n")
	}
	buf.WriteString("</diameter>\n")

	buf.WriteString("</configuration>\n")
	buf.WriteString("</hoomd_xml>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("hoomd: write: %w", err)
	}
	return nil
}

// resolveExportModels validates the entries and fixes a deterministic
// particle order and dense body numbering per model.
func resolveExportModels(entries []ExportEntry) ([]*exportModel, error) {
	var models []*exportModel
	for i, e := range entries {
		if e.Copies <= 0 {
			continue
		}
		if e.Model == nil || e.Model.Len() == 0 {
			return nil, fmt.Errorf("hoomd: model %d is empty", i)
		}

		coords := e.Model.Coords()
		sortCoords(coords)
		em := &exportModel{
			particles: make([]*Particle, 0, len(coords)),
			bodyLocal: make(map[int]int),
			offsets:   make([]Point, e.Copies),
		}
		var bodyIndices []int
		for _, c := range coords {
			p, _ := e.Model.At(c)
			if p.Specs() == nil {
				return nil, fmt.Errorf("hoomd: model %d: particle at %d,%d has no specs", i, c.X, c.Y)
			}
			b := p.Body()
			if b == nil {
				return nil, fmt.Errorf("hoomd: model %d: particle at %d,%d has no body", i, c.X, c.Y)
			}
			if _, ok := em.bodyLocal[b.Index]; !ok {
				em.bodyLocal[b.Index] = 0
				bodyIndices = append(bodyIndices, b.Index)
			}
			em.particles = append(em.particles, p)
		}
		sort.Ints(bodyIndices)
		for local, idx := range bodyIndices {
			em.bodyLocal[idx] = local
		}

		box, _ := BBoxOf(coords, 0)
		pix := PixelBBoxOf(box, 1)
		em.width = pix.Width()
		em.height = pix.Height()

		models = append(models, em)
	}
	return models, nil
}

// layoutLattice assigns a lattice position to every copy and returns the box
// extents. Copies fill rows left to right; the box width is the larger of the
// widest model and the square root of the total stamped area, so the layout
// comes out roughly square. Positions are centered on the origin.
func layoutLattice(models []*exportModel) (width, height float64) {
	totArea := 0.0
	maxWidth := 0.0
	for _, em := range models {
		totArea += float64(len(em.offsets)) * (em.width * latticeSpacing) * (em.height * latticeSpacing)
		maxWidth = math.Max(maxWidth, em.width)
	}
	width = math.Max(maxWidth, math.Ceil(math.Sqrt(totArea)))

	x, y := 0.0, 0.0
	for _, em := range models {
		for i := range em.offsets {
			if x+em.width > width {
				x = 0
				y = height
			}
			em.offsets[i] = Point{X: x, Y: y}
			height = math.Max(height, y+math.Ceil(latticeSpacing*em.height))
			x += math.Ceil(latticeSpacing * em.width)
		}
	}

	for _, em := range models {
		for i := range em.offsets {
			em.offsets[i].X -= width / 2
			em.offsets[i].Y -= height / 2
		}
	}
	return width, height
}

func coordsOf(ps []*Particle) []GridCoord {
	coords := make([]GridCoord, len(ps))
	for i, p := range ps {
		coords[i] = p.Coord()
	}
	return coords
}
