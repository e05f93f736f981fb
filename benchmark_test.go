package rbdesign

import (
	"bytes"
	"io"
	"testing"
)

// setupBenchModel fills a model with n particles on a square-ish grid, all one
// kind split across two bodies.
func setupBenchModel(n int) *Model {
	a := NewParticleSpecs("A", Color{R: 1, A: 1})
	bodies := [2]*BodySpecs{
		NewBodySpecs(0, Color{A: 1}),
		NewBodySpecs(1, Color{G: 1, A: 1}),
	}
	m := NewModel()
	side := 1
	for side*side < n {
		side++
	}
	for i := 0; i < n; i++ {
		c := GridCoord{X: i % side, Y: i / side}
		m.Add(NewParticle(c, a, bodies[i%2]))
	}
	return m
}

// setupBenchCanvas builds an editing canvas over a populated model and runs it
// for one frame so the layer shadows exist.
func setupBenchCanvas(n int) (*Canvas, *Model) {
	m := setupBenchModel(n)
	c := NewCanvas(m, ModeEdit)
	c.Resize(1280, 720)
	c.Update(1.0 / 60)
	return c, m
}

// --- Model Benchmarks ---

func BenchmarkModel_Add_10000(b *testing.B) {
	a := NewParticleSpecs("A", Color{R: 1, A: 1})
	body := NewBodySpecs(0, Color{A: 1})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m := NewModel()
		for j := 0; j < 10000; j++ {
			m.Add(NewParticle(GridCoord{X: j % 100, Y: j / 100}, a, body))
		}
	}
}

func BenchmarkModel_Clone_10000(b *testing.B) {
	m := setupBenchModel(10000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Clone()
	}
}

func BenchmarkModel_BBox_10000(b *testing.B) {
	m := setupBenchModel(10000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.BBox(0)
	}
}

// --- Grid Benchmarks ---

func BenchmarkRotateCoords_10000(b *testing.B) {
	m := setupBenchModel(10000)
	coords := m.Coords()
	center := GridCoord{X: 50, Y: 50}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		RotateCoords(coords, center, 1)
	}
}

// --- Canvas Benchmarks ---

func BenchmarkCanvas_Drawables_10000(b *testing.B) {
	c, _ := setupBenchCanvas(10000)
	c.Drawables() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Drawables()
	}
}

func BenchmarkCanvas_Update_Clean(b *testing.B) {
	c, _ := setupBenchCanvas(10000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Update(1.0 / 60)
	}
}

func BenchmarkCanvas_Update_ModelChurn(b *testing.B) {
	// Every frame retags one particle, so the background layer rebuilds its
	// shadows on each update.
	c, m := setupBenchCanvas(10000)
	specs := [2]*ParticleSpecs{
		NewParticleSpecs("C", Color{B: 1, A: 1}),
		NewParticleSpecs("D", Color{R: 1, G: 1, A: 1}),
	}
	body := NewBodySpecs(2, Color{A: 1})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Add(NewParticle(GridCoord{X: i % 100, Y: 0}, specs[i%2], body))
		c.Hub().EmitModel(ModelEvent{Model: m, Coords: []GridCoord{{X: i % 100, Y: 0}}})
		c.Update(1.0 / 60)
	}
}

func BenchmarkCanvas_SelectAll_10000(b *testing.B) {
	// Ctrl+A on the background layer walks every occupied point each time.
	c, _ := setupBenchCanvas(10000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.FeedKey(KeyA, ModCtrl)
		c.Update(1.0 / 60)
	}
}

// --- Pointer Benchmarks ---

func BenchmarkCanvas_DragMove_100(b *testing.B) {
	// A full gesture per iteration: select all, drag the selection one cell
	// right, then back. The model ends each iteration where it started.
	c, _ := setupBenchCanvas(100)
	c.FeedKey(KeyA, ModCtrl)
	c.Update(1.0 / 60)

	drag := func(from, to Point) {
		c.FeedPointer(from.X, from.Y, true, MouseButtonLeft, 0)
		c.Update(1.0 / 60)
		c.FeedPointer(to.X, to.Y, true, MouseButtonLeft, 0)
		c.Update(1.0 / 60)
		c.FeedPointer(to.X, to.Y, false, MouseButtonLeft, 0)
		c.Update(1.0 / 60)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		drag(cellCenter(GridCoord{0, 0}), cellCenter(GridCoord{1, 0}))
		drag(cellCenter(GridCoord{1, 0}), cellCenter(GridCoord{0, 0}))
	}
}

// --- File Format Benchmarks ---

func setupBenchDesign(n int) *Design {
	d := NewDesign()
	a := d.AddParticleSpecs("A", Color{R: 1, A: 1})
	body := d.AddBodySpecs(Color{A: 1})
	m := d.NewModel()
	side := 1
	for side*side < n {
		side++
	}
	for i := 0; i < n; i++ {
		m.Add(NewParticle(GridCoord{X: i % side, Y: i / side}, a, body))
	}
	return d
}

func BenchmarkWriteDesign_10000(b *testing.B) {
	d := setupBenchDesign(10000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := WriteDesign(io.Discard, d); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadDesign_10000(b *testing.B) {
	d := setupBenchDesign(10000)
	var buf bytes.Buffer
	if err := WriteDesign(&buf, d); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ReadDesign(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExportHOOMD_10000(b *testing.B) {
	d := setupBenchDesign(10000)
	entries := []ExportEntry{{Model: d.Models()[0], Copies: 4}}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := ExportHOOMD(io.Discard, entries); err != nil {
			b.Fatal(err)
		}
	}
}
