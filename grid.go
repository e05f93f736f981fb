package rbdesign

import "math"

// Grid math for a square grid: cell (x, y) covers the pixel square
// [x*d, (x+1)*d) × [y*d, (y+1)*d) for cell diameter d. All functions are
// pure; the diameter is supplied by the caller on every conversion.

// GridBBox is a half-open bounding box in grid coordinates:
// MinX ≤ x < MaxX, MinY ≤ y < MaxY.
type GridBBox struct {
	MinX, MinY, MaxX, MaxY int
}

// PixelBBox is a bounding box in canvas pixel space; Max edges are exclusive.
type PixelBBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// CoordToPixel converts a grid coordinate to the top-left pixel of its cell.
func CoordToPixel(c GridCoord, diameter float64) Point {
	return Point{float64(c.X) * diameter, float64(c.Y) * diameter}
}

// PixelToCoord converts a pixel position to the grid cell containing it,
// flooring on each axis.
func PixelToCoord(p Point, diameter float64) GridCoord {
	return GridCoord{
		X: int(math.Floor(p.X / diameter)),
		Y: int(math.Floor(p.Y / diameter)),
	}
}

// BBoxOf returns the smallest bounding box containing every given coordinate,
// expanded by padding cells on each side. ok is false iff coords is empty.
func BBoxOf(coords []GridCoord, padding int) (box GridBBox, ok bool) {
	if len(coords) == 0 {
		return GridBBox{}, false
	}
	box = GridBBox{coords[0].X, coords[0].Y, coords[0].X, coords[0].Y}
	for _, c := range coords[1:] {
		box.MinX = min(box.MinX, c.X)
		box.MinY = min(box.MinY, c.Y)
		box.MaxX = max(box.MaxX, c.X)
		box.MaxY = max(box.MaxY, c.Y)
	}
	box.MinX -= padding
	box.MinY -= padding
	box.MaxX += padding + 1
	box.MaxY += padding + 1
	return box, true
}

// PixelBBoxOf maps a grid bounding box to the pixel box covering it.
func PixelBBoxOf(b GridBBox, diameter float64) PixelBBox {
	tl := CoordToPixel(GridCoord{b.MinX, b.MinY}, diameter)
	br := CoordToPixel(GridCoord{b.MaxX, b.MaxY}, diameter)
	return PixelBBox{tl.X, tl.Y, br.X, br.Y}
}

// CoordBBoxOfPixels returns the smallest grid bounding box covering the given
// pixel box.
func CoordBBoxOfPixels(b PixelBBox, diameter float64) GridBBox {
	tl := PixelToCoord(Point{b.MinX, b.MinY}, diameter)
	br := PixelToCoord(Point{b.MaxX - 1, b.MaxY - 1}, diameter)
	return GridBBox{tl.X, tl.Y, br.X + 1, br.Y + 1}
}

// CoordsIn returns every grid coordinate inside the half-open box, row-major.
// The result is freshly allocated; call again to re-iterate.
func CoordsIn(b GridBBox) []GridCoord {
	if b.MaxX <= b.MinX || b.MaxY <= b.MinY {
		return nil
	}
	coords := make([]GridCoord, 0, (b.MaxX-b.MinX)*(b.MaxY-b.MinY))
	for x := b.MinX; x < b.MaxX; x++ {
		for y := b.MinY; y < b.MaxY; y++ {
			coords = append(coords, GridCoord{x, y})
		}
	}
	return coords
}

// RotateCoords maps every coordinate to its position after steps quarter
// turns about center. Positive steps turn counter-clockwise on screen
// (y-down): one CCW turn maps (x, y) to (cx + (y-cy), cy - (x-cx)).
// The mapping is a bijection over the input.
func RotateCoords(coords []GridCoord, center GridCoord, steps int) map[GridCoord]GridCoord {
	turns := ((steps % 4) + 4) % 4
	mapping := make(map[GridCoord]GridCoord, len(coords))
	for _, c := range coords {
		r := c
		for i := 0; i < turns; i++ {
			dx := r.X - center.X
			dy := r.Y - center.Y
			r = GridCoord{X: center.X + dy, Y: center.Y - dx}
		}
		mapping[c] = r
	}
	return mapping
}

// Contains reports whether the coordinate lies inside the half-open box.
func (b GridBBox) Contains(c GridCoord) bool {
	return b.MinX <= c.X && c.X < b.MaxX && b.MinY <= c.Y && c.Y < b.MaxY
}

// ContainsBox reports whether other lies entirely inside b.
func (b GridBBox) ContainsBox(other GridBBox) bool {
	return b.MinX <= other.MinX && other.MaxX <= b.MaxX &&
		b.MinY <= other.MinY && other.MaxY <= b.MaxY
}

// Union returns the smallest box containing both b and other.
func (b GridBBox) Union(other GridBBox) GridBBox {
	return GridBBox{
		MinX: min(b.MinX, other.MinX),
		MinY: min(b.MinY, other.MinY),
		MaxX: max(b.MaxX, other.MaxX),
		MaxY: max(b.MaxY, other.MaxY),
	}
}

// Intersect returns the overlap of b and other; ok is false when they are
// disjoint.
func (b GridBBox) Intersect(other GridBBox) (GridBBox, bool) {
	r := GridBBox{
		MinX: max(b.MinX, other.MinX),
		MinY: max(b.MinY, other.MinY),
		MaxX: min(b.MaxX, other.MaxX),
		MaxY: min(b.MaxY, other.MaxY),
	}
	if r.MaxX <= r.MinX || r.MaxY <= r.MinY {
		return GridBBox{}, false
	}
	return r, true
}

// Width returns the horizontal extent of the box in pixels.
func (b PixelBBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box in pixels.
func (b PixelBBox) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether the point lies inside the box. Points on the Min
// edges are inside; points on the Max edges are not.
func (b PixelBBox) Contains(p Point) bool {
	return b.MinX <= p.X && p.X < b.MaxX && b.MinY <= p.Y && p.Y < b.MaxY
}

// Union returns the smallest box containing both b and other.
func (b PixelBBox) Union(other PixelBBox) PixelBBox {
	return PixelBBox{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// Translate returns the box shifted by (dx, dy).
func (b PixelBBox) Translate(dx, dy float64) PixelBBox {
	return PixelBBox{b.MinX + dx, b.MinY + dy, b.MaxX + dx, b.MaxY + dy}
}

// Expand returns the box grown by pad pixels on every side.
func (b PixelBBox) Expand(pad float64) PixelBBox {
	return PixelBBox{b.MinX - pad, b.MinY - pad, b.MaxX + pad, b.MaxY + pad}
}
