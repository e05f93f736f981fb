package rbdesign

import (
	"fmt"
	"image/color"
	"strconv"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Common colors used for blank placeholders and wash-out blending.
var (
	ColorWhite        = Color{1, 1, 1, 1}
	ColorBlankFill    = mustHex("#CCCCCC") // fill of a placeholder with no particle
	ColorBlankOutline = mustHex("#999999") // outline of a placeholder with no particle
)

// ParseHexColor parses "#RGB" and "#RRGGBB" color strings. Alpha is always 1.
func ParseHexColor(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, fmt.Errorf("rbdesign: invalid color %q", s)
	}
	hex := s[1:]
	var digits int
	switch len(hex) {
	case 3:
		digits = 1
	case 6:
		digits = 2
	default:
		return Color{}, fmt.Errorf("rbdesign: invalid color %q", s)
	}
	max := float64(int(1)<<(4*digits)) - 1
	var chans [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*digits:(i+1)*digits], 16, 16)
		if err != nil {
			return Color{}, fmt.Errorf("rbdesign: invalid color %q", s)
		}
		chans[i] = float64(v) / max
	}
	return Color{R: chans[0], G: chans[1], B: chans[2], A: 1}, nil
}

func mustHex(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#rrggbb". Alpha is dropped.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5),
		uint8(clamp01(c.G)*255+0.5),
		uint8(clamp01(c.B)*255+0.5))
}

// Blend linearly interpolates from c toward other. weight 0 returns c,
// weight 1 returns other.
func (c Color) Blend(other Color, weight float64) Color {
	w := clamp01(weight)
	return Color{
		R: c.R + (other.R-c.R)*w,
		G: c.G + (other.G-c.G)*w,
		B: c.B + (other.B-c.B)*w,
		A: c.A + (other.A-c.A)*w,
	}
}

// washed is the paused-layer rendition of a color: halfway toward white.
func (c Color) washed() Color {
	return c.Blend(ColorWhite, 0.5)
}

// RGBA converts to an 8-bit image/color value for the render host.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
