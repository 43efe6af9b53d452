package heatsim

import (
	"fmt"
	"math"

	"github.com/crazy3lf/colorconv"
)

// Color is one 8-bit RGB pixel.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color; heatmap pixels are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Palette holds the three anchor colors a heatmap interpolates between.
// Normal is drawn at the base temperature, High and Low at base +/- range.
type Palette struct {
	Low, Normal, High Color
}

// DefaultPalette is blue for cold, dim green at base and red for hot.
var DefaultPalette = Palette{
	Low:    Color{R: 10, G: 10, B: 255},
	Normal: Color{R: 10, G: 128, B: 10},
	High:   Color{R: 255, G: 10, B: 10},
}

// HSVColor converts a hue in degrees and saturation/value in [0, 1].
func HSVColor(h, s, v float64) (Color, error) {
	r, g, b, err := colorconv.HSVToRGB(math.Mod(h, 360), s, v)
	if err != nil {
		return Color{}, err
	}
	return Color{R: r, G: g, B: b}, nil
}

// HuePalette builds a fully saturated palette from three hues, e.g.
// HuePalette(240, 120, 0) for blue, green, red.
func HuePalette(low, normal, high float64) (Palette, error) {
	var p Palette
	var err error
	if p.Low, err = HSVColor(low, 1, 1); err != nil {
		return p, err
	}
	if p.Normal, err = HSVColor(normal, 1, 1); err != nil {
		return p, err
	}
	if p.High, err = HSVColor(high, 1, 1); err != nil {
		return p, err
	}
	return p, nil
}

// MapColor turns a temperature into a color. Values above base fade from
// Normal to High, values below fade from Normal to Low, and anything more
// than rng away from base saturates at the anchor. rng must be > 0.
func MapColor(value, base, rng float64, p Palette) Color {
	relative := value - base
	if relative >= 0 {
		return lerp(p.Normal, p.High, math.Min(relative/rng, 1))
	}
	return lerp(p.Normal, p.Low, math.Min(-relative/rng, 1))
}

func lerp(c1, c2 Color, t float64) Color {
	return Color{
		R: lerpChannel(c1.R, c2.R, t),
		G: lerpChannel(c1.G, c2.G, t),
		B: lerpChannel(c1.B, c2.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return clampByte(math.Round(float64(a)*(1-t) + float64(b)*t))
}

func clampByte(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Mapper is MapColor with its base, range and palette validated once.
type Mapper struct {
	Base    float64
	Range   float64
	Palette Palette
}

// NewMapper rejects a range that is not strictly positive.
func NewMapper(base, rng float64, p Palette) (Mapper, error) {
	if !(rng > 0) || math.IsInf(rng, 0) {
		return Mapper{}, fmt.Errorf("%w: range must be > 0, got %v", ErrInvalidRange, rng)
	}
	return Mapper{Base: base, Range: rng, Palette: p}, nil
}

// Map colors a single value.
func (m Mapper) Map(value float64) Color {
	return MapColor(value, m.Base, m.Range, m.Palette)
}
