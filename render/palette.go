package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownPalette is returned by ParsePalette.
var ErrUnknownPalette = errors.New("unknown palette")

var inSet = color.RGBA{A: 255}

// Palette maps an escape count to a colour. Implementations return black
// when iterations == maxIterations.
type Palette interface {
	Color(iterations, maxIterations int) color.RGBA
}

// IterationsToColor is the fly-through's hue sweep: hue runs from 0 to 360
// degrees across the budget at 100% saturation and 50% lightness.
func IterationsToColor(iterations, maxIterations int) (r, g, b uint8) {
	if iterations == maxIterations {
		return 0, 0, 0
	}

	const saturation, lightness = 100.0, 50.0
	hue := float64(iterations) / float64(maxIterations) * 360

	c := (1 - math.Abs(2*lightness/100-1)) * saturation / 100
	x := c * (1 - math.Abs(math.Mod(hue/60, 2)-1))
	m := lightness/100 - c/2

	var rf, gf, bf float64
	switch {
	case hue < 60:
		rf, gf = c, x
	case hue < 120:
		rf, gf = x, c
	case hue < 180:
		gf, bf = c, x
	case hue < 240:
		gf, bf = x, c
	case hue < 300:
		rf, bf = x, c
	default:
		rf, bf = c, x
	}

	return channel(rf + m), channel(gf + m), channel(bf + m)
}

func channel(v float64) uint8 {
	f := math.Floor(v * 255)
	switch {
	case f < 0:
		return 0
	case f > 255:
		return 255
	}
	return uint8(f)
}

// HSL is the default palette, see IterationsToColor.
type HSL struct{}

func (HSL) Color(iterations, maxIterations int) color.RGBA {
	r, g, b := IterationsToColor(iterations, maxIterations)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Gradient blends between colour stops in HCL space.
type Gradient struct {
	stops []colorful.Color
}

// NewGradient builds a gradient from hex colour stops ("#rrggbb").
func NewGradient(hexStops ...string) (*Gradient, error) {
	if len(hexStops) < 2 {
		return nil, fmt.Errorf("gradient needs at least 2 stops, got %d", len(hexStops))
	}
	g := &Gradient{stops: make([]colorful.Color, 0, len(hexStops))}
	for _, h := range hexStops {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("stop %q: %w", h, err)
		}
		g.stops = append(g.stops, c)
	}
	return g, nil
}

func (g *Gradient) Color(iterations, maxIterations int) color.RGBA {
	if iterations >= maxIterations {
		return inSet
	}

	t := float64(iterations) / float64(maxIterations)
	seg := t * float64(len(g.stops)-1)
	i := int(seg)
	if i >= len(g.stops)-1 {
		i = len(g.stops) - 2
	}

	c := g.stops[i].BlendHcl(g.stops[i+1], seg-float64(i)).Clamped()
	r, gr, b := c.RGB255()
	return color.RGBA{R: r, G: gr, B: b, A: 255}
}

var gradients = map[string][]string{
	"ocean": {"#000764", "#206bcb", "#edffff", "#ffaa00", "#000200"},
	"ember": {"#100000", "#7a0403", "#f24d0f", "#fdc52a", "#fffde0"},
}

// PaletteNames lists the names ParsePalette accepts.
func PaletteNames() []string {
	return []string{"hsl", "ocean", "ember"}
}

// ParsePalette returns the palette with the given name. Empty means "hsl".
func ParsePalette(name string) (Palette, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "hsl" {
		return HSL{}, nil
	}
	stops, ok := gradients[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownPalette, name, strings.Join(PaletteNames(), ", "))
	}
	return NewGradient(stops...)
}

// colorTable precomputes a palette for every count in [0, maxIterations].
func colorTable(p Palette, maxIterations int, buf []color.RGBA) []color.RGBA {
	if cap(buf) < maxIterations+1 {
		buf = make([]color.RGBA, maxIterations+1)
	}
	buf = buf[:maxIterations+1]
	for i := range buf {
		buf[i] = p.Color(i, maxIterations)
	}
	return buf
}
