package render

import (
	"errors"
	"image/color"
	"testing"
)

func TestIterationsToColorInSetIsBlack(t *testing.T) {
	for _, max := range []int{1, 23, 40, 100, 1000} {
		r, g, b := IterationsToColor(max, max)
		if r != 0 || g != 0 || b != 0 {
			t.Errorf("max %d: expected black, got (%d,%d,%d)", max, r, g, b)
		}
	}
}

func TestIterationsToColorSectors(t *testing.T) {
	tests := []struct {
		iter, max int
		expected  [3]uint8
	}{
		{0, 12, [3]uint8{255, 0, 0}},
		{1, 12, [3]uint8{255, 127, 0}},
		{3, 12, [3]uint8{127, 255, 0}},
		{5, 12, [3]uint8{0, 255, 127}},
		{6, 12, [3]uint8{0, 255, 255}},
		{7, 12, [3]uint8{0, 127, 255}},
		{9, 12, [3]uint8{127, 0, 255}},
		{11, 12, [3]uint8{255, 0, 127}},
	}

	for _, tt := range tests {
		r, g, b := IterationsToColor(tt.iter, tt.max)
		if got := [3]uint8{r, g, b}; got != tt.expected {
			t.Errorf("IterationsToColor(%d, %d): expected %v, got %v", tt.iter, tt.max, tt.expected, got)
		}
	}
}

func TestIterationsToColorContinuous(t *testing.T) {
	const max = 3600
	pr, pg, pb := IterationsToColor(0, max)
	for i := 1; i < max; i++ {
		r, g, b := IterationsToColor(i, max)
		if absDiff(r, pr) > 2 || absDiff(g, pg) > 2 || absDiff(b, pb) > 2 {
			t.Fatalf("jump between %d and %d: (%d,%d,%d) -> (%d,%d,%d)", i-1, i, pr, pg, pb, r, g, b)
		}
		pr, pg, pb = r, g, b
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestHSLPaletteMatchesIterationsToColor(t *testing.T) {
	p := HSL{}
	for i := 0; i <= 40; i++ {
		r, g, b := IterationsToColor(i, 40)
		if got := p.Color(i, 40); got != (color.RGBA{r, g, b, 255}) {
			t.Errorf("iteration %d: expected (%d,%d,%d,255), got %v", i, r, g, b, got)
		}
	}
}

func TestParsePalette(t *testing.T) {
	for _, name := range PaletteNames() {
		p, err := ParsePalette(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got := p.Color(50, 50); got != (color.RGBA{A: 255}) {
			t.Errorf("%s: expected opaque black for in-set point, got %v", name, got)
		}
		if got := p.Color(0, 50); got.A != 255 {
			t.Errorf("%s: expected opaque colour, got %v", name, got)
		}
	}

	if _, err := ParsePalette(""); err != nil {
		t.Errorf("expected empty name to mean hsl, got %v", err)
	}
	if _, err := ParsePalette("plaid"); !errors.Is(err, ErrUnknownPalette) {
		t.Errorf("expected ErrUnknownPalette, got %v", err)
	}
}

func TestGradientEndpoints(t *testing.T) {
	g, err := NewGradient("#ff0000", "#0000ff")
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Color(0, 100); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("expected first stop at iteration 0, got %v", got)
	}
	if _, err := NewGradient("#ff0000"); err == nil {
		t.Error("expected error for a single stop")
	}
	if _, err := NewGradient("#ff0000", "nope"); err == nil {
		t.Error("expected error for a bad hex stop")
	}
}

func TestColorTableReusesBuffer(t *testing.T) {
	buf := make([]color.RGBA, 0, 128)
	table := colorTable(HSL{}, 40, buf)
	if len(table) != 41 {
		t.Fatalf("expected 41 entries, got %d", len(table))
	}
	if &table[0] != &buf[:1][0] {
		t.Error("expected table to reuse the provided buffer")
	}
	if table[40] != (color.RGBA{A: 255}) {
		t.Errorf("expected last entry black, got %v", table[40])
	}
}
