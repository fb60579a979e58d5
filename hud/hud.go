// Package hud draws the flight instruments over a rendered frame: the
// steering dead zone, the current velocity vector and a short help text
// ending with the navigation status.
package hud

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/marben/mandelflight/flight"
)

// VectorScale converts a per-frame velocity in plane units into pixels.
const VectorScale = 50 * 1000

// DefaultControls is the help text shown above the status lines.
var DefaultControls = []string{
	"Controls:",
	"- Move mouse to steer",
	"- Click to center on point",
	"- Space or Right-click to pause",
	"- +/- to change speed",
}

var (
	vectorColor   = color.NRGBA{255, 255, 255, 128}
	deadZoneColor = color.NRGBA{255, 255, 255, 51}
	textColor     = color.NRGBA{255, 255, 255, 204}
)

// HUD implements flight.Overlay.
type HUD struct {
	Controls []string

	ShowText     bool
	ShowVector   bool
	ShowDeadZone bool
}

// New returns a HUD with every instrument enabled.
func New() *HUD {
	return &HUD{Controls: DefaultControls, ShowText: true, ShowVector: true, ShowDeadZone: true}
}

var _ flight.Overlay = (*HUD)(nil)

func (h *HUD) Draw(img *image.RGBA, s flight.Snapshot) {
	b := img.Bounds()
	cx := float64(b.Min.X) + float64(b.Dx())/2
	cy := float64(b.Min.Y) + float64(b.Dy())/2

	if h.ShowVector {
		ex := cx + s.VelX*VectorScale
		ey := cy + s.VelY*VectorScale
		line(img, cx, cy, ex, ey, vectorColor)
		line(img, cx+1, cy, ex+1, ey, vectorColor)
	}

	if h.ShowDeadZone && s.DeadZone > 0 {
		circle(img, cx, cy, s.DeadZone, deadZoneColor)
	}

	if h.ShowText {
		lines := append(append([]string(nil), h.Controls...),
			"Status: "+s.Mode.String(),
			"Speed: "+s.Speed,
		)
		text(img, b.Min.X+20, b.Min.Y+30, 25, lines)
	}
}

func text(img *image.RGBA, x, y, lineHeight int, lines []string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
	}
	for i, l := range lines {
		d.Dot = fixed.P(x, y+i*lineHeight)
		d.DrawString(l)
	}
}

// line plots a 1px line with alpha blending (DDA).
func line(img *image.RGBA, x0, y0, x1, y1 float64, c color.NRGBA) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		blend(img, int(x0), int(y0), c)
		return
	}
	// bounded by the frame perimeter
	steps = min(steps, 4*(img.Rect.Dx()+img.Rect.Dy()))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		blend(img, int(math.Round(x0+dx*t)), int(math.Round(y0+dy*t)), c)
	}
}

// circle plots a 1px circle outline (midpoint algorithm).
func circle(img *image.RGBA, cx, cy, r float64, c color.NRGBA) {
	x0, y0 := int(math.Round(cx)), int(math.Round(cy))
	x, y := int(math.Round(r)), 0
	e := 1 - x
	for x >= y {
		pts := [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		}
		for i, p := range pts {
			// skip duplicates on the diagonals and axes
			if (x == y || y == 0) && i%2 == 1 {
				continue
			}
			blend(img, x0+p[0], y0+p[1], c)
		}
		y++
		if e < 0 {
			e += 2*y + 1
		} else {
			x--
			e += 2*(y-x) + 1
		}
	}
}

func blend(img *image.RGBA, x, y int, c color.NRGBA) {
	if !(image.Point{x, y}).In(img.Rect) {
		return
	}
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+4 : i+4]
	a := uint32(c.A)
	for k, v := range [3]uint8{c.R, c.G, c.B} {
		p[k] = uint8((uint32(v)*a + uint32(p[k])*(255-a)) / 255)
	}
	p[3] = uint8(a + uint32(p[3])*(255-a)/255)
}
