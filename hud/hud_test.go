package hud

import (
	"image"
	"image/color"
	"testing"

	mandel "github.com/marben/mandelflight"
	"github.com/marben/mandelflight/flight"
)

func blackFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func snapshot() flight.Snapshot {
	return flight.Snapshot{
		Mode:     flight.Flying,
		View:     mandel.DefaultView(),
		DeadZone: 30,
		Speed:    "1.0x",
	}
}

func litPixels(img *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).R != 0 {
				n++
			}
		}
	}
	return n
}

func TestDeadZoneCircle(t *testing.T) {
	img := blackFrame(200, 200)
	h := &HUD{ShowDeadZone: true}
	h.Draw(img, snapshot())

	if got := img.RGBAAt(130, 100); got.R != 51 {
		t.Errorf("expected circle pixel at radius 30 with blend value 51, got %v", got)
	}
	if got := img.RGBAAt(100, 100); got != (color.RGBA{A: 255}) {
		t.Errorf("expected centre untouched, got %v", got)
	}
}

func TestVelocityVector(t *testing.T) {
	img := blackFrame(200, 200)
	s := snapshot()
	s.VelX = 0.0008 // 40 px to the right

	(&HUD{ShowVector: true}).Draw(img, s)

	if got := img.RGBAAt(120, 100); got.R == 0 {
		t.Error("expected vector pixel at (120,100)")
	}
	if got := img.RGBAAt(100, 120); got.R != 0 {
		t.Errorf("expected nothing below the centre, got %v", got)
	}
}

func TestStatusTextDrawn(t *testing.T) {
	img := blackFrame(400, 300)
	New().Draw(img, snapshot())

	if n := litPixels(img, image.Rect(15, 15, 300, 190)); n == 0 {
		t.Error("expected text pixels in the top-left corner")
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatal("expected frame to stay opaque")
		}
	}
}

func TestDrawOnTinyFrame(t *testing.T) {
	img := blackFrame(3, 2)
	s := snapshot()
	s.VelX, s.VelY = 1, -1
	New().Draw(img, s)
}
