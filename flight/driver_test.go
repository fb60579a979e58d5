package flight

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	mandel "github.com/marben/mandelflight"
	"github.com/marben/mandelflight/render"
)

type fakeSurface struct {
	w, h       int
	writes     int
	presents   int
	last       *image.RGBA
	presentErr error
	onPresent  func(n int)
}

func (s *fakeSurface) Resize(w, h int) { s.w, s.h = w, h }

func (s *fakeSurface) WritePixels(img *image.RGBA) {
	s.writes++
	s.last = img
}

func (s *fakeSurface) Present() error {
	s.presents++
	if s.onPresent != nil {
		s.onPresent(s.presents)
	}
	return s.presentErr
}

type fakeStatus struct {
	status, speed string
}

func (s *fakeStatus) SetStatus(v string) { s.status = v }
func (s *fakeStatus) SetSpeed(v string)  { s.speed = v }

type countingOverlay struct {
	calls int
	last  Snapshot
}

func (o *countingOverlay) Draw(img *image.RGBA, s Snapshot) {
	o.calls++
	o.last = s
}

func TestDriverTickPresentsFrame(t *testing.T) {
	surface := &fakeSurface{}
	status := &fakeStatus{}
	overlay := &countingOverlay{}
	d := NewDriver(mandel.DefaultView(), DefaultParams(), surface, 64, 48, WithStatus(status), WithOverlay(overlay))

	if surface.w != 64 || surface.h != 48 {
		t.Fatalf("expected surface resized to 64x48, got %dx%d", surface.w, surface.h)
	}

	if err := d.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}
	if surface.writes != 1 || surface.presents != 1 {
		t.Errorf("expected one write and one present, got %d and %d", surface.writes, surface.presents)
	}
	if surface.last.Rect != image.Rect(0, 0, 64, 48) {
		t.Errorf("expected 64x48 frame, got %v", surface.last.Rect)
	}
	if status.status != "FLYING" || status.speed != "1.0x" {
		t.Errorf("expected FLYING / 1.0x, got %s / %s", status.status, status.speed)
	}
	if overlay.calls != 1 || overlay.last.Frame != 1 {
		t.Errorf("expected overlay drawn for frame 1, got %d calls, frame %d", overlay.calls, overlay.last.Frame)
	}

	first := surface.last
	if err := d.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}
	if surface.last != first {
		t.Error("expected the frame buffer to be reused across ticks")
	}
}

func TestDriverSkipsRenderOnEmptySurface(t *testing.T) {
	surface := &fakeSurface{}
	d := NewDriver(mandel.DefaultView(), DefaultParams(), surface, 100, 0)

	depth := d.View.ZoomDepth
	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("expected skipped tick, got %v", err)
	}
	if surface.writes != 0 {
		t.Errorf("expected no frame written, got %d", surface.writes)
	}
	if d.View.ZoomDepth <= depth {
		t.Error("expected navigation to keep advancing")
	}

	if err := d.Apply(mandel.InputMessage{Type: mandel.InputResize, X: 40, Y: 30}); err != nil {
		t.Fatal(err)
	}
	if err := d.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}
	if surface.writes != 1 || surface.last.Rect.Dx() != 40 {
		t.Errorf("expected a 40 px wide frame after resize, got %d writes", surface.writes)
	}
}

func TestDriverApply(t *testing.T) {
	d := NewDriver(mandel.DefaultView(), DefaultParams(), &fakeSurface{}, 100, 100)

	inputs := []mandel.InputMessage{
		{Type: mandel.InputPointer, X: 10, Y: 20},
		{Type: mandel.InputSpeed, Delta: 0.5},
		{Type: mandel.InputClick, X: 75, Y: 25},
	}
	for _, in := range inputs {
		if err := d.Apply(in); err != nil {
			t.Fatalf("%s: %v", in.Type, err)
		}
	}

	if x, y := d.Controller.Pointer(); x != 10 || y != 20 {
		t.Errorf("expected pointer (10,20), got (%v,%v)", x, y)
	}
	if d.Controller.SpeedLabel() != "1.5x" {
		t.Errorf("expected 1.5x, got %s", d.Controller.SpeedLabel())
	}
	if d.Controller.Mode() != Recentering {
		t.Errorf("expected Recentering, got %v", d.Controller.Mode())
	}

	if err := d.Apply(mandel.InputMessage{Type: "warp"}); !errors.Is(err, ErrUnknownInput) {
		t.Errorf("expected ErrUnknownInput, got %v", err)
	}
}

func TestDriverReportsModeChanges(t *testing.T) {
	d := NewDriver(mandel.DefaultView(), DefaultParams(), &fakeSurface{}, 32, 32)

	var changes [][2]Mode
	d.OnModeChange = func(from, to Mode) { changes = append(changes, [2]Mode{from, to}) }

	_ = d.Apply(mandel.InputMessage{Type: mandel.InputPause})
	if err := d.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}
	_ = d.Apply(mandel.InputMessage{Type: mandel.InputClick, X: 16, Y: 16})
	if err := d.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}

	expected := [][2]Mode{{Flying, Paused}, {Paused, Recentering}, {Recentering, Paused}}
	if len(changes) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, changes)
	}
	for i := range expected {
		if changes[i] != expected[i] {
			t.Errorf("change %d: expected %v, got %v", i, expected[i], changes[i])
		}
	}
}

func TestDriverPresentError(t *testing.T) {
	boom := errors.New("lost context")
	d := NewDriver(mandel.DefaultView(), DefaultParams(), &fakeSurface{presentErr: boom}, 8, 8)
	if err := d.Tick(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected present error, got %v", err)
	}
}

func TestDriverOnFrame(t *testing.T) {
	d := NewDriver(mandel.DefaultView(), DefaultParams(), &fakeSurface{}, 8, 8)

	var frames []int
	d.OnFrame = func(s Snapshot) error {
		frames = append(frames, s.Frame)
		return nil
	}
	for range 3 {
		if err := d.Tick(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if len(frames) != 3 || frames[0] != 1 || frames[2] != 3 {
		t.Errorf("expected frames [1 2 3], got %v", frames)
	}

	d.Resize(0, 0)
	if err := d.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(frames) != 3 {
		t.Errorf("expected no frame callback on an empty surface, got %v", frames)
	}

	boom := errors.New("send failed")
	d.Resize(8, 8)
	d.OnFrame = func(Snapshot) error { return boom }
	if err := d.Tick(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected frame hook error, got %v", err)
	}
}

func TestDriverParallelRenderer(t *testing.T) {
	surface := &fakeSurface{}
	d := NewDriver(mandel.DefaultView(), DefaultParams(), surface, 150, 90, WithRenderer(render.NewRenderer(nil, 4)))
	if err := d.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}

	serial := image.NewRGBA(image.Rect(0, 0, 150, 90))
	if err := render.RenderFrame(serial, d.View); err != nil {
		t.Fatal(err)
	}
	for i := range serial.Pix {
		if serial.Pix[i] != surface.last.Pix[i] {
			t.Fatalf("byte %d differs from serial render", i)
		}
	}
}

func TestDriverRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	surface := &fakeSurface{}
	surface.onPresent = func(n int) {
		if n == 3 {
			cancel()
		}
	}
	d := NewDriver(mandel.DefaultView(), DefaultParams(), surface, 16, 16)

	inputs := make(chan mandel.InputMessage, 1)
	inputs <- mandel.InputMessage{Type: mandel.InputSpeed, Delta: 1}
	reload := make(chan Params, 1)
	p := DefaultParams()
	p.ZoomSpeed = 0.01
	reload <- p

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx, time.Millisecond, inputs, reload) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	if surface.presents < 3 {
		t.Errorf("expected at least 3 presents, got %d", surface.presents)
	}
}
