package flight

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	mandel "github.com/marben/mandelflight"
	"github.com/marben/mandelflight/render"
)

// Overlay draws on top of a rendered frame before it is presented.
type Overlay interface {
	Draw(img *image.RGBA, s Snapshot)
}

// Snapshot is the read-only state of a driver after a tick.
type Snapshot struct {
	Frame         int
	Mode          Mode
	View          mandel.ViewState
	MaxIterations int
	VelX, VelY    float64
	DeadZone      float64
	Speed         string
}

// Status converts the snapshot into the remote status message.
func (s Snapshot) Status() mandel.StatusMessage {
	return mandel.StatusMessage{
		Frame:     s.Frame,
		Mode:      s.Mode.String(),
		Speed:     s.Speed,
		ZoomDepth: s.View.ZoomDepth,
		CenterX:   s.View.CenterX,
		CenterY:   s.View.CenterY,
		MaxIter:   s.MaxIterations,
	}
}

// Driver owns the view and navigation state of one fly-through and turns
// them into frames, one Tick per display refresh.
type Driver struct {
	View       mandel.ViewState
	Controller *Controller

	renderer *render.Renderer
	surface  mandel.Surface
	status   mandel.StatusDisplay
	overlay  Overlay

	// OnModeChange, if set, is called from Tick when the mode changed since the last tick.
	OnModeChange func(from, to Mode)
	// OnFrame, if set, is called from Tick after each presented frame. An error aborts the tick.
	OnFrame func(Snapshot) error

	frame    *image.RGBA
	frames   int
	lastMode Mode
	w, h     int
}

type Option func(*Driver)

// WithStatus pushes mode and speed text to s after every tick.
func WithStatus(s mandel.StatusDisplay) Option {
	return func(d *Driver) { d.status = s }
}

// WithOverlay draws o over every frame.
func WithOverlay(o Overlay) Option {
	return func(d *Driver) { d.overlay = o }
}

// WithRenderer replaces the default single-goroutine HSL renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(d *Driver) { d.renderer = r }
}

// NewDriver returns a driver presenting on surface, sized w×h.
func NewDriver(view mandel.ViewState, params Params, surface mandel.Surface, w, h int, opts ...Option) *Driver {
	d := &Driver{
		View:       view,
		Controller: NewController(params, w, h),
		surface:    surface,
	}
	for _, o := range opts {
		o(d)
	}
	if d.renderer == nil {
		d.renderer = render.NewRenderer(render.HSL{}, 1)
	}
	d.Resize(w, h)
	return d
}

// Resize updates the surface, the frame buffer and the steering centre.
func (d *Driver) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	d.w, d.h = w, h
	d.Controller.Resize(w, h)
	if w > 0 && h > 0 {
		d.frame = render.NewFrame(d.frame, w, h)
	}
	d.surface.Resize(w, h)
}

// Size returns the surface size the driver renders for.
func (d *Driver) Size() (w, h int) { return d.w, d.h }

// Frame returns the last rendered frame. It is overwritten by the next Tick.
func (d *Driver) Frame() *image.RGBA { return d.frame }

// Renderer returns the renderer used for frames.
func (d *Driver) Renderer() *render.Renderer { return d.renderer }

// SetParams applies new tunables from the next tick on.
func (d *Driver) SetParams(p Params) { d.Controller.SetParams(p) }

// ErrUnknownInput is returned by Apply for unrecognized input types.
var ErrUnknownInput = errors.New("unknown input")

// Apply routes one input event to the controller (or to Resize).
func (d *Driver) Apply(in mandel.InputMessage) error {
	switch in.Type {
	case mandel.InputPointer:
		d.Controller.PointerMove(in.X, in.Y)
	case mandel.InputClick:
		d.Controller.Click(in.X, in.Y, d.View)
	case mandel.InputPause:
		d.Controller.TogglePause()
	case mandel.InputSpeed:
		d.Controller.SpeedDelta(in.Delta)
	case mandel.InputResize:
		d.Resize(int(in.X), int(in.Y))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownInput, in.Type)
	}
	return nil
}

// Tick advances navigation and zoom, renders, and presents one frame.
// A zero-sized surface skips rendering but still advances the state.
func (d *Driver) Tick(ctx context.Context) error {
	d.noticeMode()
	if d.Controller.Update(&d.View) {
		log.Printf("zoom depth passed %g, reset to %g", mandel.ZoomResetThreshold, mandel.BaseZoomDepth)
	}
	d.noticeMode()

	if d.w == 0 || d.h == 0 {
		return nil
	}

	if err := d.renderer.Render(ctx, d.frame, d.View); err != nil {
		return fmt.Errorf("render frame %d: %w", d.frames, err)
	}
	d.frames++

	snap := d.Snapshot()
	if d.overlay != nil {
		d.overlay.Draw(d.frame, snap)
	}

	d.surface.WritePixels(d.frame)
	if err := d.surface.Present(); err != nil {
		return fmt.Errorf("present frame %d: %w", d.frames, err)
	}

	if d.status != nil {
		d.status.SetStatus(snap.Mode.String())
		d.status.SetSpeed(snap.Speed)
	}
	if d.OnFrame != nil {
		if err := d.OnFrame(snap); err != nil {
			return fmt.Errorf("frame %d: %w", snap.Frame, err)
		}
	}
	return nil
}

func (d *Driver) noticeMode() {
	m := d.Controller.Mode()
	if m == d.lastMode {
		return
	}
	from := d.lastMode
	d.lastMode = m
	if d.OnModeChange != nil {
		d.OnModeChange(from, m)
	}
}

// Snapshot describes the current state; Frame counts rendered frames.
func (d *Driver) Snapshot() Snapshot {
	vx, vy := d.Controller.Velocity()
	return Snapshot{
		Frame:         d.frames,
		Mode:          d.Controller.Mode(),
		View:          d.View,
		MaxIterations: d.View.MaxIterations(),
		VelX:          vx,
		VelY:          vy,
		DeadZone:      d.Controller.Params().DeadZone,
		Speed:         d.Controller.SpeedLabel(),
	}
}

// Run ticks every interval until ctx is done, applying inputs between ticks.
// Params received on reload replace the tunables. Both channels may be nil.
func (d *Driver) Run(ctx context.Context, interval time.Duration, inputs <-chan mandel.InputMessage, reload <-chan Params) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case in, ok := <-inputs:
			if !ok {
				inputs = nil
				continue
			}
			if err := d.Apply(in); err != nil {
				log.Printf("input: %v", err)
			}

		case p, ok := <-reload:
			if !ok {
				reload = nil
				continue
			}
			d.SetParams(p)
			log.Printf("flight params reloaded")

		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}
