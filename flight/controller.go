package flight

import (
	"fmt"
	"math"

	mandel "github.com/marben/mandelflight"
)

// Mode is the navigation state.
type Mode int

const (
	Flying Mode = iota
	Paused
	Recentering
)

func (m Mode) String() string {
	switch m {
	case Flying:
		return "FLYING"
	case Paused:
		return "PAUSED"
	case Recentering:
		return "CENTERING"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Controller steers a view from pointer input: dead-zone flight, click to
// recenter, pause and a speed multiplier. It is not safe for concurrent use;
// input and Update must come from the goroutine that owns the frame loop.
type Controller struct {
	params Params
	mode   Mode

	// paused while recentering: zoom is frozen and the animation lands in Paused
	pauseOnArrival bool

	width, height int

	pointerX, pointerY float64

	velX, velY             float64
	targetVelX, targetVelY float64

	targetX, targetY float64

	speed float64
}

// NewController returns a controller in Flying mode for a w×h surface,
// with the pointer resting at the surface centre.
func NewController(p Params, w, h int) *Controller {
	c := &Controller{params: p, speed: 1}
	c.Resize(w, h)
	c.pointerX, c.pointerY = float64(w)/2, float64(h)/2
	return c
}

func (c *Controller) Params() Params { return c.params }

// SetParams swaps tunables between frames. The speed multiplier is re-clamped.
func (c *Controller) SetParams(p Params) {
	c.params = p
	c.speed = clamp(c.speed, p.MinSpeed, p.MaxSpeed)
}

func (c *Controller) Mode() Mode { return c.mode }

// Velocity is the smoothed per-frame centre shift.
func (c *Controller) Velocity() (x, y float64) { return c.velX, c.velY }

// Target returns the recenter target; ok is false unless recentering.
func (c *Controller) Target() (x, y float64, ok bool) {
	return c.targetX, c.targetY, c.mode == Recentering
}

func (c *Controller) Pointer() (x, y float64) { return c.pointerX, c.pointerY }

func (c *Controller) SpeedMultiplier() float64 { return c.speed }

// SpeedLabel formats the speed multiplier for status displays.
func (c *Controller) SpeedLabel() string {
	return fmt.Sprintf("%.1fx", c.speed)
}

func (c *Controller) Resize(w, h int) {
	c.width, c.height = max(w, 0), max(h, 0)
}

func (c *Controller) PointerMove(x, y float64) {
	c.pointerX, c.pointerY = x, y
}

// Click starts recentering on the plane point under (x, y), whatever the mode.
// A paused flight stays paused: the centre animates, zoom does not.
func (c *Controller) Click(x, y float64, view mandel.ViewState) {
	if c.width == 0 || c.height == 0 {
		return
	}
	c.targetX, c.targetY = mandel.ScreenToComplex(x, y, c.width, c.height, view)
	switch c.mode {
	case Flying:
		c.pauseOnArrival = false
	case Paused:
		c.pauseOnArrival = true
	}
	c.mode = Recentering
	c.stop()
}

// TogglePause flips between Flying and Paused. While recentering it flips
// the pause without stopping the animation, which then lands in Paused.
func (c *Controller) TogglePause() {
	switch c.mode {
	case Flying:
		c.mode = Paused
		c.stop()
	case Paused:
		c.mode = Flying
	case Recentering:
		c.pauseOnArrival = !c.pauseOnArrival
	}
}

// SpeedDelta adds delta to the speed multiplier.
func (c *Controller) SpeedDelta(delta float64) {
	c.SetSpeed(c.speed + delta)
}

func (c *Controller) SetSpeed(v float64) {
	c.speed = clamp(v, c.params.MinSpeed, c.params.MaxSpeed)
}

// Steering is the desired direction scaled to [0, 1] by pointer deflection.
// It is zero inside the dead zone and saturates quadratically at MaxDeflection.
func (c *Controller) Steering() (x, y float64) {
	dx := c.pointerX - float64(c.width)/2
	dy := c.pointerY - float64(c.height)/2
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 || dist < c.params.DeadZone {
		return 0, 0
	}

	t := (dist - c.params.DeadZone) / (c.params.MaxDeflection - c.params.DeadZone)
	strength := math.Min(t*t, 1)
	return dx / dist * strength, dy / dist * strength
}

// Update advances the view by one frame. It reports whether zoom depth hit
// the reset threshold and fell back to the baseline.
func (c *Controller) Update(view *mandel.ViewState) (zoomReset bool) {
	if c.mode == Paused {
		return false
	}

	if c.mode == Flying {
		sx, sy := c.Steering()
		c.targetVelX = sx * c.params.MovementSpeed
		c.targetVelY = sy * c.params.MovementSpeed
	}

	c.velX += (c.targetVelX - c.velX) * c.params.Smoothing
	c.velY += (c.targetVelY - c.velY) * c.params.Smoothing

	switch c.mode {
	case Flying:
		view.CenterX += c.velX
		view.CenterY += c.velY
	case Recentering:
		c.animateCenter(view)
	}

	if c.mode == Paused || c.pauseOnArrival {
		return false
	}
	return view.AdvanceZoom(c.params.ZoomSpeed * c.speed)
}

func (c *Controller) animateCenter(view *mandel.ViewState) {
	dx := c.targetX - view.CenterX
	dy := c.targetY - view.CenterY

	if math.Sqrt(dx*dx+dy*dy) < c.params.CenterEpsilon {
		view.CenterX, view.CenterY = c.targetX, c.targetY
		c.mode = Flying
		if c.pauseOnArrival {
			c.mode = Paused
			c.pauseOnArrival = false
		}
		return
	}

	view.CenterX += dx * c.params.CenterAnimationSpeed
	view.CenterY += dy * c.params.CenterAnimationSpeed
}

func (c *Controller) stop() {
	c.velX, c.velY = 0, 0
	c.targetVelX, c.targetVelY = 0, 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
