package mandel

import "math"

const (
	// BaseZoomDepth is the zoom depth a flight starts at and falls back to after a reset.
	BaseZoomDepth = 0.1

	// ZoomResetThreshold bounds zoom depth; float64 loses the detail past it.
	ZoomResetThreshold = 1e10

	// IterationBase and IterationScale define the frame iteration budget.
	IterationBase  = 40
	IterationScale = 5

	// viewSpan is the height of the visible plane at zoom depth 0.
	viewSpan = 4.0
)

// ViewState is the part of the complex plane shown on the surface.
type ViewState struct {
	CenterX, CenterY float64
	ZoomDepth        float64
}

// DefaultView is the classic whole-set view the fly-through starts from.
func DefaultView() ViewState {
	return ViewState{CenterX: -0.7, CenterY: 0, ZoomDepth: BaseZoomDepth}
}

// Scale returns the height of the visible plane, 4 / 2^zoomDepth.
func (v ViewState) Scale() float64 {
	return viewSpan / math.Pow(2, v.ZoomDepth)
}

// MaxIterations is the escape-time budget for the current zoom depth.
// The budget grows with log2 of the depth and never drops below 1.
func (v ViewState) MaxIterations() int {
	n := int(math.Floor(math.Log2(v.ZoomDepth)*IterationScale)) + IterationBase
	if n < 1 {
		return 1
	}
	return n
}

// Bounds returns the visible part of the complex plane for a w×h surface.
func (v ViewState) Bounds(w, h int) Region {
	scale := v.Scale()
	aspect := float64(w) / float64(h)
	return Region{
		Xmin: v.CenterX - (scale*aspect)/2,
		Xmax: v.CenterX + (scale*aspect)/2,
		Ymin: v.CenterY - scale/2,
		Ymax: v.CenterY + scale/2,
	}
}

// AdvanceZoom multiplies zoom depth by (1 + rate) and resets it to BaseZoomDepth
// once it passes ZoomResetThreshold. It reports whether a reset happened.
func (v *ViewState) AdvanceZoom(rate float64) bool {
	v.ZoomDepth *= 1 + rate
	if v.ZoomDepth > ZoomResetThreshold {
		v.ZoomDepth = BaseZoomDepth
		return true
	}
	return false
}

// ScreenToComplex maps a surface pixel position to the complex plane.
// h must be positive.
func ScreenToComplex(sx, sy float64, w, h int, v ViewState) (cx, cy float64) {
	scale := v.Scale()
	aspect := float64(w) / float64(h)

	nx := sx/float64(w) - 0.5
	ny := sy/float64(h) - 0.5

	return nx*scale*aspect + v.CenterX, ny*scale + v.CenterY
}

// ComplexToScreen is the inverse of ScreenToComplex.
func ComplexToScreen(cx, cy float64, w, h int, v ViewState) (sx, sy float64) {
	scale := v.Scale()
	aspect := float64(w) / float64(h)

	nx := (cx - v.CenterX) / (scale * aspect)
	ny := (cy - v.CenterY) / scale

	return (nx + 0.5) * float64(w), (ny + 0.5) * float64(h)
}
