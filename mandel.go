package mandel

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Center returns the midpoint of the region.
func (r Region) Center() (x, y float64) {
	return (r.Xmin + r.Xmax) / 2, (r.Ymin + r.Ymax) / 2
}

// Contains reports whether (x, y) lies inside the region (edges included).
func (r Region) Contains(x, y float64) bool {
	return x >= r.Xmin && x <= r.Xmax && y >= r.Ymin && y <= r.Ymax
}

// View returns a view centered on the region whose vertical extent matches the region height.
// Zoom depth never goes below BaseZoomDepth.
func (r Region) View() ViewState {
	cx, cy := r.Center()
	depth := BaseZoomDepth
	if h := r.Ymax - r.Ymin; h > 0 {
		depth = math.Max(math.Log2(viewSpan/h), BaseZoomDepth)
	}
	return ViewState{CenterX: cx, CenterY: cy, ZoomDepth: depth}
}

// ErrUnknownLandmark is returned by StartView for names not in Landmarks.
var ErrUnknownLandmark = errors.New("unknown landmark")

// Landmarks maps the names accepted by -start flags and ?start= query parameters to regions.
var Landmarks = map[string]Region{
	// filaments curling off the neck between cardioid and period-2 bulb
	"seahorse": {Xmin: -0.8, Xmax: -0.7, Ymin: 0.05, Ymax: 0.15},
	// trunk-shaped tendrils near the real axis on the far left
	"elephant": {Xmin: -1.85, Xmax: -1.75, Ymin: -0.10, Ymax: -0.02},
	// minibrot with tight spiral arms inside seahorse valley
	"spiral": {Xmin: -0.7435, Xmax: -0.7420, Ymin: 0.1310, Ymax: 0.1325},
	// threefold spiral
	"triple-spiral": {Xmin: -0.7480, Xmax: -0.7450, Ymin: 0.0950, Ymax: 0.0980},
	"dragon":        {Xmin: -0.7400, Xmax: -0.7350, Ymin: 0.1800, Ymax: 0.1850},
	// minibrot sitting on a spiral arm of the antenna
	"mini-spiral": {Xmin: -1.7390, Xmax: -1.7375, Ymin: -0.0235, Ymax: -0.0220},
}

// StartView returns the view a flight begins with.
// An empty name or "default" yields DefaultView.
func StartView(name string) (ViewState, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "default" {
		return DefaultView(), nil
	}
	r, ok := Landmarks[name]
	if !ok {
		return ViewState{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownLandmark, name, strings.Join(LandmarkNames(), ", "))
	}
	return r.View(), nil
}

// LandmarkNames returns the landmark names in sorted order.
func LandmarkNames() []string {
	names := make([]string, 0, len(Landmarks))
	for n := range Landmarks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
