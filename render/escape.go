package render

// EscapeIterations runs z = z² + c from z = 0 and returns the iteration at
// which |z|² first exceeds 4, or maxIter if it never does.
func EscapeIterations(cx, cy float64, maxIter int) int {
	var zr, zi float64
	n := 0
	for n < maxIter {
		zr2 := zr * zr
		zi2 := zi * zi
		if zr2+zi2 > 4 {
			break
		}

		// explicit conversions: no FMA fusion
		zi = float64(2*zr*zi) + cy
		zr = float64(zr2-zi2) + cx
		n++
	}
	return n
}

// InCardioidOrBulb reports whether c lies in the main cardioid or the
// period-2 bulb. Such points never escape, so the renderer paints them
// black without iterating.
func InCardioidOrBulb(cx, cy float64) bool {
	xq := cx - 0.25
	q := xq*xq + cy*cy
	if q*(q+xq) <= 0.25*cy*cy {
		return true
	}
	xb := cx + 1
	return xb*xb+cy*cy <= 0.0625
}
