package mandel

import (
	"image"
)

// Surface is the raster the fly-through presents frames on.
type Surface interface {
	// Resize changes the surface dimensions in pixels.
	Resize(width, height int)
	// WritePixels hands a full frame to the surface. The surface must copy
	// what it needs; img is reused for the next frame.
	WritePixels(img *image.RGBA)
	// Present makes the last written frame visible.
	Present() error
}

// StatusDisplay shows advisory status text. It is never read back.
type StatusDisplay interface {
	SetStatus(status string)
	SetSpeed(speed string)
}
