package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Downsample scales src into dst with Catmull-Rom filtering. Rendering at a
// multiple of the target size and downsampling anti-aliases filament edges.
func Downsample(dst, src *image.RGBA) {
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}
