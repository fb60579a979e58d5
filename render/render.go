package render

import (
	"context"
	"errors"
	"image"
	"image/color"

	"golang.org/x/sync/errgroup"

	mandel "github.com/marben/mandelflight"
)

// TileSize is the edge of the square tiles parallel rendering splits a frame into.
const TileSize = 64

// ErrEmptySurface is returned when a frame has no pixels to render.
var ErrEmptySurface = errors.New("empty surface")

// Renderer draws the set into RGBA frames. It keeps the colour table of
// the last budget it saw, so a Renderer must not be shared between goroutines.
type Renderer struct {
	palette Palette
	workers int

	table    []color.RGBA
	tableMax int
	// palette changed since the table was built
	stale bool
}

// NewRenderer returns a renderer using p (HSL when nil). workers > 1 renders
// 64x64 tiles concurrently.
func NewRenderer(p Palette, workers int) *Renderer {
	if p == nil {
		p = HSL{}
	}
	if workers < 1 {
		workers = 1
	}
	return &Renderer{palette: p, workers: workers}
}

// SetPalette switches palettes starting with the next frame.
func (r *Renderer) SetPalette(p Palette) {
	if p != nil {
		r.palette = p
		r.stale = true
	}
}

// Palette returns the palette in use.
func (r *Renderer) Palette() Palette {
	return r.palette
}

// Render overwrites every pixel of img with the view. img.Rect must start at (0, 0).
func (r *Renderer) Render(ctx context.Context, img *image.RGBA, view mandel.ViewState) error {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return ErrEmptySurface
	}

	maxIter := view.MaxIterations()
	table := r.colors(maxIter)
	bounds := view.Bounds(w, h)

	if r.workers == 1 {
		renderRect(img, img.Rect, bounds, w, h, maxIter, table)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, tile := range SplitRect(img.Rect, TileSize, TileSize) {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// tiles are disjoint, so workers never touch the same bytes
			renderRect(img, tile, bounds, w, h, maxIter, table)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (r *Renderer) colors(maxIter int) []color.RGBA {
	if r.stale || r.tableMax != maxIter || len(r.table) == 0 {
		r.table = colorTable(r.palette, maxIter, r.table)
		r.tableMax = maxIter
		r.stale = false
	}
	return r.table
}

// RenderFrame renders the view into img with the HSL palette on the calling goroutine.
func RenderFrame(img *image.RGBA, view mandel.ViewState) error {
	return NewRenderer(HSL{}, 1).Render(context.Background(), img, view)
}

// RenderTile renders only the tile of a w×h frame. img must cover the tile.
func RenderTile(img *image.RGBA, tile image.Rectangle, w, h int, view mandel.ViewState, p Palette) {
	maxIter := view.MaxIterations()
	renderRect(img, tile, view.Bounds(w, h), w, h, maxIter, colorTable(p, maxIter, nil))
}

func renderRect(img *image.RGBA, tile image.Rectangle, r mandel.Region, imgW, imgH, maxIter int, table []color.RGBA) {
	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		cy := r.Ymin + (float64(py)*(r.Ymax-r.Ymin))/float64(imgH)

		for px := tile.Min.X; px < tile.Max.X; px++ {
			cx := r.Xmin + (float64(px)*(r.Xmax-r.Xmin))/float64(imgW)

			col := inSet
			if !InCardioidOrBulb(cx, cy) {
				col = table[EscapeIterations(cx, cy, maxIter)]
			}

			i := img.PixOffset(px, py)
			s := img.Pix[i : i+4 : i+4]
			s[0] = col.R
			s[1] = col.G
			s[2] = col.B
			s[3] = 255
		}
	}
}

// NewFrame allocates a frame buffer, or reuses img when it already has the size.
func NewFrame(img *image.RGBA, w, h int) *image.RGBA {
	if img != nil && img.Rect.Dx() == w && img.Rect.Dy() == h {
		return img
	}
	if img != nil && cap(img.Pix) >= w*h*4 {
		return &image.RGBA{Pix: img.Pix[:w*h*4], Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}
