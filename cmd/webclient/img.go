//go:build js && wasm

package main

import (
	"errors"
	"image"
	"syscall/js"
)

var errNoCanvas = errors.New("canvas #myCanvas with a 2d context not found")

// canvasSurface implements mandel.Surface on top of a 2d canvas.
type canvasSurface struct {
	canvas js.Value
	ctx    js.Value

	// jsData is the pixel buffer shared with imageData
	jsData    js.Value
	imageData js.Value
}

func newCanvasSurface() (*canvasSurface, error) {
	document := js.Global().Get("document")
	canvas := document.Call("getElementById", "myCanvas")
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil, errNoCanvas
	}
	ctx := canvas.Call("getContext", "2d")
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, errNoCanvas
	}
	return &canvasSurface{canvas: canvas, ctx: ctx}, nil
}

func (s *canvasSurface) Resize(w, h int) {
	s.canvas.Set("width", w)
	s.canvas.Set("height", h)
	if w == 0 || h == 0 {
		s.jsData, s.imageData = js.Undefined(), js.Undefined()
		return
	}

	// The length is width * height * 4 (RGBA)
	s.jsData = js.Global().Get("Uint8ClampedArray").New(w * h * 4)
	s.imageData = js.Global().Get("ImageData").New(s.jsData, w, h)
}

// WritePixels copies the Go byte slice into the JS TypedArray.
func (s *canvasSurface) WritePixels(img *image.RGBA) {
	if s.jsData.IsUndefined() {
		return
	}
	js.CopyBytesToJS(s.jsData, img.Pix)
}

func (s *canvasSurface) Present() error {
	if s.imageData.IsUndefined() {
		return nil
	}
	s.ctx.Call("putImageData", s.imageData, 0, 0)
	return nil
}

// toCanvas converts event client coordinates into canvas pixels.
func (s *canvasSurface) toCanvas(event js.Value) (x, y float64) {
	rect := s.canvas.Call("getBoundingClientRect")
	rw, rh := rect.Get("width").Float(), rect.Get("height").Float()
	if rw == 0 || rh == 0 {
		return 0, 0
	}
	x = (event.Get("clientX").Float() - rect.Get("left").Float()) * (s.canvas.Get("width").Float() / rw)
	y = (event.Get("clientY").Float() - rect.Get("top").Float()) * (s.canvas.Get("height").Float() / rh)
	return x, y
}
