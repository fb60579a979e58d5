//go:build js && wasm

// webclient.go is a WASM fly-through client.
// It renders the Mandelbrot set into the page canvas once per animation frame and steers with the mouse.

package main

import (
	"context"
	"fmt"
	"log"
	"syscall/js"

	mandel "github.com/marben/mandelflight"
	"github.com/marben/mandelflight/flight"
	"github.com/marben/mandelflight/hud"
	"github.com/marben/mandelflight/render"
)

// main is the entry point for the WASM web client.
func main() {
	logScreenf("Starting WASM fly-through client...")

	start, palette := queryParam("start"), queryParam("palette")
	view, err := mandel.StartView(start)
	if err != nil {
		logFatalf("start %q: %v", start, err)
	}
	pal, err := render.ParsePalette(palette)
	if err != nil {
		logFatalf("palette %q: %v", palette, err)
	}

	surface, err := newCanvasSurface()
	if err != nil {
		logFatalf("%v", err)
	}

	w, h := windowSize()
	d := flight.NewDriver(view, flight.DefaultParams(), surface, w, h,
		flight.WithRenderer(render.NewRenderer(pal, 1)),
		flight.WithOverlay(hud.New()),
		flight.WithStatus(domStatus{}),
	)
	d.OnModeChange = func(from, to flight.Mode) { log.Printf("mode: %s -> %s", from, to) }
	logScreenf("Canvas initialized to dimensions %dx%d", w, h)

	listen(d, surface)

	// JS callbacks run one at a time, so events and ticks never overlap.
	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		if err := d.Tick(context.Background()); err != nil {
			logFatalf("tick: %v", err)
		}
		js.Global().Call("requestAnimationFrame", frame)
		return nil
	})
	js.Global().Call("requestAnimationFrame", frame)

	// Block main goroutine to keep WASM running
	select {}
}

// listen wires DOM input events to the driver.
func listen(d *flight.Driver, s *canvasSurface) {
	window := js.Global().Get("window")
	document := js.Global().Get("document")

	s.canvas.Call("addEventListener", "mousemove", js.FuncOf(func(this js.Value, args []js.Value) any {
		x, y := s.toCanvas(args[0])
		d.Apply(mandel.InputMessage{Type: mandel.InputPointer, X: x, Y: y})
		return nil
	}))
	s.canvas.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) any {
		x, y := s.toCanvas(args[0])
		d.Apply(mandel.InputMessage{Type: mandel.InputClick, X: x, Y: y})
		return nil
	}))
	s.canvas.Call("addEventListener", "contextmenu", js.FuncOf(func(this js.Value, args []js.Value) any {
		args[0].Call("preventDefault")
		d.Apply(mandel.InputMessage{Type: mandel.InputPause})
		return nil
	}))
	document.Call("addEventListener", "keydown", js.FuncOf(func(this js.Value, args []js.Value) any {
		event := args[0]
		switch event.Get("code").String() {
		case "Space":
			event.Call("preventDefault")
			d.Apply(mandel.InputMessage{Type: mandel.InputPause})
			return nil
		}
		switch event.Get("key").String() {
		case "+", "=":
			d.Apply(mandel.InputMessage{Type: mandel.InputSpeed, Delta: 0.1})
		case "-", "_":
			d.Apply(mandel.InputMessage{Type: mandel.InputSpeed, Delta: -0.1})
		}
		return nil
	}))
	window.Call("addEventListener", "resize", js.FuncOf(func(this js.Value, args []js.Value) any {
		w, h := windowSize()
		d.Resize(w, h)
		return nil
	}))
}

func windowSize() (w, h int) {
	window := js.Global().Get("window")
	return window.Get("innerWidth").Int(), window.Get("innerHeight").Int()
}

// queryParam returns the named URL query parameter, or "" when it is absent.
func queryParam(name string) string {
	search := js.Global().Get("window").Get("location").Get("search")
	v := js.Global().Get("URLSearchParams").New(search).Call("get", name)
	if v.IsNull() {
		return ""
	}
	return v.String()
}

// domStatus implements mandel.StatusDisplay with the page's status elements.
type domStatus struct{}

func (domStatus) SetStatus(s string) { setText("status", s) }
func (domStatus) SetSpeed(s string)  { setText("speed", s) }

func setText(id, s string) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() {
		return
	}
	if el.Get("textContent").String() != s {
		el.Set("textContent", s)
	}
}

// logScreenf appends a formatted message to the log element in the DOM.
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	log.Print(msg)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	if logElem.IsNull() {
		return
	}
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}
