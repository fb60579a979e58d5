package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	mandel "github.com/marben/mandelflight"
	"github.com/marben/mandelflight/config"
	"github.com/marben/mandelflight/flight"
	"github.com/marben/mandelflight/render"
)

// main is the entry point for the fly-through server.
// It serves the wasm client from ./static and renders remote flights for /ws clients.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	port := flag.Int("port", 8080, "http port")
	static := flag.String("static", "./static", "directory served at /")
	start := flag.String("start", "default", "start landmark: default, "+fmt.Sprint(mandel.LandmarkNames()))
	palette := flag.String("palette", "hsl", "palette: "+fmt.Sprint(render.PaletteNames()))
	paramsPath := flag.String("params", "", "flight params JSON file, reloaded on change")
	workers := flag.Int("workers", runtime.NumCPU(), "render goroutines per session")
	supersample := flag.Int("supersample", 1, "render at N times the client resolution and downscale")
	fps := flag.Int("fps", 30, "frames per second sent to each client")
	flag.Parse()

	view, err := mandel.StartView(*start)
	if err != nil {
		return err
	}
	if _, err := render.ParsePalette(*palette); err != nil {
		return err
	}
	params, err := config.LoadOrDefault(*paramsPath)
	if err != nil {
		return err
	}
	if *fps <= 0 || *supersample <= 0 {
		return fmt.Errorf("fps and supersample must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hub := newSessionHub(sessionConfig{
		start:       view,
		params:      params,
		palette:     *palette,
		workers:     max(*workers, 1),
		supersample: *supersample,
		interval:    time.Second / time.Duration(*fps),
		maxW:        1920,
		maxH:        1080,
	})

	if *paramsPath != "" {
		reload := make(chan flight.Params)
		if err := config.Watch(ctx, *paramsPath, reload); err != nil {
			return err
		}
		go func() {
			for p := range reload {
				hub.setParams(p)
			}
		}()
	}

	// httpServer provides index.html, main.wasm along with the websocket endpoint
	httpServer := webServer(ctx, *port, *static, hub)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("mandelflight server waiting for websocket connections")
	if err := httpServer.ListenAndServe(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("httpServer: %w", err)
	}
	return nil
}
