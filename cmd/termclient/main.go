// main.go is a terminal fly-through client.
// Each terminal cell shows two vertically stacked pixels; the mouse steers and clicks recenter.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"

	mandel "github.com/marben/mandelflight"
	"github.com/marben/mandelflight/config"
	"github.com/marben/mandelflight/cue"
	"github.com/marben/mandelflight/flight"
	"github.com/marben/mandelflight/render"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func run() error {
	start := flag.String("start", "default", "start landmark: default, "+fmt.Sprint(mandel.LandmarkNames()))
	palette := flag.String("palette", "hsl", "palette: "+fmt.Sprint(render.PaletteNames()))
	paramsPath := flag.String("params", "", "flight params JSON file, reloaded on change")
	workers := flag.Int("workers", runtime.NumCPU(), "render goroutines")
	fps := flag.Int("fps", 30, "frames per second")
	sound := flag.Bool("sound", false, "play cues on mode changes")
	volume := flag.Float64("volume", 0.3, "cue volume, 0..1")
	logPath := flag.String("log", "", "write log output to this file")
	flag.Parse()

	// the screen belongs to tcell
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	}

	view, err := mandel.StartView(*start)
	if err != nil {
		return err
	}
	pal, err := render.ParsePalette(*palette)
	if err != nil {
		return err
	}
	params, err := config.LoadOrDefault(*paramsPath)
	if err != nil {
		return err
	}
	if *fps <= 0 {
		return fmt.Errorf("fps must be positive")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcell.NewScreen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen.Init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	surface := newCellSurface(screen)
	cols, rows := screen.Size()
	w, h := frameSize(cols, rows)
	d := flight.NewDriver(view, params, surface, w, h,
		flight.WithRenderer(render.NewRenderer(pal, max(*workers, 1))),
		flight.WithStatus(surface),
	)

	if *sound {
		player := cue.NewPlayer(*volume)
		if err := player.Init(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer player.Close()
			d.OnModeChange = player.ModeChanged
		}
	}

	var reload chan flight.Params
	if *paramsPath != "" {
		reload = make(chan flight.Params)
		if err := config.Watch(ctx, *paramsPath, reload); err != nil {
			return err
		}
	}

	inputs := make(chan mandel.InputMessage, 100)
	go pollEvents(ctx, screen, &translator{}, inputs, cancel)

	return d.Run(ctx, time.Second/time.Duration(*fps), inputs, reload)
}

// pollEvents feeds translated screen events to inputs until the screen is finalized,
// the user quits or ctx is done.
func pollEvents(ctx context.Context, screen tcell.Screen, t *translator, inputs chan<- mandel.InputMessage, quit func()) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
		}
		msgs, done := t.translate(ev)
		if done {
			quit()
			return
		}
		for _, m := range msgs {
			select {
			case inputs <- m:
			case <-ctx.Done():
				return
			}
		}
	}
}
