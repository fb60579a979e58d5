// main.go is a desktop fly-through client built on Ebitengine.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	mandel "github.com/marben/mandelflight"
	"github.com/marben/mandelflight/config"
	"github.com/marben/mandelflight/cue"
	"github.com/marben/mandelflight/flight"
	"github.com/marben/mandelflight/hud"
	"github.com/marben/mandelflight/render"
)

const (
	screenWidth  = 1280
	screenHeight = 720
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
	sound := flag.Bool("sound", false, "play cues on mode changes")
	volume := flag.Float64("volume", 0.3, "cue volume, 0..1")
	flag.Parse()

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := &Game{ctx: ctx, surface: &imageSurface{}}
	g.driver = flight.NewDriver(view, params, g.surface, 0, 0,
		flight.WithRenderer(render.NewRenderer(pal, max(*workers, 1))),
		flight.WithOverlay(hud.New()),
	)

	if *paramsPath != "" {
		g.reload = make(chan flight.Params, 1)
		if err := config.Watch(ctx, *paramsPath, g.reload); err != nil {
			return err
		}
	}

	if *sound {
		player := cue.NewPlayer(*volume)
		if err := player.Init(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer player.Close()
			g.driver.OnModeChange = player.ModeChanged
		}
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("mandelflight")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Game implements the ebiten.Game interface.
type Game struct {
	ctx     context.Context
	driver  *flight.Driver
	surface *imageSurface
	reload  chan flight.Params

	cursor image.Point
}

func (g *Game) Update() error {
	select {
	case p := <-g.reload:
		g.driver.SetParams(p)
		log.Printf("flight params reloaded")
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	for _, in := range g.input() {
		if err := g.driver.Apply(in); err != nil {
			return err
		}
	}
	return g.driver.Tick(g.ctx)
}

// input collects this tick's mouse and keyboard events.
func (g *Game) input() []mandel.InputMessage {
	var msgs []mandel.InputMessage

	x, y := ebiten.CursorPosition()
	if p := image.Pt(x, y); p != g.cursor {
		g.cursor = p
		msgs = append(msgs, mandel.InputMessage{Type: mandel.InputPointer, X: float64(x), Y: float64(y)})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		msgs = append(msgs, mandel.InputMessage{Type: mandel.InputClick, X: float64(x), Y: float64(y)})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		msgs = append(msgs, mandel.InputMessage{Type: mandel.InputPause})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		msgs = append(msgs, mandel.InputMessage{Type: mandel.InputSpeed, Delta: 0.1})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		msgs = append(msgs, mandel.InputMessage{Type: mandel.InputSpeed, Delta: -0.1})
	}
	return msgs
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.surface.img != nil {
		screen.DrawImage(g.surface.img, &ebiten.DrawImageOptions{})
	}
}

// Layout follows the window size one to one, resizing the flight when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w, h := g.driver.Size(); w != outsideWidth || h != outsideHeight {
		g.driver.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// imageSurface implements mandel.Surface with an offscreen ebiten image drawn by Game.Draw.
type imageSurface struct {
	img *ebiten.Image
}

func (s *imageSurface) Resize(w, h int) {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	if w > 0 && h > 0 {
		s.img = ebiten.NewImage(w, h)
	}
}

func (s *imageSurface) WritePixels(img *image.RGBA) {
	if s.img != nil {
		s.img.WritePixels(img.Pix)
	}
}

// Present is a no-op; ebiten shows the image on the next Draw.
func (s *imageSurface) Present() error { return nil }
