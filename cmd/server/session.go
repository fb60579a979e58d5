package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	mandel "github.com/marben/mandelflight"
	"github.com/marben/mandelflight/flight"
	"github.com/marben/mandelflight/render"
)

type sessionConfig struct {
	start       mandel.ViewState
	params      flight.Params
	palette     string
	workers     int
	supersample int
	interval    time.Duration

	// client surfaces are clamped to maxW×maxH
	maxW, maxH int
}

// sessionHub tracks running sessions and hands them reloaded params.
type sessionHub struct {
	cfg      sessionConfig
	sessions map[*session]struct{}
	m        sync.Mutex
}

func newSessionHub(cfg sessionConfig) *sessionHub {
	return &sessionHub{
		cfg:      cfg,
		sessions: make(map[*session]struct{}),
	}
}

// serve runs one remote flight on c until the client leaves or ctx is done.
// can be called from multiple goroutines in parallel
func (h *sessionHub) serve(ctx context.Context, c *websocket.Conn) error {
	s := h.add(c)
	defer h.remove(s)

	err := s.run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// add registers a session for c, seeded with the current config in the same critical section.
func (h *sessionHub) add(c *websocket.Conn) *session {
	h.m.Lock()
	s := &session{conn: c, cfg: h.cfg, reload: make(chan flight.Params, 1)}
	h.sessions[s] = struct{}{}
	n := len(h.sessions)
	h.m.Unlock()

	log.Printf("sessions: %d", n)
	return s
}

func (h *sessionHub) remove(s *session) {
	h.m.Lock()
	delete(h.sessions, s)
	n := len(h.sessions)
	h.m.Unlock()

	log.Printf("sessions: %d", n)
}

func (h *sessionHub) count() int {
	h.m.Lock()
	defer h.m.Unlock()
	return len(h.sessions)
}

// setParams applies p to running sessions and to sessions started later.
func (h *sessionHub) setParams(p flight.Params) {
	h.m.Lock()
	h.cfg.params = p
	for s := range h.sessions {
		s.offer(p)
	}
	n := len(h.sessions)
	h.m.Unlock()

	log.Printf("flight params pushed to %d sessions", n)
}

type session struct {
	conn   *websocket.Conn
	cfg    sessionConfig
	reload chan flight.Params
}

// offer replaces any params the session has not picked up yet. Called with the hub locked.
func (s *session) offer(p flight.Params) {
	select {
	case <-s.reload:
	default:
	}
	s.reload <- p
}

func (s *session) run(ctx context.Context) error {
	pal, err := render.ParsePalette(s.cfg.palette)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	inputs := make(chan mandel.InputMessage, 16)

	surface := newPNGSurface(ctx, s.conn, s.cfg.supersample)
	d := flight.NewDriver(s.cfg.start, s.cfg.params, surface, 0, 0,
		flight.WithRenderer(render.NewRenderer(pal, s.cfg.workers)))
	d.OnFrame = func(snap flight.Snapshot) error {
		return wsjson.Write(ctx, s.conn, snap.Status())
	}

	g.Go(func() error {
		defer close(inputs)
		for {
			var in mandel.InputMessage
			if err := wsjson.Read(ctx, s.conn, &in); err != nil {
				return err
			}
			select {
			case inputs <- s.toRenderSpace(in):
			case <-ctx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		return d.Run(ctx, s.cfg.interval, inputs, s.reload)
	})

	return g.Wait()
}

// toRenderSpace converts client pixels into supersampled render pixels and clamps resizes.
func (s *session) toRenderSpace(in mandel.InputMessage) mandel.InputMessage {
	k := float64(s.cfg.supersample)
	switch in.Type {
	case mandel.InputResize:
		in.X = math.Floor(clamp(in.X, 0, float64(s.cfg.maxW))) * k
		in.Y = math.Floor(clamp(in.Y, 0, float64(s.cfg.maxH))) * k
	case mandel.InputPointer, mandel.InputClick:
		in.X *= k
		in.Y *= k
	}
	return in
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// pngSurface implements mandel.Surface by sending each frame as a binary PNG message.
type pngSurface struct {
	ctx   context.Context
	conn  *websocket.Conn
	scale int

	src *image.RGBA
	out *image.RGBA
	buf bytes.Buffer
	enc png.Encoder
}

func newPNGSurface(ctx context.Context, c *websocket.Conn, scale int) *pngSurface {
	return &pngSurface{
		ctx:   ctx,
		conn:  c,
		scale: max(scale, 1),
		enc:   png.Encoder{CompressionLevel: png.BestSpeed},
	}
}

func (s *pngSurface) Resize(w, h int) {
	if s.scale > 1 && w > 0 && h > 0 {
		s.out = render.NewFrame(s.out, max(w/s.scale, 1), max(h/s.scale, 1))
	}
}

func (s *pngSurface) WritePixels(img *image.RGBA) { s.src = img }

func (s *pngSurface) Present() error {
	frame := s.src
	if s.scale > 1 {
		render.Downsample(s.out, s.src)
		frame = s.out
	}

	s.buf.Reset()
	if err := s.enc.Encode(&s.buf, frame); err != nil {
		return fmt.Errorf("png.Encode: %w", err)
	}
	return s.conn.Write(s.ctx, websocket.MessageBinary, s.buf.Bytes())
}
