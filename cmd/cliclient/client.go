package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandelflight"
)

// script returns the inputs to send before frame n is read.
type script func(n int) []mandel.InputMessage

// flightScript sizes the remote surface, recenters on a point right of the
// starting view and then circles the pointer outside the dead zone.
func flightScript(w, h int) script {
	fw, fh := float64(w), float64(h)
	return func(n int) []mandel.InputMessage {
		switch n {
		case 0:
			return []mandel.InputMessage{
				{Type: mandel.InputResize, X: fw, Y: fh},
				{Type: mandel.InputPointer, X: fw / 2, Y: fh / 2},
			}
		case 1:
			return []mandel.InputMessage{{Type: mandel.InputClick, X: fw * 0.45, Y: fh * 0.4}}
		}
		a := float64(n) * 0.05
		r := math.Min(fw, fh) / 4
		return []mandel.InputMessage{{Type: mandel.InputPointer, X: fw/2 + r*math.Cos(a), Y: fh/2 + r*math.Sin(a)}}
	}
}

// pngSaver writes frame n as frame-%04d.png in dir.
func pngSaver(dir string) func(n int, data []byte) error {
	return func(n int, data []byte) error {
		return os.WriteFile(filepath.Join(dir, fmt.Sprintf("frame-%04d.png", n)), data, 0o644)
	}
}

type recorder struct {
	script script
	frames int
	save   func(n int, data []byte) error
}

// record dials addr and saves frames until r.frames have been received.
func (r *recorder) record(ctx context.Context, addr string) error {
	c, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer c.CloseNow()
	c.SetReadLimit(64 << 20)

	saved, scripted := 0, -1
	for saved < r.frames {
		if scripted < saved {
			for _, in := range r.script(saved) {
				if err := wsjson.Write(ctx, c, in); err != nil {
					return fmt.Errorf("send %s: %w", in.Type, err)
				}
			}
			scripted = saved
		}

		typ, data, err := c.Read(ctx)
		if err != nil {
			return fmt.Errorf("read frame %d: %w", saved, err)
		}
		switch typ {
		case websocket.MessageBinary:
			if err := r.save(saved, data); err != nil {
				return fmt.Errorf("save frame %d: %w", saved, err)
			}
			saved++
		case websocket.MessageText:
			var status mandel.StatusMessage
			if err := json.Unmarshal(data, &status); err != nil {
				return fmt.Errorf("decode status: %w", err)
			}
			if status.Frame%30 == 0 {
				log.Printf("frame %d: %s %s zoom %.2f iterations %d", status.Frame, status.Mode, status.Speed, status.ZoomDepth, status.MaxIter)
			}
		}
	}

	return c.Close(websocket.StatusNormalClosure, "")
}
