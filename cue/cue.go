// Package cue plays short tones when the navigation mode changes.
package cue

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/marben/mandelflight/flight"
)

const sampleRate = beep.SampleRate(44100)

// note is one tone of a cue.
type note struct {
	freq float64
	dur  time.Duration
}

var (
	recenterNotes = []note{{660, 60 * time.Millisecond}, {880, 90 * time.Millisecond}}
	arriveNotes   = []note{{880, 60 * time.Millisecond}, {1320, 140 * time.Millisecond}}
	pauseNotes    = []note{{330, 120 * time.Millisecond}}
	resumeNotes   = []note{{440, 50 * time.Millisecond}, {550, 70 * time.Millisecond}}
)

// Player mixes cues into the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer returns a player at the given volume (0..1). Call Init before use.
func NewPlayer(volume float64) *Player {
	return &Player{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the audio device. A player that failed to init stays silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops all sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// ModeChanged matches flight.Driver.OnModeChange.
func (p *Player) ModeChanged(from, to flight.Mode) {
	s := For(from, to, p.volume)
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// For returns the cue for a mode transition, or nil if it has none.
func For(from, to flight.Mode, volume float64) beep.Streamer {
	var notes []note
	switch {
	case to == flight.Recentering:
		notes = recenterNotes
	case from == flight.Recentering && to == flight.Flying:
		notes = arriveNotes
	case to == flight.Paused:
		notes = pauseNotes
	case from == flight.Paused && to == flight.Flying:
		notes = resumeNotes
	}
	if len(notes) == 0 || volume <= 0 {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			continue
		}
		parts = append(parts, fadeOut(beep.Take(sampleRate.N(n.dur), tone), sampleRate.N(n.dur)))
	}
	if len(parts) == 0 {
		return nil
	}

	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   math.Log2(volume),
	}
}

// fader ramps amplitude linearly to zero over len samples.
type fader struct {
	s        beep.Streamer
	pos, len int
}

func fadeOut(s beep.Streamer, total int) beep.Streamer {
	return &fader{s: s, len: max(total, 1)}
}

func (f *fader) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1 - float64(f.pos)/float64(f.len)
		if g < 0 {
			g = 0
		}
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

func (f *fader) Err() error { return f.s.Err() }
