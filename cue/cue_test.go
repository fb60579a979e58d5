package cue

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/marben/mandelflight/flight"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
		if len(out) > sampleRate.N(5e9) {
			t.Fatal("cue never ends")
		}
	}
	return out
}

func TestForTransitions(t *testing.T) {
	tests := []struct {
		from, to flight.Mode
		want     bool
	}{
		{flight.Flying, flight.Recentering, true},
		{flight.Recentering, flight.Flying, true},
		{flight.Flying, flight.Paused, true},
		{flight.Recentering, flight.Paused, true},
		{flight.Paused, flight.Flying, true},
		{flight.Paused, flight.Recentering, true},
		{flight.Flying, flight.Flying, false},
	}

	for _, tt := range tests {
		got := For(tt.from, tt.to, 0.5) != nil
		if got != tt.want {
			t.Errorf("%s -> %s: expected cue %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestForSilentAtZeroVolume(t *testing.T) {
	if s := For(flight.Flying, flight.Paused, 0); s != nil {
		t.Error("expected no cue at zero volume")
	}
}

func TestCueIsBoundedAndFinite(t *testing.T) {
	samples := drain(t, For(flight.Recentering, flight.Flying, 1))

	want := sampleRate.N(60e6) + sampleRate.N(140e6)
	if len(samples) != want {
		t.Errorf("expected %d samples, got %d", want, len(samples))
	}
	for i, s := range samples {
		for _, v := range s {
			if math.IsNaN(v) || math.Abs(v) > 1 {
				t.Fatalf("sample %d out of range: %v", i, s)
			}
		}
	}
	if last := samples[len(samples)-1][0]; math.Abs(last) > 0.05 {
		t.Errorf("expected note to fade out, last sample %v", last)
	}
}

func TestFaderRamp(t *testing.T) {
	ones := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})
	f := fadeOut(beep.Take(4, ones), 4)

	buf := make([][2]float64, 4)
	n, _ := f.Stream(buf)
	if n != 4 {
		t.Fatalf("expected 4 samples, got %d", n)
	}
	for i, want := range []float64{1, 0.75, 0.5, 0.25} {
		if buf[i][0] != want {
			t.Errorf("sample %d: expected %v, got %v", i, want, buf[i][0])
		}
	}
}

func TestPlayerWithoutDeviceIsSilent(t *testing.T) {
	p := NewPlayer(0.5)
	p.ModeChanged(flight.Flying, flight.Paused)
	p.Close()
}
