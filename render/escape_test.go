package render

import "testing"

func TestEscapeIterationsKnownPoints(t *testing.T) {
	tests := []struct {
		name     string
		cx, cy   float64
		maxIter  int
		expected int
	}{
		{"origin never escapes", 0, 0, 100, 100},
		{"minus one cycles", -1, 0, 100, 100},
		{"far point escapes after one step", 3, 0, 100, 1},
		{"c=1 escapes after three steps", 1, 0, 100, 3},
		{"c=i is bounded", 0, 1, 500, 500},
		{"zero budget", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeIterations(tt.cx, tt.cy, tt.maxIter); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestEscapeIterationsStableAcrossBudgets(t *testing.T) {
	points := [][2]float64{{0.3, 0.5}, {-0.75, 0.1}, {-1.8, 0.02}, {0.26, 0}, {-0.1, 0.9}}

	for _, p := range points {
		ref := EscapeIterations(p[0], p[1], 5000)
		if ref == 5000 {
			continue
		}
		prev := 0
		for budget := 1; budget <= 2*ref+10; budget++ {
			got := EscapeIterations(p[0], p[1], budget)
			if got < prev {
				t.Fatalf("(%v,%v): budget %d gave %d, less than %d at budget %d", p[0], p[1], budget, got, prev, budget-1)
			}
			prev = got
			if budget >= ref && got != ref {
				t.Errorf("(%v,%v): budget %d gave %d, expected stable %d", p[0], p[1], budget, got, ref)
			}
		}
	}
}

func TestFastPathAgreesWithEvaluator(t *testing.T) {
	const maxIter = 1000
	checked := 0
	for i := 0; i <= 250; i++ {
		cx := -2 + float64(i)*0.01
		for j := 0; j <= 240; j++ {
			cy := -1.2 + float64(j)*0.01
			if !InCardioidOrBulb(cx, cy) {
				continue
			}
			checked++
			if n := EscapeIterations(cx, cy, maxIter); n != maxIter {
				t.Fatalf("(%v,%v) passes the fast path but escapes at %d", cx, cy, n)
			}
		}
	}
	if checked == 0 {
		t.Fatal("expected some grid points inside the cardioid or bulb")
	}
}

func TestInCardioidOrBulb(t *testing.T) {
	tests := []struct {
		cx, cy   float64
		expected bool
	}{
		{0, 0, true},
		{-0.5, 0, true},
		{-1, 0, true},
		{-1.2, 0, true},
		{0.3, 0, false},
		{-1.3, 0, false},
		{-0.75, 0.5, false},
		{2, 2, false},
	}

	for _, tt := range tests {
		if got := InCardioidOrBulb(tt.cx, tt.cy); got != tt.expected {
			t.Errorf("InCardioidOrBulb(%v, %v): expected %v, got %v", tt.cx, tt.cy, tt.expected, got)
		}
	}
}

func BenchmarkEscapeIterations(b *testing.B) {
	for b.Loop() {
		EscapeIterations(-0.7435, 0.1314, 1000)
	}
}
