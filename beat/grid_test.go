package beat

import (
	"math"
	"testing"
)

func TestGridSpacingAndOrder(t *testing.T) {
	lines := Grid(120, 1.0, 4.0)

	if len(lines) != 9 {
		t.Fatalf("expected 9 gridlines over 4 s at 120 BPM, got %d", len(lines))
	}

	interval := 60.0 / 120.0
	for i := 1; i < len(lines); i++ {
		if lines[i].Time <= lines[i-1].Time {
			t.Fatalf("gridlines not in ascending order at %d", i)
		}
		if math.Abs(lines[i].Time-lines[i-1].Time-interval) > 1e-9 {
			t.Fatalf("gridline spacing %g, want %g", lines[i].Time-lines[i-1].Time, interval)
		}
	}
}

func TestGridRadiatesFromDownbeat(t *testing.T) {
	lines := Grid(120, 1.0, 4.0)

	// lines before the downbeat exist, and every 4th beat counting from
	// the downbeat is flagged
	if lines[0].Time != 0.0 {
		t.Fatalf("first gridline at %g, want 0.0", lines[0].Time)
	}

	var flagged []float64
	for _, l := range lines {
		if l.Downbeat {
			flagged = append(flagged, l.Time)
		}
	}
	want := []float64{1.0, 3.0}
	if len(flagged) != len(want) {
		t.Fatalf("downbeat lines at %v, want %v", flagged, want)
	}
	for i := range want {
		if math.Abs(flagged[i]-want[i]) > 1e-9 {
			t.Fatalf("downbeat lines at %v, want %v", flagged, want)
		}
	}
}

func TestGridDegenerateInputs(t *testing.T) {
	if got := Grid(0, 0, 10); got != nil {
		t.Errorf("zero BPM should yield no grid, got %d lines", len(got))
	}
	if got := Grid(120, 0, 0); got != nil {
		t.Errorf("zero duration should yield no grid, got %d lines", len(got))
	}
}

func TestGridBoundsWithinBuffer(t *testing.T) {
	for _, downbeat := range []float64{0, 0.25, 2.9} {
		for _, l := range Grid(97, downbeat, 3.0) {
			if l.Time < 0 || l.Time > 3.0 {
				t.Fatalf("gridline %g outside [0, 3] for downbeat %g", l.Time, downbeat)
			}
		}
	}
}
