package pcm

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		rate    int
		samples int
		want    time.Duration
	}{
		{44100, 44100, time.Second},
		{44100, 22050, 500 * time.Millisecond},
		{48000, 0, 0},
		{0, 1000, 0},
		{-1, 1000, 0},
	}
	for _, tt := range tests {
		buf := NewSampleBuffer(tt.rate, make([]float32, tt.samples))
		if got := buf.Duration(); got != tt.want {
			t.Errorf("rate %d, %d samples: got %v, want %v", tt.rate, tt.samples, got, tt.want)
		}
	}
}

func TestFloat64Copies(t *testing.T) {
	samples := []float32{0.1, -0.5, 1.0}
	buf := NewSampleBuffer(44100, samples)

	out := buf.Float64()
	if len(out) != 3 {
		t.Fatalf("got %d values, want 3", len(out))
	}
	for i := range samples {
		if out[i] != float64(samples[i]) {
			t.Errorf("index %d: got %g, want %g", i, out[i], samples[i])
		}
	}

	// mutating the copy must not touch the buffer
	out[0] = 99
	if buf.Samples[0] != 0.1 {
		t.Error("Float64 aliases the buffer's samples")
	}
}

func TestNewSampleBufferNoCopy(t *testing.T) {
	samples := []float32{1, 2, 3}
	buf := NewSampleBuffer(44100, samples)

	samples[0] = 9
	if buf.Samples[0] != 9 {
		t.Error("constructor copied the samples, callers expect a borrow")
	}
	if buf.Len() != 3 {
		t.Errorf("Len = %d, want 3", buf.Len())
	}
}
