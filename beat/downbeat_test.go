package beat

import (
	"math"
	"testing"

	"github.com/deckgrid/trackdna/pcm"
)

func TestLocateSilenceReturnsZero(t *testing.T) {
	buf := pcm.NewSampleBuffer(testSampleRate, make([]float32, 2*testSampleRate))

	if got := NewDownbeatLocator().Locate(buf, 120); got != 0 {
		t.Fatalf("constant-zero buffer located downbeat at %g, want 0", got)
	}
}

func TestLocateFirstTransient(t *testing.T) {
	// half a second of silence, then a 50 ms burst
	samples := make([]float32, testSampleRate)
	start := testSampleRate / 2
	for i := 0; i < int(0.05*testSampleRate); i++ {
		samples[start+i] = float32(math.Sin(2 * math.Pi * 100 * float64(i) / testSampleRate))
	}
	buf := pcm.NewSampleBuffer(testSampleRate, samples)

	got := NewDownbeatLocator().Locate(buf, 120)

	if math.Abs(got-0.5) > 0.05 {
		t.Fatalf("downbeat located at %g, want ~0.5", got)
	}
}

func TestLocateNeverNegative(t *testing.T) {
	buffers := []*pcm.SampleBuffer{
		nil,
		pcm.NewSampleBuffer(testSampleRate, nil),
		pcm.NewSampleBuffer(testSampleRate, make([]float32, 100)),
		clickTrack(120, 3, testSampleRate),
		noiseBuffer(testSampleRate, testSampleRate),
	}

	dl := NewDownbeatLocator()
	for i, buf := range buffers {
		if got := dl.Locate(buf, 120); got < 0 {
			t.Errorf("buffer %d: negative downbeat %g", i, got)
		}
	}
}

// The BPM argument exists for interface symmetry only; it must not change
// the detection result.
func TestLocateIgnoresBPM(t *testing.T) {
	buf := clickTrack(120, 3, testSampleRate)
	dl := NewDownbeatLocator()

	if a, b := dl.Locate(buf, 80), dl.Locate(buf, 175); a != b {
		t.Fatalf("downbeat depends on BPM: %g vs %g", a, b)
	}
}
