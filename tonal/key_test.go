package tonal

import (
	"errors"
	"math"
	"testing"

	"github.com/deckgrid/trackdna/chroma"
	"github.com/deckgrid/trackdna/pcm"
)

const testSampleRate = 44100

// tonalBuffer generates a buffer whose only energy sits at exact spectrum
// bins of the 4096-sample analysis frame, one amplitude per bin.
func tonalBuffer(seconds float64, partials map[int]float64) *pcm.SampleBuffer {
	n := int(seconds * testSampleRate)
	samples := make([]float32, n)
	for i := range samples {
		v := 0.0
		for bin, amp := range partials {
			v += amp * math.Sin(2*math.Pi*float64(bin)*float64(i)/4096.0)
		}
		samples[i] = float32(v)
	}
	return pcm.NewSampleBuffer(testSampleRate, samples)
}

func TestEstimateCMajor(t *testing.T) {
	// bin 49 (527.6 Hz) folds to pitch class C, bin 73 (786.0 Hz) to G:
	// tonic and fifth of C major
	buf := tonalBuffer(2, map[int]float64{49: 1.0, 73: 0.6})

	got := NewKeyEstimator().Estimate(buf)

	if got.PitchClass != "C" || got.Scale != ScaleMajor {
		t.Fatalf("got %s %s, want C major", got.PitchClass, got.Scale)
	}
	if got.Camelot != "8B" {
		t.Fatalf("C major alias %q, want 8B", got.Camelot)
	}
}

func TestEstimateAMinor(t *testing.T) {
	// tonic, minor third and fifth of A minor: bins folding to A (bin 41),
	// C (bin 49) and E (bin 62, 667.5 Hz -> pitch class E)
	buf := tonalBuffer(2, map[int]float64{41: 1.0, 49: 0.6, 62: 0.6})

	got := NewKeyEstimator().Estimate(buf)

	if got.PitchClass != "A" || got.Scale != ScaleMinor {
		t.Fatalf("got %s %s, want A minor", got.PitchClass, got.Scale)
	}
	if got.Camelot != "8A" {
		t.Fatalf("A minor alias %q, want 8A", got.Camelot)
	}
}

func TestEstimateZeroBufferDefaultsToCMajor(t *testing.T) {
	buf := pcm.NewSampleBuffer(testSampleRate, make([]float32, 8192))

	got := NewKeyEstimator().Estimate(buf)

	want := KeyEstimate{PitchClass: "C", Scale: ScaleMajor, Camelot: "8B"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestEstimateTooShortForFraming(t *testing.T) {
	buf := pcm.NewSampleBuffer(testSampleRate, make([]float32, 1000))

	got := NewKeyEstimator().Estimate(buf)

	if got.PitchClass != "C" || got.Scale != ScaleMajor || got.Camelot != "8B" {
		t.Fatalf("short buffer should default to C major/8B, got %+v", got)
	}
}

func TestEstimateWithFailingExternalExtractor(t *testing.T) {
	buf := tonalBuffer(2, map[int]float64{49: 1.0, 73: 0.6})

	failing := chroma.FrameExtractorFunc(func([]float64, int) (chroma.Vector, error) {
		return chroma.Vector{}, errors.New("service unavailable")
	})

	got := NewKeyEstimatorWithExtractor(failing).Estimate(buf)
	want := NewKeyEstimator().Estimate(buf)

	if got != want {
		t.Fatalf("per-frame fallback result %+v differs from in-core result %+v", got, want)
	}
}

func TestEstimateWithExternalExtractor(t *testing.T) {
	buf := tonalBuffer(1, map[int]float64{49: 1.0})

	// external extractor reporting all energy on pitch class A
	external := chroma.FrameExtractorFunc(func([]float64, int) (chroma.Vector, error) {
		var v chroma.Vector
		v[9] = 1
		return v, nil
	})

	got := NewKeyEstimatorWithExtractor(external).Estimate(buf)

	if got.PitchClass != "A" || got.Scale != ScaleMajor {
		t.Fatalf("external extractor ignored: got %s %s", got.PitchClass, got.Scale)
	}
	if got.Camelot != "11B" {
		t.Fatalf("A major alias %q, want 11B", got.Camelot)
	}
}

func TestEstimateIdempotent(t *testing.T) {
	buf := tonalBuffer(1, map[int]float64{49: 1.0, 73: 0.6})
	ke := NewKeyEstimator()

	if first, second := ke.Estimate(buf), ke.Estimate(buf); first != second {
		t.Fatalf("estimates differ across runs: %+v then %+v", first, second)
	}
}

func TestCamelotAlias(t *testing.T) {
	tests := []struct {
		pitchClass string
		scale      string
		want       string
	}{
		{"C", ScaleMajor, "8B"},
		{"A", ScaleMinor, "8A"},
		{"F#", ScaleMajor, "2B"},
		{"D#", ScaleMinor, "2A"},
		{"H", ScaleMajor, "8B"}, // unknown pitch class falls back to C major
	}
	for _, tt := range tests {
		if got := CamelotAlias(tt.pitchClass, tt.scale); got != tt.want {
			t.Errorf("CamelotAlias(%q, %q) = %q, want %q", tt.pitchClass, tt.scale, got, tt.want)
		}
	}
}

func TestCorrelateKeyTieKeepsScanOrder(t *testing.T) {
	// a flat profile scores every rotation of a template identically, so
	// all 12 minor candidates tie (and win over the majors, whose template
	// total is smaller); the strict comparison over ascending offsets keeps
	// the first of the tied twelve, class 0
	var profile chroma.Vector
	for i := range profile {
		profile[i] = 1.0 / 12.0
	}

	class, scale := correlateKey(profile)
	if class != 0 || scale != ScaleMinor {
		t.Fatalf("flat profile resolved to class %d %s, want 0 minor", class, scale)
	}
}
