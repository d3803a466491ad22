package tonal

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/deckgrid/trackdna/chroma"
	"github.com/deckgrid/trackdna/pcm"
)

// Scale tags for KeyEstimate.
const (
	ScaleMajor = "major"
	ScaleMinor = "minor"
)

const (
	keyFrameSize = 4096
	keyHopSize   = 2048
)

// pitchClassNames are the 12 canonical pitch class names, index 0 = C.
var pitchClassNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Krumhansl-Schmuckler tonal-hierarchy templates (empirically derived).
// Index 0 is the tonic, index 7 the fifth.
var (
	majorTemplate = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorTemplate = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

// KeyEstimate is a musical key with its Camelot-wheel alias. Immutable once
// computed.
type KeyEstimate struct {
	PitchClass string `json:"pitch_class"` // one of the 12 canonical names
	Scale      string `json:"scale"`       // "major" or "minor"
	Camelot    string `json:"camelot"`     // wheel position, e.g. "8B"
}

// KeyEstimator estimates the musical key of a buffer by correlating its
// energy-weighted chroma profile against rotated major/minor templates.
type KeyEstimator struct {
	extractor chroma.FrameExtractor
}

// NewKeyEstimator creates an estimator using the in-core spectral chroma
// computation.
func NewKeyEstimator() *KeyEstimator {
	return &KeyEstimator{
		extractor: chroma.NewSpectrumExtractor(),
	}
}

// NewKeyEstimatorWithExtractor prefers the given external chroma extractor,
// falling back per frame to the in-core computation when it fails.
func NewKeyEstimatorWithExtractor(external chroma.FrameExtractor) *KeyEstimator {
	return &KeyEstimator{
		extractor: chroma.WithFallback(external, chroma.NewSpectrumExtractor()),
	}
}

// Estimate returns the key of the buffer. Buffers yielding no usable chroma
// frames return C major.
func (ke *KeyEstimator) Estimate(buf *pcm.SampleBuffer) KeyEstimate {
	profile, ok := ke.chromaProfile(buf)
	if !ok {
		return newKeyEstimate(0, ScaleMajor)
	}

	class, scale := correlateKey(profile)
	return newKeyEstimate(class, scale)
}

// chromaProfile frames the signal (4096-sample windows, 2048 hop), weights
// each frame's chroma vector by its RMS energy and aggregates an
// L1-normalized profile. Returns ok=false when no frames were processed.
func (ke *KeyEstimator) chromaProfile(buf *pcm.SampleBuffer) (chroma.Vector, bool) {
	var profile chroma.Vector
	if buf == nil || buf.SampleRate <= 0 || buf.Len() < keyFrameSize {
		return profile, false
	}

	signal := buf.Float64()

	totalEnergy := 0.0
	frames := 0

	for start := 0; start+keyFrameSize <= len(signal); start += keyHopSize {
		frame := signal[start : start+keyFrameSize]

		vec, err := ke.extractor.ExtractFrame(frame, buf.SampleRate)
		if err != nil {
			// the extractor chain already fell back once; a frame
			// that still fails is skipped, not fatal
			continue
		}

		energy := frameRMS(frame)
		for i := range profile {
			profile[i] += vec[i] * energy
		}
		totalEnergy += energy
		frames++
	}

	if frames == 0 {
		return profile, false
	}

	if totalEnergy > 0 {
		floats.Scale(1/totalEnergy, profile[:])
	}
	profile.Normalize()

	return profile, true
}

// correlateKey scores the profile against all 24 rotated templates:
// correlation = sum_i profile[(i+offset) mod 12] * template[i].
// Majors are scanned before minors, rotations ascending; the strict
// comparison keeps the first candidate encountered on ties.
func correlateKey(profile chroma.Vector) (int, string) {
	bestClass := 0
	bestScale := ScaleMajor
	bestScore := math.Inf(-1)

	for _, scale := range []string{ScaleMajor, ScaleMinor} {
		template := majorTemplate
		if scale == ScaleMinor {
			template = minorTemplate
		}

		for offset := 0; offset < 12; offset++ {
			score := 0.0
			for i := 0; i < 12; i++ {
				score += profile[(i+offset)%12] * template[i]
			}
			if score > bestScore {
				bestScore = score
				bestClass = offset
				bestScale = scale
			}
		}
	}

	return bestClass, bestScale
}

func newKeyEstimate(class int, scale string) KeyEstimate {
	name := pitchClassNames[class]
	return KeyEstimate{
		PitchClass: name,
		Scale:      scale,
		Camelot:    CamelotAlias(name, scale),
	}
}

func frameRMS(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(frame, frame) / float64(len(frame)))
}
