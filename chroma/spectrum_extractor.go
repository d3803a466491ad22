package chroma

import (
	"math"

	"github.com/deckgrid/trackdna/spectral"
)

const (
	minFreq    = 80.0   // Hz, approximate E2
	maxFreq    = 5000.0 // Hz, above which pitch content is mostly noise
	tuningFreq = 440.0  // A4
)

// SpectrumExtractor is the in-core chroma computation: it runs a magnitude
// spectrum over the frame, keeps bins whose frequency falls in
// [minFreq, maxFreq], converts each bin frequency to a fractional MIDI pitch
// (69 + 12*log2(f/440)) and accumulates magnitude into floor(pitch) mod 12.
type SpectrumExtractor struct {
	analyzer *spectral.Analyzer
}

// NewSpectrumExtractor creates the in-core fallback extractor.
func NewSpectrumExtractor() *SpectrumExtractor {
	return &SpectrumExtractor{
		analyzer: spectral.NewAnalyzer(),
	}
}

// ExtractFrame computes the chroma vector for one frame. It never fails;
// degenerate input yields a zero vector.
func (se *SpectrumExtractor) ExtractFrame(frame []float64, sampleRate int) (Vector, error) {
	var v Vector
	if len(frame) == 0 || sampleRate <= 0 {
		return v, nil
	}

	magnitudes := se.analyzer.Magnitudes(frame)

	// Only the positive-frequency half carries distinct information; the
	// upper half mirrors it.
	for bin := 1; bin <= len(frame)/2 && bin < len(magnitudes); bin++ {
		freq := spectral.BinFrequency(bin, len(frame), sampleRate)
		if freq < minFreq || freq > maxFreq {
			continue
		}

		pitch := 69.0 + 12.0*math.Log2(freq/tuningFreq)
		class := ((int(math.Floor(pitch)) % 12) + 12) % 12
		v[class] += magnitudes[bin]
	}

	return v, nil
}
