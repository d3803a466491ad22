package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Analyzer computes magnitude spectra for fixed-size real-valued frames.
//
// The magnitude contract: for a real input frame of length N the result has
// length N and is mirrored, i.e. index k and N-k hold the same magnitude.
// Callers that only care about physical frequencies read bins 0..N/2.
type Analyzer struct {
	// No state needed - stateless calculation
}

// NewAnalyzer creates a new spectrum analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Magnitudes computes the magnitude spectrum of a real frame.
// Returns len(frame) values satisfying the mirror contract above.
func (a *Analyzer) Magnitudes(frame []float64) []float64 {
	if len(frame) == 0 {
		return []float64{}
	}

	// mjibson/go-dsp handles all sizes, including non-power-of-2
	spectrum := fft.FFTReal(frame)

	magnitudes := make([]float64, len(spectrum))
	for i, c := range spectrum {
		magnitudes[i] = cmplx.Abs(c)
	}

	return magnitudes
}

// BinForFrequency returns the spectrum bin index holding the given frequency
// for a frame of frameSize samples at the given sample rate.
func BinForFrequency(freq float64, frameSize, sampleRate int) int {
	if sampleRate <= 0 {
		return 0
	}
	return int(freq * float64(frameSize) / float64(sampleRate))
}

// BinFrequency returns the center frequency of a spectrum bin.
func BinFrequency(bin, frameSize, sampleRate int) float64 {
	if frameSize <= 0 {
		return 0
	}
	return float64(bin) * float64(sampleRate) / float64(frameSize)
}
