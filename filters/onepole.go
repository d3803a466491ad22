package filters

import "math"

// One-pole RC filter sections. The smoothing coefficient derives from the
// analog RC constant of the cutoff frequency:
//
//	RC    = 1 / (2*pi*cutoff)
//	alpha = 1 / (1 + RC*sampleRate)
//
// These are first-order filters with a gentle 6 dB/octave slope; cascading a
// high-pass and a low-pass section yields the crude band-pass used to isolate
// kick-drum energy in tempo analysis.

// LowPass implements a one-pole low-pass filter.
type LowPass struct {
	alpha float64
	y     float64 // previous output
}

// NewLowPass creates a low-pass section with the given cutoff in Hz.
func NewLowPass(sampleRate int, cutoff float64) *LowPass {
	return &LowPass{alpha: rcAlpha(sampleRate, cutoff)}
}

// Process filters a single sample.
// y[n] = y[n-1] + alpha*(x[n] - y[n-1])
func (f *LowPass) Process(input float64) float64 {
	f.y += f.alpha * (input - f.y)
	return f.y
}

// ProcessBuffer filters an entire buffer, returning a new slice.
func (f *LowPass) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = f.Process(sample)
	}
	return output
}

// Reset clears the filter's internal state.
// Call this when processing discontinuous audio segments.
func (f *LowPass) Reset() {
	f.y = 0
}

// HighPass implements a one-pole high-pass filter.
type HighPass struct {
	alpha float64 // 1 - rcAlpha, the pole coefficient
	prevX float64
	y     float64
}

// NewHighPass creates a high-pass section with the given cutoff in Hz.
func NewHighPass(sampleRate int, cutoff float64) *HighPass {
	return &HighPass{alpha: 1 - rcAlpha(sampleRate, cutoff)}
}

// Process filters a single sample.
// y[n] = alpha*(y[n-1] + x[n] - x[n-1])
func (f *HighPass) Process(input float64) float64 {
	f.y = f.alpha * (f.y + input - f.prevX)
	f.prevX = input
	return f.y
}

// ProcessBuffer filters an entire buffer, returning a new slice.
func (f *HighPass) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = f.Process(sample)
	}
	return output
}

// Reset clears the filter's internal state.
func (f *HighPass) Reset() {
	f.prevX = 0
	f.y = 0
}

func rcAlpha(sampleRate int, cutoff float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	return 1.0 / (1.0 + rc*float64(sampleRate))
}
