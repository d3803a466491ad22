package pcm

import "time"

// SampleBuffer holds one channel of decoded PCM audio tagged with its sample
// rate. Analysis components borrow the buffer read-only; the producer owns it
// and must not mutate it while an analysis is in flight.
type SampleBuffer struct {
	SampleRate int       `json:"sample_rate"` // Hz, positive
	Samples    []float32 `json:"-"`           // single-precision mono samples
}

// NewSampleBuffer creates a buffer over the given samples without copying.
func NewSampleBuffer(sampleRate int, samples []float32) *SampleBuffer {
	return &SampleBuffer{
		SampleRate: sampleRate,
		Samples:    samples,
	}
}

// Len returns the number of samples in the buffer.
func (b *SampleBuffer) Len() int {
	return len(b.Samples)
}

// Duration returns the buffer length as wall-clock time.
func (b *SampleBuffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}

// Float64 returns a fresh float64 copy of the samples for the DSP stages,
// which operate in double precision.
func (b *SampleBuffer) Float64() []float64 {
	out := make([]float64, len(b.Samples))
	for i, s := range b.Samples {
		out[i] = float64(s)
	}
	return out
}
