package waveform

import (
	"math"

	"github.com/deckgrid/trackdna/pcm"
	"github.com/deckgrid/trackdna/spectral"
)

// DefaultPixelWidth is the pixel width requested by the rendering layer when
// the caller does not specify one.
const DefaultPixelWidth = 800

const (
	spectralFrameSize = 1024
	lowBandMaxFreq    = 250.0  // Hz, low band covers bins up to here
	highBandMinFreq   = 4000.0 // Hz, high band covers bins from here up
)

// Segment is the per-pixel waveform summary: three 8-bit color intensities
// encoding the low/mid/high spectral balance and a brightness value from the
// segment's clipped RMS. An ordered sequence of Segments, left to right in
// time, forms the waveform drawn by the rendering layer.
type Segment struct {
	R          uint8   `json:"r"` // red, dominated by low-band energy
	G          uint8   `json:"g"` // green, dominated by mid-band energy
	B          uint8   `json:"b"` // blue, dominated by high-band energy
	Brightness float64 `json:"brightness"` // [0,1]
}

// Generator produces banded waveform summaries for visualization.
type Generator struct {
	analyzer *spectral.Analyzer
}

// NewGenerator creates a new waveform generator
func NewGenerator() *Generator {
	return &Generator{
		analyzer: spectral.NewAnalyzer(),
	}
}

// Generate divides the buffer into pixelWidth contiguous equal-length
// segments (the last segment absorbs any remainder) and summarizes each.
// The result always has exactly pixelWidth segments, regardless of buffer
// length; segments without enough samples for spectral analysis fall back to
// a grayscale RMS summary.
func (g *Generator) Generate(buf *pcm.SampleBuffer, pixelWidth int) []Segment {
	if pixelWidth <= 0 {
		return nil
	}

	segments := make([]Segment, pixelWidth)
	if buf == nil || buf.SampleRate <= 0 {
		return segments
	}

	samples := buf.Samples
	segLen := len(samples) / pixelWidth

	for px := 0; px < pixelWidth; px++ {
		start := px * segLen
		end := min(start+segLen, len(samples))
		if px == pixelWidth-1 {
			end = len(samples)
		}
		if start > end {
			start = end
		}

		segments[px] = g.summarize(samples, start, end, buf.SampleRate)
	}

	return segments
}

// summarize computes one segment covering samples[start:end].
func (g *Generator) summarize(samples []float32, start, end, sampleRate int) Segment {
	brightness := math.Min(1, 2*segmentRMS(samples[start:end]))

	if end-start < spectralFrameSize {
		// too short for a spectral frame: grayscale RMS summary
		gray := uint8(128 * brightness)
		return Segment{R: gray, G: gray, B: gray, Brightness: brightness}
	}

	low, mid, high := g.bandFractions(samples, start, sampleRate)

	// brightness only modulates, it never fully darkens a segment
	scale := 0.3 + 0.7*brightness

	return Segment{
		R:          uint8(math.Min(255, low*255+mid*100) * scale),
		G:          uint8(math.Min(255, mid*255) * scale),
		B:          uint8(math.Min(255, high*255+mid*50) * scale),
		Brightness: brightness,
	}
}

// bandFractions takes the first spectralFrameSize samples of the segment
// (zero-padded past the buffer end), splits the magnitude spectrum into
// low/mid/high bands at the 250 Hz and 4000 Hz bin indices skipping DC, and
// normalizes the three sums to fractions of their total.
func (g *Generator) bandFractions(samples []float32, start, sampleRate int) (low, mid, high float64) {
	frame := make([]float64, spectralFrameSize)
	for i := 0; i < spectralFrameSize && start+i < len(samples); i++ {
		frame[i] = float64(samples[start+i])
	}

	magnitudes := g.analyzer.Magnitudes(frame)

	lowBin := spectral.BinForFrequency(lowBandMaxFreq, spectralFrameSize, sampleRate)
	highBin := spectral.BinForFrequency(highBandMinFreq, spectralFrameSize, sampleRate)

	var lowSum, midSum, highSum float64
	for bin := 1; bin <= spectralFrameSize/2 && bin < len(magnitudes); bin++ {
		switch {
		case bin <= lowBin:
			lowSum += magnitudes[bin]
		case bin >= highBin:
			highSum += magnitudes[bin]
		default:
			midSum += magnitudes[bin]
		}
	}

	total := lowSum + midSum + highSum
	if total <= 0 {
		return 0, 0, 0
	}
	return lowSum / total, midSum / total, highSum / total
}

func segmentRMS(segment []float32) float64 {
	if len(segment) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range segment {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(segment)))
}
