package beat

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// detectOnsets picks transient peaks from an amplitude envelope.
//
// A candidate index is accepted as an onset iff its envelope value exceeds
// the active threshold, it is a strict local maximum versus its immediate
// neighbors, and it lies at least one refractory window past the previously
// accepted peak. The threshold is the larger of a global statistic over a
// sparse sample of the envelope and a local-window mean scaled by 1.5,
// refreshed every window. The scan is a single fold carrying
// (lastPeakIndex, currentThreshold).
func detectOnsets(envelope []float64, sampleRate int) []int {
	if len(envelope) < 3 {
		return nil
	}

	// 100 ms: both the refractory period and the threshold refresh interval
	window := sampleRate / 10
	if window < 1 {
		window = 1
	}

	global := globalThreshold(envelope, sampleRate)

	var peaks []int
	lastPeak := -window

	for start := 0; start < len(envelope); start += window {
		end := min(start+window, len(envelope))

		local := 1.5 * stat.Mean(envelope[start:end], nil)
		threshold := math.Max(global, local)

		for i := max(start, 1); i < end && i < len(envelope)-1; i++ {
			if envelope[i] > threshold &&
				envelope[i] > envelope[i-1] &&
				envelope[i] > envelope[i+1] &&
				i-lastPeak >= window {
				peaks = append(peaks, i)
				lastPeak = i
			}
		}
	}

	return peaks
}

// globalThreshold computes mean + 0.3*(max-mean) over one envelope value per
// 10 ms, which bounds the statistic's cost independent of buffer length.
func globalThreshold(envelope []float64, sampleRate int) float64 {
	stride := sampleRate / 100
	if stride < 1 {
		stride = 1
	}

	sampled := make([]float64, 0, len(envelope)/stride+1)
	for i := 0; i < len(envelope); i += stride {
		sampled = append(sampled, envelope[i])
	}

	mean := stat.Mean(sampled, nil)
	return mean + 0.3*(floats.Max(sampled)-mean)
}
