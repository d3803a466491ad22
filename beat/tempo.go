package beat

import (
	"math"

	"github.com/deckgrid/trackdna/filters"
	"github.com/deckgrid/trackdna/pcm"
)

// Supported tempo range in BPM. Estimates outside the range are folded back
// in by halving/doubling before being counted.
const (
	MinBPM = 80
	MaxBPM = 175

	// DefaultBPM is returned when the signal yields too few onsets to
	// measure a tempo.
	DefaultBPM = 120
)

const (
	highPassCutoff = 40.0  // Hz, suppresses sub-bass rumble
	lowPassCutoff  = 150.0 // Hz, together a crude kick-drum band-pass
	attackTime     = 0.001 // seconds
	releaseTime    = 0.1   // seconds
)

// TempoEstimator derives a BPM estimate from low-frequency transients.
//
// Pipeline: 40-150 Hz one-pole band-pass -> asymmetric envelope follower ->
// adaptive-threshold onset detection -> inter-onset intervals folded into an
// integer-BPM histogram over [MinBPM, MaxBPM].
type TempoEstimator struct {
	// No state needed - stateless calculation
}

// NewTempoEstimator creates a new tempo estimator
func NewTempoEstimator() *TempoEstimator {
	return &TempoEstimator{}
}

// Estimate returns the integer BPM of the buffer, always within
// [MinBPM, MaxBPM]. Inputs with fewer than 2 detected onsets yield
// DefaultBPM.
func (te *TempoEstimator) Estimate(buf *pcm.SampleBuffer) int {
	if buf == nil || buf.Len() == 0 || buf.SampleRate <= 0 {
		return DefaultBPM
	}

	onsets := te.detectTransients(buf)
	if len(onsets) < 2 {
		return DefaultBPM
	}

	hist := tempoHistogram(onsets, buf.SampleRate)
	return pickTempo(hist)
}

// detectTransients band-limits the signal, follows its envelope and returns
// onset positions in samples.
func (te *TempoEstimator) detectTransients(buf *pcm.SampleBuffer) []int {
	signal := buf.Float64()

	hp := filters.NewHighPass(buf.SampleRate, highPassCutoff)
	lp := filters.NewLowPass(buf.SampleRate, lowPassCutoff)
	band := lp.ProcessBuffer(hp.ProcessBuffer(signal))

	follower := NewFollower(buf.SampleRate, attackTime, releaseTime)
	envelope := follower.Compute(band)

	return detectOnsets(envelope, buf.SampleRate)
}

// tempoHistogram folds inter-onset intervals into an integer-BPM histogram.
// Each interval votes with full weight for its own tempo and half weight for
// its half and double tempo, so a song felt at 140 also reinforces the 70
// and 280 candidates folded into range.
func tempoHistogram(onsets []int, sampleRate int) [MaxBPM + 1]float64 {
	var hist [MaxBPM + 1]float64

	for i := 1; i < len(onsets); i++ {
		interval := onsets[i] - onsets[i-1]
		if interval <= 0 {
			continue
		}
		bpm := 60.0 * float64(sampleRate) / float64(interval)

		vote(&hist, bpm, 1.0)
		vote(&hist, bpm/2, 0.5)
		vote(&hist, bpm*2, 0.5)
	}

	return hist
}

func vote(hist *[MaxBPM + 1]float64, bpm, weight float64) {
	if bpm <= 0 {
		return
	}
	bin := foldTempo(bpm)
	if bin >= MinBPM && bin <= MaxBPM {
		hist[bin] += weight
	}
}

// foldTempo halves/doubles a BPM value until it lands in the supported range.
func foldTempo(bpm float64) int {
	for bpm < MinBPM {
		bpm *= 2
	}
	for bpm > MaxBPM {
		bpm /= 2
	}
	return int(math.Round(bpm))
}

// pickTempo scans bins in ascending BPM order; the strict comparison keeps
// the first bin encountered on ties, so the result is deterministic.
func pickTempo(hist [MaxBPM + 1]float64) int {
	best := 0
	bestWeight := 0.0
	for bin := MinBPM; bin <= MaxBPM; bin++ {
		if hist[bin] > bestWeight {
			best = bin
			bestWeight = hist[bin]
		}
	}

	if best == 0 {
		return DefaultBPM
	}
	return clampTempo(best)
}

func clampTempo(bpm int) int {
	if bpm < MinBPM {
		return MinBPM
	}
	if bpm > MaxBPM {
		return MaxBPM
	}
	return bpm
}
