package beat

import (
	"gonum.org/v1/gonum/stat"

	"github.com/deckgrid/trackdna/pcm"
)

const (
	downbeatWindowSec  = 0.023 // ~23 ms short-time energy windows
	downbeatScanSec    = 30.0  // never scan past the first 30 seconds
	baselineWindowsMax = 100
)

// DownbeatLocator finds the first strong onset in a buffer, seeding the beat
// grid. Short-time energy is compared against a baseline taken from the
// opening windows; the first window that clearly jumps above it is the
// downbeat.
type DownbeatLocator struct {
	// No state needed - stateless calculation
}

// NewDownbeatLocator creates a new downbeat locator
func NewDownbeatLocator() *DownbeatLocator {
	return &DownbeatLocator{}
}

// Locate returns the downbeat offset in seconds, or 0 when no strong onset
// exists (treat the buffer start as the downbeat). The result is never
// negative.
//
// The bpm argument keeps the signature symmetric with the caller's beat-grid
// construction; the detection rule itself does not use it.
func (dl *DownbeatLocator) Locate(buf *pcm.SampleBuffer, bpm int) float64 {
	_ = bpm

	if buf == nil || buf.Len() == 0 || buf.SampleRate <= 0 {
		return 0
	}

	fs := buf.SampleRate
	window := int(downbeatWindowSec * float64(fs))
	if window < 1 {
		window = 1
	}
	hop := window / 4
	if hop < 1 {
		hop = 1
	}

	// Scanning the whole track buys nothing for a downbeat; 30 s is a
	// performance bound, not a correctness one.
	limit := min(buf.Len(), int(downbeatScanSec*float64(fs)))

	energies := shortTimeEnergy(buf.Samples[:limit], window, hop)
	if len(energies) < 2 {
		return 0
	}

	baseline := stat.Mean(energies[:min(len(energies), baselineWindowsMax)], nil)

	for i := 1; i < len(energies); i++ {
		if energies[i] > 2*baseline && energies[i]-energies[i-1] > 0.3*baseline {
			return float64(i*hop) / float64(fs)
		}
	}

	return 0
}

// shortTimeEnergy computes mean squared amplitude per window.
func shortTimeEnergy(samples []float32, window, hop int) []float64 {
	var energies []float64
	for start := 0; start+window <= len(samples); start += hop {
		sum := 0.0
		for _, s := range samples[start : start+window] {
			v := float64(s)
			sum += v * v
		}
		energies = append(energies, sum/float64(window))
	}
	return energies
}
