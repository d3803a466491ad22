package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deckgrid/trackdna/beat"
	"github.com/deckgrid/trackdna/chroma"
	"github.com/deckgrid/trackdna/logging"
	"github.com/deckgrid/trackdna/pcm"
	"github.com/deckgrid/trackdna/tonal"
	"github.com/deckgrid/trackdna/waveform"
)

// Config holds configuration for track analysis
type Config struct {
	// PixelWidth is the number of waveform segments to generate, one per
	// output pixel.
	PixelWidth int `json:"pixel_width"`
}

// DefaultConfig returns the default analysis configuration
func DefaultConfig() *Config {
	return &Config{
		PixelWidth: waveform.DefaultPixelWidth,
	}
}

// Result holds the four musical descriptors derived from a buffer.
type Result struct {
	BPM             int                `json:"bpm"`
	DownbeatSeconds float64            `json:"downbeat_seconds"` // 0 means "unknown/assume start"
	Key             tonal.KeyEstimate  `json:"key"`
	Waveform        []waveform.Segment `json:"waveform"`

	SampleRate int           `json:"sample_rate"`
	Duration   time.Duration `json:"duration"`
}

// Grid returns the beat grid for the analyzed buffer, radiating from the
// downbeat, for the rendering layer to overlay.
func (r *Result) Grid() []beat.Gridline {
	return beat.Grid(r.BPM, r.DownbeatSeconds, r.Duration.Seconds())
}

// Analyzer derives tempo, downbeat, key and a banded waveform summary from
// decoded PCM. All estimators are pure functions of the buffer, so a single
// Analyzer is safe for concurrent use.
type Analyzer struct {
	config   *Config
	tempo    *beat.TempoEstimator
	downbeat *beat.DownbeatLocator
	key      *tonal.KeyEstimator
	waveform *waveform.Generator
	logger   logging.Logger
}

// NewAnalyzer creates an analyzer with the given configuration. A nil config
// uses DefaultConfig.
func NewAnalyzer(config *Config) *Analyzer {
	return newAnalyzer(config, tonal.NewKeyEstimator())
}

// NewAnalyzerWithChromaExtractor creates an analyzer that prefers the given
// external chroma extractor for key estimation, falling back per frame to
// the in-core computation when it fails.
func NewAnalyzerWithChromaExtractor(config *Config, extractor chroma.FrameExtractor) *Analyzer {
	return newAnalyzer(config, tonal.NewKeyEstimatorWithExtractor(extractor))
}

func newAnalyzer(config *Config, key *tonal.KeyEstimator) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}
	if config.PixelWidth <= 0 {
		config.PixelWidth = waveform.DefaultPixelWidth
	}

	return &Analyzer{
		config:   config,
		tempo:    beat.NewTempoEstimator(),
		downbeat: beat.NewDownbeatLocator(),
		key:      key,
		waveform: waveform.NewGenerator(),
		logger: logging.WithFields(logging.Fields{
			"component": "analyzer",
		}),
	}
}

// Analyze runs all four estimators over the buffer and aggregates a Result.
//
// Tempo+downbeat (chained, since the downbeat call wants the BPM value), key
// and waveform run on separate goroutines; they share no mutable state. The
// estimators themselves are not cancellable, so the context is only observed
// at this orchestration layer.
func (a *Analyzer) Analyze(ctx context.Context, buf *pcm.SampleBuffer) (*Result, error) {
	if buf == nil || buf.Len() == 0 {
		return nil, fmt.Errorf("empty sample buffer")
	}
	if buf.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", buf.SampleRate)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{
		SampleRate: buf.SampleRate,
		Duration:   buf.Duration(),
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		result.BPM = a.tempo.Estimate(buf)
		result.DownbeatSeconds = a.downbeat.Locate(buf, result.BPM)
	}()

	go func() {
		defer wg.Done()
		result.Key = a.key.Estimate(buf)
	}()

	go func() {
		defer wg.Done()
		result.Waveform = a.waveform.Generate(buf, a.config.PixelWidth)
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.logger.Debug("analysis complete", logging.Fields{
		"bpm":         result.BPM,
		"downbeat":    result.DownbeatSeconds,
		"key":         result.Key.PitchClass + " " + result.Key.Scale,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return result, nil
}
