package decode

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/deckgrid/trackdna/logging"
	"github.com/deckgrid/trackdna/pcm"
)

// Config holds decoder configuration
type Config struct {
	// FFmpegPath is the ffmpeg binary used for formats without a native
	// decoder. Assumed to be in PATH by default.
	FFmpegPath string `json:"ffmpeg_path"`
	// TargetSampleRate is the resample rate for the ffmpeg path. Native
	// decoders keep the file's own rate.
	TargetSampleRate int `json:"target_sample_rate"`
	// Timeout bounds a single ffmpeg invocation.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the default decoder configuration
func DefaultConfig() *Config {
	return &Config{
		FFmpegPath:       "ffmpeg",
		TargetSampleRate: 44100,
		Timeout:          60 * time.Second,
	}
}

// Decoder turns an audio file into a mono pcm.SampleBuffer for analysis.
// WAV and MP3 decode natively; anything else is handed to ffmpeg.
// Multi-channel input is downmixed by averaging.
type Decoder struct {
	config *Config
	logger logging.Logger
}

// NewDecoder creates a new audio decoder. A nil config uses DefaultConfig.
func NewDecoder(config *Config) *Decoder {
	if config == nil {
		config = DefaultConfig()
	}
	return &Decoder{
		config: config,
		logger: logging.WithFields(logging.Fields{
			"component": "audio_decoder",
		}),
	}
}

// DecodeFile decodes an audio file into a sample buffer.
func (d *Decoder) DecodeFile(ctx context.Context, filename string) (*pcm.SampleBuffer, error) {
	logger := d.logger.WithFields(logging.Fields{"filename": filename})
	logger.Debug("starting audio file decode")

	var (
		buf *pcm.SampleBuffer
		err error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		buf, err = d.decodeWAV(filename)
	case ".mp3":
		buf, err = d.decodeMP3(filename)
	default:
		buf, err = d.decodeFFmpeg(ctx, filename)
	}
	if err != nil {
		logger.Error(err, "decode failed")
		return nil, err
	}

	if buf.Len() == 0 {
		return nil, fmt.Errorf("no audio samples decoded from %s", filename)
	}

	logger.Debug("decode complete", logging.Fields{
		"sample_rate": buf.SampleRate,
		"samples":     buf.Len(),
		"duration":    buf.Duration().Seconds(),
	})

	return buf, nil
}
