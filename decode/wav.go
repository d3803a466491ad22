package decode

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/deckgrid/trackdna/pcm"
)

// decodeWAV decodes a WAV file natively via go-audio.
func (d *Decoder) decodeWAV(filename string) (*pcm.SampleBuffer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("empty wav file")
	}

	samples := monoFloat32(buf, dec.BitDepth)
	return pcm.NewSampleBuffer(buf.Format.SampleRate, samples), nil
}

// monoFloat32 scales integer PCM to [-1,1] float32 and downmixes interleaved
// channels by averaging.
func monoFloat32(buf *audio.IntBuffer, bitDepth uint16) []float32 {
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	samples := make([]float32, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		samples[i] = float32(sum / float64(channels) / scale)
	}
	return samples
}
