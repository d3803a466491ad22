package decode

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
	"strconv"

	"github.com/deckgrid/trackdna/pcm"
)

// decodeFFmpeg shells out to ffmpeg for formats without a native decoder,
// asking for mono 32-bit float little-endian PCM on stdout.
func (d *Decoder) decodeFFmpeg(ctx context.Context, filename string) (*pcm.SampleBuffer, error) {
	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}

	args := []string{
		"-v", "error",
		"-i", filename,
		"-vn",
		"-f", "f32le",
		"-ac", "1",
		"-ar", strconv.Itoa(d.config.TargetSampleRate),
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, d.config.FFmpegPath, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffmpeg decode failed: %w, stderr: %s", err, string(exitError.Stderr))
		}
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	return pcm.NewSampleBuffer(d.config.TargetSampleRate, bytesToFloat32(output)), nil
}

// bytesToFloat32 reinterprets raw f32le bytes as samples. Trailing partial
// samples are dropped.
func bytesToFloat32(data []byte) []float32 {
	samples := make([]float32, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		bits := binary.LittleEndian.Uint32(data[i : i+4])
		samples = append(samples, math.Float32frombits(bits))
	}
	return samples
}
