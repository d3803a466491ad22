package decode

import (
	"fmt"
	"os"

	"github.com/gopxl/beep/v2/mp3"

	"github.com/deckgrid/trackdna/pcm"
)

// decodeMP3 decodes an MP3 file natively via beep. The streamer yields
// stereo frames; both channels are averaged into the analysis channel.
func (d *Decoder) decodeMP3(filename string) (*pcm.SampleBuffer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open mp3: %w", err)
	}
	defer f.Close()

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	defer streamer.Close()

	var samples []float32
	if n := streamer.Len(); n > 0 {
		samples = make([]float32, 0, n)
	}

	chunk := make([][2]float64, 2048)
	for {
		n, ok := streamer.Stream(chunk)
		for _, frame := range chunk[:n] {
			samples = append(samples, float32((frame[0]+frame[1])/2))
		}
		if !ok {
			break
		}
	}

	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("stream mp3: %w", err)
	}

	return pcm.NewSampleBuffer(int(format.SampleRate), samples), nil
}
