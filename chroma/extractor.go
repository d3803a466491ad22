package chroma

// FrameExtractor supplies a 12-bin chroma vector for a single analysis frame.
// An implementation may be backed by an external feature service; the library
// falls back to its own spectral computation when a frame fails.
type FrameExtractor interface {
	ExtractFrame(frame []float64, sampleRate int) (Vector, error)
}

// FrameExtractorFunc adapts a plain function to the FrameExtractor interface.
type FrameExtractorFunc func(frame []float64, sampleRate int) (Vector, error)

// ExtractFrame calls the wrapped function.
func (f FrameExtractorFunc) ExtractFrame(frame []float64, sampleRate int) (Vector, error) {
	return f(frame, sampleRate)
}

// WithFallback returns an extractor that tries primary first and, on failure,
// transparently uses fallback for that frame only. A nil primary yields the
// fallback directly.
func WithFallback(primary, fallback FrameExtractor) FrameExtractor {
	if primary == nil {
		return fallback
	}
	return FrameExtractorFunc(func(frame []float64, sampleRate int) (Vector, error) {
		v, err := primary.ExtractFrame(frame, sampleRate)
		if err == nil {
			return v, nil
		}
		return fallback.ExtractFrame(frame, sampleRate)
	})
}
