package voice

// Frame is one fixed-length analysis window cut from a PCM buffer.
// Frames are ephemeral: they alias the source buffer and must not be
// retained past the analysis call that produced them.
type Frame struct {
	Samples     []float64
	SampleRate  int
	StartOffset int
}

// Framer slices a PCM buffer into overlapping analysis frames at offsets
// 0, H, 2H and so on. An incomplete tail frame is dropped, never padded,
// so the frame count for a given buffer length is deterministic.
type Framer struct {
	windowSize int
	hopSize    int
}

func NewFramer(windowSize, hopSize int) (*Framer, error) {
	if windowSize <= 0 {
		return nil, &InvalidInputError{Field: "windowSize", Reason: "must be positive"}
	}
	if hopSize <= 0 {
		return nil, &InvalidInputError{Field: "hopSize", Reason: "must be positive"}
	}
	if hopSize > windowSize {
		return nil, &InvalidInputError{Field: "hopSize", Reason: "must not exceed windowSize"}
	}

	return &Framer{
		windowSize: windowSize,
		hopSize:    hopSize,
	}, nil
}

func (f *Framer) WindowSize() int {
	return f.windowSize
}

func (f *Framer) HopSize() int {
	return f.hopSize
}

// Frames cuts the buffer into complete frames. A non-empty buffer shorter
// than the window size yields zero frames.
func (f *Framer) Frames(samples []float64, sampleRate int) ([]Frame, error) {
	if len(samples) == 0 {
		return nil, &InvalidInputError{Field: "samples", Reason: "empty buffer"}
	}
	if sampleRate <= 0 {
		return nil, &InvalidInputError{Field: "sampleRate", Reason: "must be positive"}
	}

	if len(samples) < f.windowSize {
		return nil, nil
	}

	count := (len(samples)-f.windowSize)/f.hopSize + 1
	frames := make([]Frame, 0, count)

	for i := 0; i < count; i++ {
		start := i * f.hopSize
		frames = append(frames, Frame{
			Samples:     samples[start : start+f.windowSize],
			SampleRate:  sampleRate,
			StartOffset: start,
		})
	}

	return frames, nil
}
