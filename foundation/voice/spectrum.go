package voice

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// SpectralEngine computes single-sided magnitude spectra of analysis frames.
// A Hamming window is applied before the transform. Window sizes that are
// not a power of two are zero-padded up to the next power of two, so the
// transform size is always a radix-2 length and the magnitude array length
// is always FFTSize()/2+1.
type SpectralEngine struct {
	windowSize int
	fftSize    int
	sampleRate int
	coeffs     []float64
}

func NewSpectralEngine(windowSize, sampleRate int) (*SpectralEngine, error) {
	if windowSize <= 0 {
		return nil, &InvalidInputError{Field: "windowSize", Reason: "must be positive"}
	}
	if sampleRate <= 0 {
		return nil, &InvalidInputError{Field: "sampleRate", Reason: "must be positive"}
	}

	return &SpectralEngine{
		windowSize: windowSize,
		fftSize:    dsputils.NextPowerOf2(windowSize),
		sampleRate: sampleRate,
		coeffs:     window.Hamming(windowSize),
	}, nil
}

func (e *SpectralEngine) FFTSize() int {
	return e.fftSize
}

func (e *SpectralEngine) SampleRate() int {
	return e.sampleRate
}

func (e *SpectralEngine) Nyquist() float64 {
	return float64(e.sampleRate) / 2
}

// BinHz returns the width of one frequency bin in Hz.
func (e *SpectralEngine) BinHz() float64 {
	return float64(e.sampleRate) / float64(e.fftSize)
}

// Magnitudes returns the magnitude spectrum of the frame, length FFTSize()/2+1.
// The result is a pure function of the input samples.
func (e *SpectralEngine) Magnitudes(samples []float64) ([]float64, error) {
	if len(samples) == 0 {
		return nil, &InvalidInputError{Field: "samples", Reason: "empty frame"}
	}

	in := make([]float64, e.fftSize)
	for i := 0; i < len(samples) && i < e.windowSize; i++ {
		in[i] = samples[i] * e.coeffs[i]
	}

	out := fft.FFTReal(in)

	mags := make([]float64, e.fftSize/2+1)
	for i := range mags {
		m := cmplx.Abs(out[i])
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return nil, &ComputationError{Stage: "fft", Reason: "non-finite magnitude"}
		}
		mags[i] = m
	}

	return mags, nil
}
