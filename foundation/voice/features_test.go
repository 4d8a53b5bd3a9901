package voice_test

import (
	"errors"
	"math"
	"testing"

	"github.com/superfeelapi/goAvatar/foundation/voice"
)

func TestEnergy(t *testing.T) {
	t.Parallel()

	if got := voice.Energy(make([]float64, 512)); got != 0 {
		t.Fatalf("silence energy: got %.4f, want 0", got)
	}

	constant := make([]float64, 512)
	for i := range constant {
		constant[i] = 0.5
	}
	if got := voice.Energy(constant); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("constant energy: got %.4f, want 0.5", got)
	}
}

func TestZeroCrossingRate(t *testing.T) {
	t.Parallel()

	if got := voice.ZeroCrossingRate(make([]float64, 512)); got != 0 {
		t.Fatalf("silence zcr: got %.4f, want 0", got)
	}

	alternating := make([]float64, 512)
	for i := range alternating {
		if i%2 == 0 {
			alternating[i] = 1
		} else {
			alternating[i] = -1
		}
	}
	if got := voice.ZeroCrossingRate(alternating); got != 1 {
		t.Fatalf("alternating zcr: got %.4f, want 1", got)
	}

	if got := voice.ZeroCrossingRate(sine(440, 16000, 1600, 1)); got < 0 || got > 1 {
		t.Fatalf("zcr out of range: %.4f", got)
	}
}

func TestVoicedProbability(t *testing.T) {
	t.Parallel()

	if got := voice.VoicedProbability(0, 0, 0); got != 0 {
		t.Fatalf("silence: got %.4f, want 0", got)
	}
	if got := voice.VoicedProbability(220, 0.1, 0.05); got != 1 {
		t.Fatalf("clean voiced frame: got %.4f, want 1", got)
	}

	// Energy without pitch or low noisiness scores the energy weight only.
	if got := voice.VoicedProbability(500, 0.1, 0.5); math.Abs(got-0.3) > 1e-12 {
		t.Fatalf("energetic noise: got %.4f, want 0.3", got)
	}
}

func TestSpectralFeatures(t *testing.T) {
	t.Parallel()

	e, err := voice.NewSpectralEngine(512, 16000)
	if err != nil {
		t.Fatal(err)
	}
	x, err := voice.NewFeatureExtractor(e, 26, 13)
	if err != nil {
		t.Fatal(err)
	}

	zero := make([]float64, 257)
	if got := x.SpectralCentroid(zero); got != 0 {
		t.Fatalf("zero spectrum centroid: got %.4f, want 0", got)
	}
	if got := x.SpectralRolloff(zero); got != 0 {
		t.Fatalf("zero spectrum rolloff: got %.4f, want 0", got)
	}

	mags, err := e.Magnitudes(sine(1000, 16000, 512, 1))
	if err != nil {
		t.Fatal(err)
	}

	centroid := x.SpectralCentroid(mags)
	if centroid <= 0 || centroid > e.Nyquist() {
		t.Fatalf("centroid out of range: %.2f", centroid)
	}

	rolloff := x.SpectralRolloff(mags)
	if rolloff < 0 || rolloff > e.Nyquist() {
		t.Fatalf("rolloff out of range: %.2f", rolloff)
	}
}

func TestFormants(t *testing.T) {
	t.Parallel()

	e, err := voice.NewSpectralEngine(512, 16000)
	if err != nil {
		t.Fatal(err)
	}
	x, err := voice.NewFeatureExtractor(e, 26, 13)
	if err != nil {
		t.Fatal(err)
	}

	// Peaks at bins 16 (500 Hz) and 64 (2000 Hz); a peak at bin 5 (156 Hz)
	// sits below the formant search band and must be ignored.
	mags := make([]float64, 257)
	for _, bin := range []int{5, 16, 64} {
		mags[bin-1] = 1
		mags[bin] = 3
		mags[bin+1] = 1
	}

	formants := x.Formants(mags)
	if len(formants) != 2 {
		t.Fatalf("formant count: got %d, want 2", len(formants))
	}
	if math.Abs(formants[0]-500) > 1e-9 || math.Abs(formants[1]-2000) > 1e-9 {
		t.Fatalf("formants: got %v, want [500 2000]", formants)
	}
}

func TestMFCCLength(t *testing.T) {
	t.Parallel()

	e, err := voice.NewSpectralEngine(512, 16000)
	if err != nil {
		t.Fatal(err)
	}
	x, err := voice.NewFeatureExtractor(e, 26, 13)
	if err != nil {
		t.Fatal(err)
	}

	mags, err := e.Magnitudes(sine(300, 16000, 512, 0.3))
	if err != nil {
		t.Fatal(err)
	}

	mfcc, err := x.MFCC(mags)
	if err != nil {
		t.Fatal(err)
	}
	if len(mfcc) != 13 {
		t.Fatalf("mfcc length: got %d, want 13", len(mfcc))
	}
}

func TestMelBankValidation(t *testing.T) {
	t.Parallel()

	var unsupported *voice.UnsupportedConfigError
	if _, err := voice.NewMelBank(26, 30, 512, 16000); !errors.As(err, &unsupported) {
		t.Fatalf("coeff count over filter count: expected UnsupportedConfigError, got %v", err)
	}
	if _, err := voice.NewMelBank(0, 0, 512, 16000); !errors.As(err, &unsupported) {
		t.Fatalf("zero filters: expected UnsupportedConfigError, got %v", err)
	}
	if _, err := voice.NewMelBank(26, 13, 500, 16000); !errors.As(err, &unsupported) {
		t.Fatalf("non power-of-two fft size: expected UnsupportedConfigError, got %v", err)
	}
}

func TestBandEnergies(t *testing.T) {
	t.Parallel()

	e, err := voice.NewSpectralEngine(512, 16000)
	if err != nil {
		t.Fatal(err)
	}
	x, err := voice.NewFeatureExtractor(e, 26, 13)
	if err != nil {
		t.Fatal(err)
	}

	// Bin 100 is 3125 Hz, inside the upper-mid band.
	mags := make([]float64, 257)
	mags[100] = 2

	bands := x.BandEnergies(mags)
	if len(bands) != 7 {
		t.Fatalf("band count: got %d, want 7", len(bands))
	}
	for i, b := range bands {
		want := 0.0
		if i == 4 {
			want = 4
		}
		if math.Abs(b-want) > 1e-12 {
			t.Fatalf("band %d: got %.4f, want %.1f", i, b, want)
		}
	}
}
