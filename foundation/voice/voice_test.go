package voice_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/superfeelapi/goAvatar/foundation/voice"
)

func testConfig() voice.Config {
	return voice.Config{
		SampleRate:           22050,
		WindowSize:           512,
		HopSize:              256,
		MelFilterCount:       26,
		MFCCCoefficientCount: 13,
	}
}

func TestAnalyzeBufferSilence(t *testing.T) {
	t.Parallel()

	c, err := voice.NewCharacterizer(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	vc, err := c.AnalyzeBuffer(context.Background(), make([]float64, 22050))
	if err != nil {
		t.Fatal(err)
	}

	if vc.Energy != 0 {
		t.Fatalf("energy: got %.4f, want 0", vc.Energy)
	}
	if vc.F0 != 0 {
		t.Fatalf("f0: got %.4f, want 0", vc.F0)
	}
	if vc.VoicedProbability != 0 {
		t.Fatalf("voiced probability: got %.4f, want 0", vc.VoicedProbability)
	}
	if vc.ZeroCrossingRate != 0 {
		t.Fatalf("zcr: got %.4f, want 0", vc.ZeroCrossingRate)
	}
	if len(vc.MFCC) != 13 {
		t.Fatalf("mfcc length: got %d, want 13", len(vc.MFCC))
	}
	if len(vc.Formants) != 0 {
		t.Fatalf("formants: got %v, want none", vc.Formants)
	}
}

func TestAnalyzeBufferSinusoid(t *testing.T) {
	t.Parallel()

	c, err := voice.NewCharacterizer(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	vc, err := c.AnalyzeBuffer(context.Background(), sine(220, 22050, 22050, 0.5))
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(vc.F0-220) > 5 {
		t.Fatalf("f0: got %.2f, want 220 +/- 5", vc.F0)
	}
	if vc.VoicedProbability < 0.9 {
		t.Fatalf("voiced probability: got %.2f, want >= 0.9", vc.VoicedProbability)
	}
	if got := voice.Semitone(vc.F0); math.Abs(vc.Pitch-got) > 1e-12 {
		t.Fatalf("pitch: got %.4f, want %.4f", vc.Pitch, got)
	}
	if len(vc.MFCC) != 13 {
		t.Fatalf("mfcc length: got %d, want 13", len(vc.MFCC))
	}
	if vc.SpectralRolloff > 11025 {
		t.Fatalf("rolloff above nyquist: %.2f", vc.SpectralRolloff)
	}
}

func TestAnalyzeBufferValidation(t *testing.T) {
	t.Parallel()

	c, err := voice.NewCharacterizer(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	var invalid *voice.InvalidInputError
	if _, err := c.AnalyzeBuffer(context.Background(), nil); !errors.As(err, &invalid) {
		t.Fatalf("empty buffer: expected InvalidInputError, got %v", err)
	}

	bad := make([]float64, 1024)
	bad[100] = math.NaN()

	var comp *voice.ComputationError
	if _, err := c.AnalyzeBuffer(context.Background(), bad); !errors.As(err, &comp) {
		t.Fatalf("NaN buffer: expected ComputationError, got %v", err)
	}
}

func TestAnalyzeBufferCancellation(t *testing.T) {
	t.Parallel()

	c, err := voice.NewCharacterizer(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.AnalyzeBuffer(ctx, sine(220, 22050, 22050, 0.5)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAnalyzeFrames(t *testing.T) {
	t.Parallel()

	c, err := voice.NewCharacterizer(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	records, err := c.AnalyzeFrames(context.Background(), sine(220, 22050, 22050, 0.5))
	if err != nil {
		t.Fatal(err)
	}

	want := (22050-512)/256 + 1
	if len(records) != want {
		t.Fatalf("record count: got %d, want %d", len(records), want)
	}

	hopMs := 256.0 / 22050 * 1000
	var total float64
	for i, r := range records {
		if r.StartOffset != i*256 {
			t.Fatalf("record %d: start offset got %d, want %d", i, r.StartOffset, i*256)
		}
		if math.Abs(r.DurationMs-hopMs) > 1e-9 {
			t.Fatalf("record %d: duration got %.4f, want %.4f", i, r.DurationMs, hopMs)
		}
		total += r.DurationMs
	}

	// Cumulative duration approximates the one second of source audio.
	if total < 900 || total > 1100 {
		t.Fatalf("cumulative duration: got %.1f ms, want about 1000", total)
	}
}

func TestAnalyzeFramesShortBuffer(t *testing.T) {
	t.Parallel()

	c, err := voice.NewCharacterizer(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	records, err := c.AnalyzeFrames(context.Background(), make([]float64, 100))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("record count: got %d, want 1", len(records))
	}
	if records[0].StartOffset != 0 {
		t.Fatalf("start offset: got %d, want 0", records[0].StartOffset)
	}
}

func TestCharacterizerConfigValidation(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MFCCCoefficientCount = 30

	var unsupported *voice.UnsupportedConfigError
	if _, err := voice.NewCharacterizer(cfg); !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedConfigError, got %v", err)
	}
}

func BenchmarkAnalyzeBuffer(b *testing.B) {
	c, err := voice.NewCharacterizer(testConfig())
	if err != nil {
		b.Fatal(err)
	}

	samples := sine(220, 22050, 11025, 0.5)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.AnalyzeBuffer(ctx, samples); err != nil {
			b.Fatal(err)
		}
	}
}

// =================================================================================================================

func sine(freq float64, sampleRate, n int, amp float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return s
}
