package viseme_test

import (
	"reflect"
	"testing"

	"github.com/superfeelapi/goAvatar/foundation/viseme"
	"github.com/superfeelapi/goAvatar/foundation/voice"
)

func frame(energy, centroid, zcr, durationMs float64) voice.FrameCharacteristics {
	return voice.FrameCharacteristics{
		DurationMs: durationMs,
		VoiceCharacteristics: voice.VoiceCharacteristics{
			Energy:           energy,
			SpectralCentroid: centroid,
			ZeroCrossingRate: zcr,
		},
	}
}

func TestMapSilence(t *testing.T) {
	t.Parallel()

	m := viseme.NewMapper()
	seq := m.Map([]voice.FrameCharacteristics{frame(0, 0, 0, 11.6)})

	if len(seq) != 1 {
		t.Fatalf("sequence length: got %d, want 1", len(seq))
	}
	if seq[0].Label != viseme.Sil {
		t.Fatalf("label: got %s, want sil", seq[0].Label)
	}
	if seq[0].Confidence != 1 {
		t.Fatalf("silence confidence: got %.2f, want 1", seq[0].Confidence)
	}
	if seq[0].Intensity != 0 {
		t.Fatalf("silence intensity: got %.2f, want 0", seq[0].Intensity)
	}
}

func TestMapSequence(t *testing.T) {
	t.Parallel()

	m := viseme.NewMapper()
	frames := []voice.FrameCharacteristics{
		frame(0.2, 1400, 0.05, 11.6),
		frame(0.1, 5000, 0.4, 11.6),
		frame(0.04, 400, 0.05, 11.6),
		frame(0.03, 5500, 0.4, 11.6),
		frame(0.001, 0, 0, 11.6),
	}

	seq := m.Map(frames)
	if len(seq) != 5 {
		t.Fatalf("sequence length: got %d, want 5", len(seq))
	}

	wantLabels := []string{viseme.AA, viseme.SS, viseme.NN, viseme.TH, viseme.Sil}
	for i, v := range seq {
		if v.Label != wantLabels[i] {
			t.Fatalf("frame %d: label got %s, want %s", i, v.Label, wantLabels[i])
		}
		if v.Confidence < 0 || v.Confidence > 1 {
			t.Fatalf("frame %d: confidence out of range: %.2f", i, v.Confidence)
		}
		if v.DurationMs != 11.6 {
			t.Fatalf("frame %d: duration got %.2f, want 11.6", i, v.DurationMs)
		}
	}

	// Confidence scales with energy: 0.2 * 4 = 0.8.
	if seq[0].Confidence != 0.8 {
		t.Fatalf("vowel confidence: got %.2f, want 0.8", seq[0].Confidence)
	}
}

func TestSmoothReplacesIsolatedFrame(t *testing.T) {
	t.Parallel()

	seq := []viseme.Viseme{
		{Label: viseme.AA, Confidence: 0.8, DurationMs: 10},
		{Label: viseme.SS, Confidence: 0.3, DurationMs: 10},
		{Label: viseme.AA, Confidence: 0.8, DurationMs: 10},
	}

	smoothed := viseme.Smooth(seq)
	if len(smoothed) != 3 {
		t.Fatalf("length changed: got %d, want 3", len(smoothed))
	}
	if smoothed[1].Label != viseme.AA {
		t.Fatalf("middle label: got %s, want aa", smoothed[1].Label)
	}
	if smoothed[1].Confidence != 0.8 {
		t.Fatalf("middle confidence: got %.2f, want 0.8", smoothed[1].Confidence)
	}
	if smoothed[1].DurationMs != 10 {
		t.Fatalf("duration must be preserved: got %.1f", smoothed[1].DurationMs)
	}

	// A second pass changes nothing.
	again := viseme.Smooth(smoothed)
	if !reflect.DeepEqual(again, smoothed) {
		t.Fatalf("smoothing not idempotent: %v vs %v", again, smoothed)
	}
}

func TestSmoothSinglePass(t *testing.T) {
	t.Parallel()

	// Alternating low-confidence labels: every decision reads the pre-pass
	// snapshot, so one pass settles the outer frames and keeps the interior
	// one rather than collapsing the whole run.
	seq := []viseme.Viseme{
		{Label: viseme.AA, Confidence: 0.5, DurationMs: 10},
		{Label: viseme.E, Confidence: 0.4, DurationMs: 10},
		{Label: viseme.AA, Confidence: 0.3, DurationMs: 10},
		{Label: viseme.E, Confidence: 0.4, DurationMs: 10},
		{Label: viseme.AA, Confidence: 0.5, DurationMs: 10},
	}

	want := []viseme.Viseme{
		{Label: viseme.AA, Confidence: 0.5, DurationMs: 10},
		{Label: viseme.AA, Confidence: 0.5, DurationMs: 10},
		{Label: viseme.E, Confidence: 0.4, DurationMs: 10},
		{Label: viseme.AA, Confidence: 0.5, DurationMs: 10},
		{Label: viseme.AA, Confidence: 0.5, DurationMs: 10},
	}

	if got := viseme.Smooth(seq); !reflect.DeepEqual(got, want) {
		t.Fatalf("single pass: got %v, want %v", got, want)
	}
}

func TestSmoothKeepsConfidentFrame(t *testing.T) {
	t.Parallel()

	seq := []viseme.Viseme{
		{Label: viseme.AA, Confidence: 0.8},
		{Label: viseme.SS, Confidence: 0.7},
		{Label: viseme.AA, Confidence: 0.8},
	}

	smoothed := viseme.Smooth(seq)
	if smoothed[1].Label != viseme.SS {
		t.Fatalf("confident frame replaced: got %s, want SS", smoothed[1].Label)
	}
}

func TestSmoothKeepsMatchingNeighbor(t *testing.T) {
	t.Parallel()

	seq := []viseme.Viseme{
		{Label: viseme.AA, Confidence: 0.8},
		{Label: viseme.AA, Confidence: 0.2},
		{Label: viseme.SS, Confidence: 0.8},
	}

	smoothed := viseme.Smooth(seq)
	if smoothed[1].Label != viseme.AA {
		t.Fatalf("frame matching a neighbor replaced: got %s", smoothed[1].Label)
	}
}

func TestSmoothShortSequences(t *testing.T) {
	t.Parallel()

	if got := viseme.Smooth(nil); len(got) != 0 {
		t.Fatalf("nil sequence: got %v", got)
	}

	seq := []viseme.Viseme{
		{Label: viseme.AA, Confidence: 0.1},
		{Label: viseme.SS, Confidence: 0.1},
	}
	smoothed := viseme.Smooth(seq)
	if !reflect.DeepEqual(smoothed, seq) {
		t.Fatalf("two-frame sequence must be untouched: %v", smoothed)
	}
}

func TestVisemeFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		p    viseme.Phoneme
		want string
	}{
		{viseme.PhonemeAA, viseme.AA},
		{viseme.PhonemeN, viseme.NN},
		{viseme.PhonemeR, viseme.RR},
		{viseme.PhonemeF, viseme.FF},
		{viseme.PhonemeTH, viseme.TH},
		{viseme.Phoneme("xx"), viseme.Sil},
	}

	for _, c := range cases {
		if got := viseme.VisemeFor(c.p); got != c.want {
			t.Fatalf("phoneme %s: got %s, want %s", c.p, got, c.want)
		}
	}
}
