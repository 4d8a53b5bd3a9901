package viseme_test

import (
	"testing"

	"github.com/superfeelapi/goAvatar/foundation/viseme"
)

func TestClassifyPhonemeSilence(t *testing.T) {
	t.Parallel()

	th := viseme.DefaultThresholds()

	if got := viseme.ClassifyPhoneme(0, 0, 0, th); got != viseme.PhonemeSilence {
		t.Fatalf("zero frame: got %s, want sil", got)
	}
	if got := viseme.ClassifyPhoneme(0.005, 1400, 0.05, th); got != viseme.PhonemeSilence {
		t.Fatalf("sub-floor energy: got %s, want sil", got)
	}
}

func TestClassifyPhonemeVowels(t *testing.T) {
	t.Parallel()

	th := viseme.DefaultThresholds()

	cases := []struct {
		centroid float64
		want     viseme.Phoneme
	}{
		{500, viseme.PhonemeUW},
		{900, viseme.PhonemeOW},
		{1400, viseme.PhonemeAA},
		{2000, viseme.PhonemeEH},
		{3000, viseme.PhonemeIY},
	}

	for _, c := range cases {
		if got := viseme.ClassifyPhoneme(0.2, c.centroid, 0.05, th); got != c.want {
			t.Fatalf("centroid %.0f: got %s, want %s", c.centroid, got, c.want)
		}
	}
}

func TestClassifyPhonemeConsonants(t *testing.T) {
	t.Parallel()

	th := viseme.DefaultThresholds()

	cases := []struct {
		centroid float64
		want     viseme.Phoneme
	}{
		{800, viseme.PhonemeB},
		{1500, viseme.PhonemeD},
		{2500, viseme.PhonemeK},
		{4000, viseme.PhonemeCH},
		{6000, viseme.PhonemeS},
	}

	for _, c := range cases {
		if got := viseme.ClassifyPhoneme(0.2, c.centroid, 0.3, th); got != c.want {
			t.Fatalf("centroid %.0f: got %s, want %s", c.centroid, got, c.want)
		}
	}
}

func TestClassifyPhonemeMurmurs(t *testing.T) {
	t.Parallel()

	th := viseme.DefaultThresholds()

	// Voiced but too quiet for a vowel.
	cases := []struct {
		centroid float64
		want     viseme.Phoneme
	}{
		{400, viseme.PhonemeN},
		{1300, viseme.PhonemeR},
	}

	for _, c := range cases {
		if got := viseme.ClassifyPhoneme(0.04, c.centroid, 0.05, th); got != c.want {
			t.Fatalf("centroid %.0f: got %s, want %s", c.centroid, got, c.want)
		}
	}
}

func TestClassifyPhonemeWeakFricatives(t *testing.T) {
	t.Parallel()

	th := viseme.DefaultThresholds()

	// Noisy but too quiet for a sibilant or stop burst.
	cases := []struct {
		centroid float64
		want     viseme.Phoneme
	}{
		{3000, viseme.PhonemeF},
		{5500, viseme.PhonemeTH},
	}

	for _, c := range cases {
		if got := viseme.ClassifyPhoneme(0.03, c.centroid, 0.3, th); got != c.want {
			t.Fatalf("centroid %.0f: got %s, want %s", c.centroid, got, c.want)
		}
	}
}

func TestClassifyPhonemeRetunedThresholds(t *testing.T) {
	t.Parallel()

	th := viseme.DefaultThresholds()
	th.SilenceEnergy = 0.3

	if got := viseme.ClassifyPhoneme(0.2, 1400, 0.05, th); got != viseme.PhonemeSilence {
		t.Fatalf("raised floor: got %s, want sil", got)
	}
}
