package config_test

import (
	"testing"

	"github.com/superfeelapi/goAvatar/foundation/config"
)

const filepath = "config.json"

func TestGetProfile(t *testing.T) {
	t.Run("profile exists", func(t *testing.T) {
		t.Parallel()
		profile, err := config.GetProfile(filepath, "studio")
		if err != nil {
			t.Fatal(err)
		}
		if profile.Name != "Studio capture" {
			t.Fatalf("name: got %s, want Studio capture", profile.Name)
		}
		if profile.Audio.SampleRate != 22050 || profile.Audio.WindowSize != 1024 {
			t.Fatalf("audio settings not loaded: %+v", profile.Audio)
		}
		if profile.Emotion.TextWeight != 0.5 {
			t.Fatalf("text weight: got %.2f, want 0.5", profile.Emotion.TextWeight)
		}
	})

	t.Run("profile does not exist", func(t *testing.T) {
		t.Parallel()
		_, err := config.GetProfile(filepath, "missing")
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("zero settings take defaults", func(t *testing.T) {
		t.Parallel()
		profile, err := config.GetProfile(filepath, "sparse")
		if err != nil {
			t.Fatal(err)
		}
		if profile.Audio.SampleRate != 16000 || profile.Audio.MelFilterCount != 26 {
			t.Fatalf("audio defaults not applied: %+v", profile.Audio)
		}
		if profile.Emotion.MinimumConfidence != 0.3 || profile.Emotion.HistoryCapacity != 100 {
			t.Fatalf("emotion defaults not applied: %+v", profile.Emotion)
		}
	})
}
