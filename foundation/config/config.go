package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// GetProfile loads the analysis configuration file and returns the profile
// with the given id. Settings a profile leaves at zero take the standard
// defaults, so a profile may override just one value.
func GetProfile(configPath string, profileID string) (Profile, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return Profile{}, err
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Profile{}, err
	}

	var config Config

	if err := json.Unmarshal(bytes, &config); err != nil {
		return Profile{}, err
	}
	profile, exists := profileExists(config.Profiles, profileID)
	if !exists {
		return Profile{}, fmt.Errorf("profile[%s] does not exist", profileID)
	}

	return withDefaults(profile), nil
}

func profileExists(profiles []Profile, profileID string) (Profile, bool) {
	for _, p := range profiles {
		if p.ID == profileID {
			return p, true
		}
	}
	return Profile{}, false
}

func withDefaults(p Profile) Profile {
	if p.Audio.SampleRate == 0 {
		p.Audio.SampleRate = 16000
	}
	if p.Audio.WindowSize == 0 {
		p.Audio.WindowSize = 512
	}
	if p.Audio.HopSize == 0 {
		p.Audio.HopSize = 256
	}
	if p.Audio.MelFilterCount == 0 {
		p.Audio.MelFilterCount = 26
	}
	if p.Audio.MFCCCoefficientCount == 0 {
		p.Audio.MFCCCoefficientCount = 13
	}

	if p.Emotion.MinimumConfidence == 0 {
		p.Emotion.MinimumConfidence = 0.3
	}
	if p.Emotion.TextWeight == 0 {
		p.Emotion.TextWeight = 0.4
	}
	if p.Emotion.AudioWeight == 0 {
		p.Emotion.AudioWeight = 0.4
	}
	if p.Emotion.ContextWeight == 0 {
		p.Emotion.ContextWeight = 0.2
	}
	if p.Emotion.SmoothingWindowMs == 0 {
		p.Emotion.SmoothingWindowMs = 2000
	}
	if p.Emotion.HistoryCapacity == 0 {
		p.Emotion.HistoryCapacity = 100
	}

	return p
}
