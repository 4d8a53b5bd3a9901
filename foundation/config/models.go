package config

type Config struct {
	Profiles []Profile `json:"profiles"`
}

// Profile is one named analysis tuning: the audio settings drive the voice
// characterizer and the emotion settings drive classification and tracking.
type Profile struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Audio   AudioSettings   `json:"audio"`
	Emotion EmotionSettings `json:"emotion"`
}

type AudioSettings struct {
	SampleRate           int `json:"sample_rate"`
	WindowSize           int `json:"window_size"`
	HopSize              int `json:"hop_size"`
	MelFilterCount       int `json:"mel_filter_count"`
	MFCCCoefficientCount int `json:"mfcc_coefficient_count"`
}

type EmotionSettings struct {
	MinimumConfidence float64 `json:"minimum_confidence"`
	TextWeight        float64 `json:"text_weight"`
	AudioWeight       float64 `json:"audio_weight"`
	ContextWeight     float64 `json:"context_weight"`
	SmoothingWindowMs int     `json:"smoothing_window_ms"`
	HistoryCapacity   int     `json:"history_capacity"`
}
