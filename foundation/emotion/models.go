// Package emotion estimates a speaker's emotional state from text, audio
// and conversational context. Per-modality classifiers produce scored
// candidates, a fuser combines them with configurable weights, and a
// tracker owns the per-session state: current emotion, bounded histories
// and transition records.
package emotion

import "time"

// Emotion labels one categorical emotional state.
type Emotion string

const (
	Neutral   Emotion = "neutral"
	Happy     Emotion = "happy"
	Excited   Emotion = "excited"
	Sad       Emotion = "sad"
	Angry     Emotion = "angry"
	Anxious   Emotion = "anxious"
	Surprised Emotion = "surprised"
	Calm      Emotion = "calm"
)

// Intensity is the five-level strength of a detection.
type Intensity string

const (
	VeryLow  Intensity = "very_low"
	Low      Intensity = "low"
	Moderate Intensity = "moderate"
	High     Intensity = "high"
	VeryHigh Intensity = "very_high"
)

var intensityLevels = [...]Intensity{VeryLow, Low, Moderate, High, VeryHigh}

// Level returns the ordinal of the intensity, 0 for very low through 4 for
// very high. Unknown values count as moderate.
func (i Intensity) Level() int {
	for l, v := range intensityLevels {
		if v == i {
			return l
		}
	}
	return Moderate.Level()
}

// IntensityFromLevel maps an ordinal back to an intensity, clamped to the
// valid range.
func IntensityFromLevel(level int) Intensity {
	if level < 0 {
		level = 0
	}
	if level > len(intensityLevels)-1 {
		level = len(intensityLevels) - 1
	}
	return intensityLevels[level]
}

// Source names the modality a detection came from.
type Source string

const (
	SourceText     Source = "text"
	SourceAudio    Source = "audio"
	SourceContext  Source = "context"
	SourceCombined Source = "combined"
)

// TextualFeatures are the surface signals of a transcript slice.
type TextualFeatures struct {
	Sentiment            float64  `json:"sentiment"`
	Subjectivity         float64  `json:"subjectivity"`
	Keywords             []string `json:"keywords"`
	PunctuationIntensity float64  `json:"punctuation_intensity"`
	CapsUsage            float64  `json:"caps_usage"`
	Emoticons            []string `json:"emoticons"`
	ExclamationCount     int      `json:"exclamation_count"`
	QuestionCount        int      `json:"question_count"`
}

// AcousticFeatures are the prosodic signals of a PCM buffer.
type AcousticFeatures struct {
	Pitch            float64   `json:"pitch"`
	PitchVariance    float64   `json:"pitch_variance"`
	Energy           float64   `json:"energy"`
	Tempo            float64   `json:"tempo"`
	SpectralCentroid float64   `json:"spectral_centroid"`
	Jitter           float64   `json:"jitter"`
	Shimmer          float64   `json:"shimmer"`
	BandEnergies     []float64 `json:"band_energies"`
}

// ContextualFeatures describe the conversational situation around an
// utterance. History holds prior emotion labels, oldest first.
type ContextualFeatures struct {
	Topics            []string `json:"topics"`
	History           []string `json:"history"`
	TimeOfDay         string   `json:"time_of_day"`
	InteractionLength int      `json:"interaction_length"`
}

// Features carries the per-modality evidence behind a detection. Absent
// modalities stay nil.
type Features struct {
	Textual    *TextualFeatures    `json:"textual,omitempty"`
	Acoustic   *AcousticFeatures   `json:"acoustic,omitempty"`
	Contextual *ContextualFeatures `json:"contextual,omitempty"`
}

// Candidate is one modality's scored guess.
type Candidate struct {
	Emotion    Emotion
	Intensity  Intensity
	Confidence float64
	Source     Source
}

// DetectedEmotion is the fused estimate for one analysis slice.
type DetectedEmotion struct {
	Emotion    Emotion   `json:"emotion"`
	Intensity  Intensity `json:"intensity"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
	Source     Source    `json:"source"`
	Features   Features  `json:"features"`
}

// Transition records a change between consecutive detections.
type Transition struct {
	FromEmotion     Emotion   `json:"from_emotion"`
	ToEmotion       Emotion   `json:"to_emotion"`
	TransitionSpeed float64   `json:"transition_speed"`
	BlendFactor     float64   `json:"blend_factor"`
	Reason          string    `json:"reason"`
	Timestamp       time.Time `json:"timestamp"`
}
