package animator

import (
	"github.com/superfeelapi/goAvatar/foundation/emotion"
	"github.com/superfeelapi/goAvatar/foundation/viseme"
	"github.com/superfeelapi/goAvatar/foundation/voice"
)

type SessionData struct {
	AvatarID  string `json:"avatar_id"`
	SessionID string `json:"session_id"`
	ProfileID string `json:"profile_id"`
}

type VisemeData struct {
	AvatarID  string          `json:"avatar_id"`
	SessionID string          `json:"session_id"`
	AudioID   string          `json:"audio_id"`
	DataID    string          `json:"data_id"`
	Visemes   []viseme.Viseme `json:"visemes"`
}

type EmotionData struct {
	AvatarID   string                  `json:"avatar_id"`
	SessionID  string                  `json:"session_id"`
	DataID     string                  `json:"data_id"`
	Emotion    emotion.DetectedEmotion `json:"emotion"`
	Transition *emotion.Transition     `json:"transition,omitempty"`
	Dominant   emotion.Emotion         `json:"dominant"`
	Stability  float64                 `json:"stability"`
}

type VoiceData struct {
	AvatarID        string                     `json:"avatar_id"`
	SessionID       string                     `json:"session_id"`
	AudioID         string                     `json:"audio_id"`
	DataID          string                     `json:"data_id"`
	Characteristics voice.VoiceCharacteristics `json:"characteristics"`
}
