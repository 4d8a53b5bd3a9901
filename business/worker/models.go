package worker

import (
	"github.com/gorilla/websocket"
	"github.com/superfeelapi/goAvatar/foundation/emotion"
	"github.com/superfeelapi/goAvatar/foundation/external/animator"
	"github.com/superfeelapi/goAvatar/foundation/redis"
	"github.com/superfeelapi/goAvatar/foundation/session"
	"github.com/superfeelapi/goAvatar/foundation/viseme"
	"github.com/superfeelapi/goAvatar/foundation/voice"
	"go.uber.org/zap"
)

type Settings struct {
	Config
	Logger   *zap.SugaredLogger
	Gateway  *websocket.Conn
	Animator *animator.Client
	Redis    *redis.Redis
	Sessions *session.Manager
	Acoustic *emotion.AcousticExtractor
}

type Config struct {
	AvatarID          string
	ProfileID         string
	SampleRate        int
	MinimumConfidence float64
	Weights           emotion.Weights
}

// =====================================================================================================================

// Gateway message types.
const (
	audioMessage      = "audio"
	transcriptMessage = "transcript"
	contextMessage    = "context"
	endMessage        = "end"
)

// GatewayMessage is the JSON envelope the audio gateway sends over the
// websocket. Audio carries base64 16-bit little-endian PCM.
type GatewayMessage struct {
	Type       string       `json:"type"`
	SessionID  string       `json:"session_id"`
	AudioID    string       `json:"audio_id,omitempty"`
	Audio      string       `json:"audio,omitempty"`
	SampleRate int          `json:"sample_rate,omitempty"`
	Transcript string       `json:"transcript,omitempty"`
	IsFinal    bool         `json:"is_final,omitempty"`
	Context    *ContextData `json:"context,omitempty"`
}

type ContextData struct {
	Topics            []string `json:"topics"`
	History           []string `json:"history,omitempty"`
	TimeOfDay         string   `json:"time_of_day"`
	InteractionLength int      `json:"interaction_length"`
}

// =====================================================================================================================
// Pipeline payloads passed between operations.

type AudioPayload struct {
	SessionID string
	AudioID   string
	Samples   []float64
}

type TranscriptPayload struct {
	SessionID  string
	Transcript string
}

type ContextPayload struct {
	SessionID string
	Context   emotion.ContextualFeatures
}

type FramesPayload struct {
	SessionID string
	AudioID   string
	Frames    []voice.FrameCharacteristics
}

type VoicePayload struct {
	SessionID       string
	AudioID         string
	Characteristics voice.VoiceCharacteristics
}

type VisemePayload struct {
	SessionID string
	AudioID   string
	Visemes   []viseme.Viseme
}

type EmotionPayload struct {
	SessionID  string
	Detection  emotion.DetectedEmotion
	Transition *emotion.Transition
	Dominant   emotion.Emotion
	Stability  float64
}

// TransitionData is published to redis whenever a session changes emotion.
type TransitionData struct {
	AvatarID   string                  `json:"avatar_id"`
	SessionID  string                  `json:"session_id"`
	Emotion    emotion.DetectedEmotion `json:"emotion"`
	Transition emotion.Transition      `json:"transition"`
}
