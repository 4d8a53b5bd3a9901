// Package session owns the per-avatar analysis state. A Manager keys
// sessions by id; each session holds its own voice-characteristics cache
// and emotion tracker, so concurrent sessions never share state. Analysis
// results are computed into locals and committed only on full completion,
// which keeps a cancelled analysis from corrupting the session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/superfeelapi/goAvatar/foundation/emotion"
	"github.com/superfeelapi/goAvatar/foundation/voice"
)

// Manager creates, looks up and destroys sessions. The characterizer is
// pure and shared; everything stateful lives inside the sessions.
type Manager struct {
	characterizer *voice.Characterizer
	trackerCfg    emotion.TrackerConfig

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(voiceCfg voice.Config, trackerCfg emotion.TrackerConfig) (*Manager, error) {
	characterizer, err := voice.NewCharacterizer(voiceCfg)
	if err != nil {
		return nil, err
	}

	return &Manager{
		characterizer: characterizer,
		trackerCfg:    trackerCfg,
		sessions:      make(map[string]*Session),
	}, nil
}

// Open returns the session with the given id, creating it on first use.
func (m *Manager) Open(id string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}

	s = &Session{
		id:            id,
		characterizer: m.characterizer,
		cache:         make(map[string]voice.VoiceCharacteristics),
		tracker:       emotion.NewTracker(m.trackerCfg),
	}
	m.sessions[id] = s
	return s
}

// Create opens a session under a fresh id.
func (m *Manager) Create() *Session {
	return m.Open(uuid.New().String())
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	return s, ok
}

// Destroy drops the session and all its state.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Session is one avatar's analysis state.
type Session struct {
	id            string
	characterizer *voice.Characterizer

	mu      sync.Mutex
	cache   map[string]voice.VoiceCharacteristics
	tracker *emotion.Tracker
}

func (s *Session) ID() string {
	return s.id
}

// AnalyzeBuffer computes the buffer's voice characteristics and caches them
// under audioID, replacing any previous entry for that id. The analysis runs
// outside the session lock; an error or cancellation leaves the cache
// untouched.
func (s *Session) AnalyzeBuffer(ctx context.Context, audioID string, samples []float64) (voice.VoiceCharacteristics, error) {
	vc, err := s.characterizer.AnalyzeBuffer(ctx, samples)
	if err != nil {
		return voice.VoiceCharacteristics{}, err
	}

	s.mu.Lock()
	s.cache[audioID] = vc
	s.mu.Unlock()

	return vc, nil
}

// AnalyzeFrames computes the per-frame stream for the buffer. Frames are
// not cached; they feed the viseme mapper directly.
func (s *Session) AnalyzeFrames(ctx context.Context, samples []float64) ([]voice.FrameCharacteristics, error) {
	return s.characterizer.AnalyzeFrames(ctx, samples)
}

// Cached reports the characteristics stored under audioID.
func (s *Session) Cached(audioID string) (voice.VoiceCharacteristics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vc, ok := s.cache[audioID]
	return vc, ok
}

// Submit records a detection in the session's tracker and reports the
// transition, if any.
func (s *Session) Submit(d emotion.DetectedEmotion) *emotion.Transition {
	return s.tracker.Submit(d)
}

// Current reports the session's current emotion.
func (s *Session) Current() (emotion.DetectedEmotion, bool) {
	return s.tracker.Current()
}

// Dominant reports the dominant emotion over the trailing window.
func (s *Session) Dominant(now time.Time) (emotion.Emotion, bool) {
	return s.tracker.Dominant(now)
}

// Stability reports the emotional stability over the trailing window.
func (s *Session) Stability(now time.Time) float64 {
	return s.tracker.Stability(now)
}

// History returns a copy of the session's detection history.
func (s *Session) History() []emotion.DetectedEmotion {
	return s.tracker.History()
}

// SetTransition retunes one transition pair for this session only.
func (s *Session) SetTransition(from, to emotion.Emotion, p emotion.TransitionProfile) {
	s.tracker.SetTransition(from, to, p)
}
