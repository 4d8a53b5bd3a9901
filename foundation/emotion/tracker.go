package emotion

import (
	"fmt"
	"sync"
	"time"
)

// TransitionProfile is the animation hint for one from-to emotion pair.
type TransitionProfile struct {
	Speed float64 `json:"speed"`
	Blend float64 `json:"blend"`
}

// DefaultTransitionProfile applies to every pair absent from the table.
var DefaultTransitionProfile = TransitionProfile{Speed: 0.5, Blend: 0.5}

type transitionKey struct {
	from Emotion
	to   Emotion
}

// defaultTransitions lists the commonly observed pairs. Coverage is sparse
// on purpose; unlisted pairs take DefaultTransitionProfile and callers
// retune pairs through SetTransition.
func defaultTransitions() map[transitionKey]TransitionProfile {
	return map[transitionKey]TransitionProfile{
		{Neutral, Happy}:   {Speed: 0.8, Blend: 0.7},
		{Neutral, Sad}:     {Speed: 0.6, Blend: 0.6},
		{Happy, Excited}:   {Speed: 0.9, Blend: 0.8},
		{Happy, Sad}:       {Speed: 0.3, Blend: 0.4},
		{Sad, Happy}:       {Speed: 0.4, Blend: 0.5},
		{Angry, Calm}:      {Speed: 0.2, Blend: 0.3},
		{Anxious, Calm}:    {Speed: 0.3, Blend: 0.4},
		{Surprised, Happy}: {Speed: 0.7, Blend: 0.6},
	}
}

// TrackerConfig bounds the per-session emotion state.
type TrackerConfig struct {
	HistoryCapacity int
	Window          time.Duration
}

func (c TrackerConfig) withDefaults() TrackerConfig {
	if c.HistoryCapacity <= 0 {
		c.HistoryCapacity = 100
	}
	if c.Window <= 0 {
		c.Window = 2 * time.Second
	}
	return c
}

// Tracker owns one session's emotional state: the current emotion, a
// bounded detection history, a bounded transition history and the
// transition profile table. All mutation goes through Submit, which
// serializes concurrent callers.
type Tracker struct {
	mu          sync.Mutex
	cfg         TrackerConfig
	current     *DetectedEmotion
	history     []DetectedEmotion
	transitions []Transition
	table       map[transitionKey]TransitionProfile
}

func NewTracker(cfg TrackerConfig) *Tracker {
	return &Tracker{
		cfg:   cfg.withDefaults(),
		table: defaultTransitions(),
	}
}

// SetTransition overrides the profile for one pair.
func (t *Tracker) SetTransition(from, to Emotion, p TransitionProfile) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.table[transitionKey{from, to}] = p
}

// Submit records a detection, replacing the current emotion
// unconditionally. When the emotion changes, the returned transition
// carries the pair's profile with its speed scaled by the new detection's
// confidence. Histories evict oldest-first at capacity.
func (t *Tracker) Submit(d DetectedEmotion) *Transition {
	t.mu.Lock()
	defer t.mu.Unlock()

	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now()
	}

	var tr *Transition
	if t.current != nil && t.current.Emotion != d.Emotion {
		p, ok := t.table[transitionKey{t.current.Emotion, d.Emotion}]
		if !ok {
			p = DefaultTransitionProfile
		}

		tr = &Transition{
			FromEmotion:     t.current.Emotion,
			ToEmotion:       d.Emotion,
			TransitionSpeed: clamp01(p.Speed * d.Confidence),
			BlendFactor:     p.Blend,
			Reason:          fmt.Sprintf("%s detection", d.Source),
			Timestamp:       d.Timestamp,
		}
		t.transitions = appendBounded(t.transitions, *tr, t.cfg.HistoryCapacity)
	}

	cur := d
	t.current = &cur
	t.history = appendBounded(t.history, d, t.cfg.HistoryCapacity)

	return tr
}

// Current reports the most recent detection, false before the first Submit.
func (t *Tracker) Current() (DetectedEmotion, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return DetectedEmotion{}, false
	}
	return *t.current, true
}

// History returns a copy of the detection history, oldest first.
func (t *Tracker) History() []DetectedEmotion {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]DetectedEmotion, len(t.history))
	copy(out, t.history)
	return out
}

// Transitions returns a copy of the transition history, oldest first.
func (t *Tracker) Transitions() []Transition {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Transition, len(t.transitions))
	copy(out, t.transitions)
	return out
}

// Dominant reports the emotion with the highest confidence-weighted
// frequency among detections inside the trailing window ending at now,
// false when the window holds no detection.
func (t *Tracker) Dominant(now time.Time) (Emotion, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := now.Add(-t.cfg.Window)

	weights := make(map[Emotion]float64)
	var any bool
	for _, d := range t.history {
		if d.Timestamp.Before(cutoff) || d.Timestamp.After(now) {
			continue
		}
		weights[d.Emotion] += d.Confidence
		any = true
	}
	if !any {
		return "", false
	}

	best := Neutral
	bestWeight := -1.0
	for _, emo := range emotions {
		if w, ok := weights[emo]; ok && w > bestWeight {
			best, bestWeight = emo, w
		}
	}

	return best, true
}

// Stability is 1 - transitions/detections over the trailing window ending
// at now, clamped to [0,1] and defined as 1 for an empty window.
func (t *Tracker) Stability(now time.Time) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := now.Add(-t.cfg.Window)

	var detections, transitions int
	for _, d := range t.history {
		if !d.Timestamp.Before(cutoff) && !d.Timestamp.After(now) {
			detections++
		}
	}
	for _, tr := range t.transitions {
		if !tr.Timestamp.Before(cutoff) && !tr.Timestamp.After(now) {
			transitions++
		}
	}

	if detections == 0 {
		return 1
	}

	return clamp01(1 - float64(transitions)/float64(detections))
}

// =================================================================================================================

func appendBounded[T any](s []T, v T, capacity int) []T {
	if len(s) < capacity {
		return append(s, v)
	}

	copy(s, s[1:])
	s[len(s)-1] = v
	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
