package emotion

import (
	"math"
	"time"
)

// emotions fixes the iteration order over categories so fusion picks the
// same winner on equal scores every run.
var emotions = [...]Emotion{
	Neutral, Happy, Excited, Sad, Angry, Anxious, Surprised, Calm,
}

// Weights scale each modality's contribution to the fused score. They are
// free to not sum to one.
type Weights struct {
	Text    float64 `json:"text"`
	Audio   float64 `json:"audio"`
	Context float64 `json:"context"`
}

func DefaultWeights() Weights {
	return Weights{
		Text:    0.4,
		Audio:   0.4,
		Context: 0.2,
	}
}

func (w Weights) For(src Source) float64 {
	switch src {
	case SourceText:
		return w.Text
	case SourceAudio:
		return w.Audio
	case SourceContext:
		return w.Context
	}
	return 0
}

// Fuse combines per-modality candidates into one detection. Scores
// accumulate confidence times modality weight per emotion; the winning
// emotion takes the rounded mean intensity of its contributors and a
// confidence of min(1, score). No candidates fuses to the neutral default.
func Fuse(cands []Candidate, w Weights, f Features, ts time.Time) DetectedEmotion {
	if len(cands) == 0 {
		return DetectedEmotion{
			Emotion:    Neutral,
			Intensity:  Moderate,
			Confidence: 0.5,
			Timestamp:  ts,
			Source:     SourceCombined,
			Features:   f,
		}
	}

	scores := make(map[Emotion]float64)
	for _, c := range cands {
		scores[c.Emotion] += c.Confidence * w.For(c.Source)
	}

	best := Neutral
	bestScore := math.Inf(-1)
	for _, emo := range emotions {
		if s, ok := scores[emo]; ok && s > bestScore {
			best, bestScore = emo, s
		}
	}

	// Custom rules may vote for emotions outside the canonical set; those
	// fall back to candidate order.
	if math.IsInf(bestScore, -1) {
		for _, c := range cands {
			if s := scores[c.Emotion]; s > bestScore {
				best, bestScore = c.Emotion, s
			}
		}
	}

	var levels, contributors int
	sources := make(map[Source]bool)
	for _, c := range cands {
		if c.Emotion != best {
			continue
		}
		levels += c.Intensity.Level()
		contributors++
		sources[c.Source] = true
	}

	src := SourceCombined
	if len(sources) == 1 {
		for s := range sources {
			src = s
		}
	}

	return DetectedEmotion{
		Emotion:    best,
		Intensity:  IntensityFromLevel(int(math.Round(float64(levels) / float64(contributors)))),
		Confidence: math.Min(1, bestScore),
		Timestamp:  ts,
		Source:     src,
		Features:   f,
	}
}

// Classifier runs the per-modality classifiers over whichever feature parts
// are present and fuses the surviving candidates. Absent modalities
// contribute nothing, so a text-only detection is never diluted by neutral
// fallbacks from modalities that were never observed.
type Classifier struct {
	MinimumConfidence float64
	Weights           Weights
	Rules             []Rule
}

func NewClassifier(minimumConfidence float64, weights Weights) *Classifier {
	return &Classifier{
		MinimumConfidence: minimumConfidence,
		Weights:           weights,
		Rules:             DefaultRules(),
	}
}

// Detect classifies and fuses the supplied features into one detection
// stamped with ts.
func (c *Classifier) Detect(f Features, ts time.Time) DetectedEmotion {
	var cands []Candidate

	if f.Textual != nil {
		cands = append(cands, ClassifyText(*f.Textual, c.MinimumConfidence)...)
	}
	if f.Acoustic != nil {
		cands = append(cands, ClassifyAudio(*f.Acoustic, c.MinimumConfidence)...)
	}
	if f.Contextual != nil {
		cands = append(cands, ClassifyContext(*f.Contextual, c.Rules, c.MinimumConfidence)...)
	}

	return Fuse(cands, c.Weights, f, ts)
}
