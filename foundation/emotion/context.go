package emotion

import "strings"

// Rule is one contextual vote: when Applies holds for the supplied context,
// the rule's emotion receives a weak candidate. Rules are data so callers
// can extend or replace the default set.
type Rule struct {
	Name       string
	Emotion    Emotion
	Intensity  Intensity
	Confidence float64
	Applies    func(ContextualFeatures) bool
}

// DefaultRules covers topic cues, time of day, interaction length and
// emotional momentum from the recent history.
func DefaultRules() []Rule {
	rules := []Rule{
		{
			Name:       "celebration topic",
			Emotion:    Happy,
			Intensity:  Moderate,
			Confidence: 0.4,
			Applies:    topicAny("birthday", "party", "holiday", "vacation", "wedding", "celebration"),
		},
		{
			Name:       "pressure topic",
			Emotion:    Anxious,
			Intensity:  Moderate,
			Confidence: 0.4,
			Applies:    topicAny("deadline", "exam", "interview", "debt", "bills"),
		},
		{
			Name:       "loss topic",
			Emotion:    Sad,
			Intensity:  Moderate,
			Confidence: 0.4,
			Applies:    topicAny("funeral", "goodbye", "breakup", "loss"),
		},
		{
			Name:       "late night",
			Emotion:    Calm,
			Intensity:  Low,
			Confidence: 0.35,
			Applies: func(f ContextualFeatures) bool {
				return strings.EqualFold(f.TimeOfDay, "night")
			},
		},
		{
			Name:       "settled conversation",
			Emotion:    Calm,
			Intensity:  Low,
			Confidence: 0.3,
			Applies: func(f ContextualFeatures) bool {
				return f.InteractionLength >= 30
			},
		},
	}

	// Momentum: an emotion repeated through the recent history tends to
	// persist into the next utterance.
	for _, emo := range emotions {
		if emo == Neutral {
			continue
		}
		rules = append(rules, Rule{
			Name:       "recent " + string(emo),
			Emotion:    emo,
			Intensity:  Moderate,
			Confidence: 0.45,
			Applies:    historyRepeats(emo, 2),
		})
	}

	return rules
}

// ClassifyContext evaluates the rules against the context. Each satisfied
// rule contributes one vote; no satisfied rule falls back to neutral.
func ClassifyContext(f ContextualFeatures, rules []Rule, minimumConfidence float64) []Candidate {
	var cands []Candidate

	for _, r := range rules {
		if r.Applies == nil || !r.Applies(f) {
			continue
		}
		cands = append(cands, Candidate{
			Emotion:    r.Emotion,
			Intensity:  r.Intensity,
			Confidence: r.Confidence,
			Source:     SourceContext,
		})
	}

	return surviving(cands, minimumConfidence, SourceContext)
}

// =================================================================================================================

func topicAny(words ...string) func(ContextualFeatures) bool {
	return func(f ContextualFeatures) bool {
		for _, topic := range f.Topics {
			topic = strings.ToLower(topic)
			for _, w := range words {
				if strings.Contains(topic, w) {
					return true
				}
			}
		}
		return false
	}
}

func historyRepeats(emo Emotion, times int) func(ContextualFeatures) bool {
	return func(f ContextualFeatures) bool {
		if len(f.History) < times {
			return false
		}
		for _, h := range f.History[len(f.History)-times:] {
			if !strings.EqualFold(h, string(emo)) {
				return false
			}
		}
		return true
	}
}
