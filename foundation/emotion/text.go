package emotion

import (
	"strings"
	"unicode"
)

var positiveWords = wordSet(
	"happy", "glad", "joy", "joyful", "great", "good", "wonderful", "awesome",
	"amazing", "love", "lovely", "excellent", "fantastic", "delighted",
	"pleased", "excited", "thrilled", "fun", "beautiful", "perfect", "best",
	"thanks", "thank", "grateful", "nice",
)

var negativeWords = wordSet(
	"sad", "unhappy", "bad", "terrible", "awful", "horrible", "hate", "angry",
	"furious", "mad", "upset", "annoyed", "worried", "scared", "afraid",
	"anxious", "cry", "crying", "lonely", "miserable", "worst",
	"disappointed", "frustrated", "broken",
)

var subjectiveMarkers = wordSet(
	"think", "feel", "believe", "maybe", "probably", "really", "very", "so",
	"totally", "absolutely", "definitely", "honestly", "guess", "seems",
	"quite", "pretty",
)

var keywordEmotions = map[string]Emotion{
	"happy": Happy, "glad": Happy, "joy": Happy, "joyful": Happy,
	"delighted": Happy, "wonderful": Happy, "fantastic": Happy,
	"awesome": Happy, "great": Happy,

	"excited": Excited, "thrilled": Excited, "amazing": Excited,
	"incredible": Excited,

	"sad": Sad, "unhappy": Sad, "miserable": Sad, "lonely": Sad,
	"crying": Sad, "heartbroken": Sad, "disappointed": Sad,

	"angry": Angry, "furious": Angry, "mad": Angry, "annoyed": Angry,
	"frustrated": Angry, "outraged": Angry,

	"worried": Anxious, "scared": Anxious, "afraid": Anxious,
	"anxious": Anxious, "nervous": Anxious, "terrified": Anxious,

	"surprised": Surprised, "shocked": Surprised, "stunned": Surprised,
	"unbelievable": Surprised, "wow": Surprised,

	"calm": Calm, "relaxed": Calm, "peaceful": Calm,
}

var emoticonEmotions = map[string]Emotion{
	":)": Happy, ":-)": Happy, ":D": Happy, ":-D": Happy, ";)": Happy,
	":P": Happy, "<3": Happy,
	":(": Sad, ":-(": Sad, ":'(": Sad,
	":O": Surprised, ":o": Surprised,
	">:(": Angry,
}

// emoticonPatterns fixes the scan order: longest first, so a pattern
// consumes its whole span before any shorter pattern inside it can match.
var emoticonPatterns = []string{
	">:(", ":'(", ":-)", ":-(", ":-D",
	"<3", ":)", ":(", ":D", ":P", ";)", ":O", ":o",
}

// ExtractTextual derives surface sentiment and intensity features from a
// transcript slice. An empty transcript yields the zero record.
func ExtractTextual(text string) TextualFeatures {
	var f TextualFeatures

	var positive, negative, subjective int
	for _, word := range tokenize(text) {
		if positiveWords[word] {
			positive++
		}
		if negativeWords[word] {
			negative++
		}
		if subjectiveMarkers[word] {
			subjective++
		}
		if _, ok := keywordEmotions[word]; ok {
			f.Keywords = append(f.Keywords, word)
		}
	}

	if emotional := positive + negative; emotional > 0 {
		f.Sentiment = float64(positive-negative) / float64(emotional)
	}

	if subjective > 10 {
		subjective = 10
	}
	f.Subjectivity = float64(subjective) / 10

	for i := 0; i < len(text); {
		matched := ""
		for _, pattern := range emoticonPatterns {
			if strings.HasPrefix(text[i:], pattern) {
				matched = pattern
				break
			}
		}
		if matched == "" {
			i++
			continue
		}
		f.Emoticons = append(f.Emoticons, matched)
		i += len(matched)
	}

	var letters, upper int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters > 0 {
		f.CapsUsage = float64(upper) / float64(letters)
	}

	f.ExclamationCount = strings.Count(text, "!")
	f.QuestionCount = strings.Count(text, "?")

	intensity := float64(f.ExclamationCount+f.QuestionCount) / 5
	if intensity > 1 {
		intensity = 1
	}
	f.PunctuationIntensity = intensity

	return f
}

// ClassifyText scores emotion candidates from textual features. Candidates
// below minimumConfidence are dropped; an empty survivor set falls back to
// (neutral, moderate, 0.5).
func ClassifyText(f TextualFeatures, minimumConfidence float64) []Candidate {
	var cands []Candidate

	boost := 0
	if f.ExclamationCount >= 2 {
		boost++
	}
	if f.CapsUsage >= 0.3 {
		boost++
	}

	counts := make(map[Emotion]int)
	for _, w := range f.Keywords {
		counts[keywordEmotions[w]]++
	}
	for _, emo := range emotions {
		n := counts[emo]
		if n == 0 {
			continue
		}
		conf := 0.5 + 0.1*float64(n)
		if conf > 0.95 {
			conf = 0.95
		}
		cands = append(cands, Candidate{
			Emotion:    emo,
			Intensity:  IntensityFromLevel(Moderate.Level() + boost),
			Confidence: conf,
			Source:     SourceText,
		})
	}

	switch {
	case f.Sentiment >= 0.3 && counts[Happy] == 0:
		cands = append(cands, Candidate{
			Emotion:    Happy,
			Intensity:  IntensityFromLevel(Moderate.Level() + boost),
			Confidence: 0.4 + 0.2*f.Sentiment,
			Source:     SourceText,
		})

	case f.Sentiment <= -0.3 && counts[Sad] == 0 && counts[Angry] == 0:
		emo := Sad
		if boost > 0 {
			emo = Angry
		}
		cands = append(cands, Candidate{
			Emotion:    emo,
			Intensity:  IntensityFromLevel(Moderate.Level() + boost),
			Confidence: 0.4 - 0.2*f.Sentiment,
			Source:     SourceText,
		})
	}

	if f.Sentiment > 0 && f.ExclamationCount >= 3 {
		n := f.ExclamationCount
		if n > 5 {
			n = 5
		}
		cands = append(cands, Candidate{
			Emotion:    Excited,
			Intensity:  High,
			Confidence: 0.55 + 0.05*float64(n),
			Source:     SourceText,
		})
	}

	if f.QuestionCount >= 2 && f.Sentiment < 0 {
		cands = append(cands, Candidate{
			Emotion:    Anxious,
			Intensity:  Moderate,
			Confidence: 0.45,
			Source:     SourceText,
		})
	}

	emoCounts := make(map[Emotion]int)
	for _, e := range f.Emoticons {
		emoCounts[emoticonEmotions[e]]++
	}
	for _, emo := range emotions {
		n := emoCounts[emo]
		if n == 0 || counts[emo] > 0 {
			continue
		}
		conf := 0.5 + 0.05*float64(n)
		if conf > 0.7 {
			conf = 0.7
		}
		cands = append(cands, Candidate{
			Emotion:    emo,
			Intensity:  Moderate,
			Confidence: conf,
			Source:     SourceText,
		})
	}

	return surviving(cands, minimumConfidence, SourceText)
}

// surviving filters low-confidence candidates; if none survive, the
// modality falls back to a neutral vote.
func surviving(cands []Candidate, minimumConfidence float64, src Source) []Candidate {
	var kept []Candidate
	for _, c := range cands {
		if c.Confidence >= minimumConfidence {
			kept = append(kept, c)
		}
	}

	if len(kept) == 0 {
		return []Candidate{{
			Emotion:    Neutral,
			Intensity:  Moderate,
			Confidence: 0.5,
			Source:     src,
		}}
	}

	return kept
}

// =================================================================================================================

func wordSet(words ...string) map[string]bool {
	s := make(map[string]bool, len(words))
	for _, w := range words {
		s[w] = true
	}
	return s
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}
