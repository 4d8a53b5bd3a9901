package viseme

import "github.com/superfeelapi/goAvatar/foundation/voice"

// Viseme labels follow the common 15-shape lip-sync alphabet.
const (
	Sil = "sil"
	PP  = "PP"
	FF  = "FF"
	TH  = "TH"
	DD  = "DD"
	KK  = "kk"
	CH  = "CH"
	SS  = "SS"
	NN  = "nn"
	RR  = "RR"
	AA  = "aa"
	E   = "E"
	I   = "I"
	O   = "O"
	U   = "U"
)

// Viseme is one time slot of mouth-shape output. The smoothing pass replaces
// entries but never deletes them, so sequence length and total duration are
// stable.
type Viseme struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	DurationMs float64 `json:"duration_ms"`
	Intensity  float64 `json:"intensity"`
}

var phonemeVisemes = map[Phoneme]string{
	PhonemeSilence: Sil,
	PhonemeAA:      AA,
	PhonemeEH:      E,
	PhonemeIY:      I,
	PhonemeOW:      O,
	PhonemeUW:      U,
	PhonemeN:       NN,
	PhonemeR:       RR,
	PhonemeB:       PP,
	PhonemeD:       DD,
	PhonemeF:       FF,
	PhonemeTH:      TH,
	PhonemeK:       KK,
	PhonemeCH:      CH,
	PhonemeS:       SS,
}

// VisemeFor returns the mouth shape for a phoneme. Unknown phonemes map to
// silence.
func VisemeFor(p Phoneme) string {
	if v, ok := phonemeVisemes[p]; ok {
		return v
	}
	return Sil
}

// Mapper turns per-frame voice characteristics into a viseme sequence.
// Thresholds and EnergyScale may be retuned before use; a Mapper must not
// be reconfigured while mapping.
type Mapper struct {
	Thresholds  Thresholds
	EnergyScale float64
}

func NewMapper() *Mapper {
	return &Mapper{
		Thresholds:  DefaultThresholds(),
		EnergyScale: 4,
	}
}

// Map produces one viseme per analysis frame. Confidence scales with frame
// energy; silence confidence instead rises as energy falls.
func (m *Mapper) Map(frames []voice.FrameCharacteristics) []Viseme {
	seq := make([]Viseme, 0, len(frames))

	for _, fr := range frames {
		p := ClassifyPhoneme(fr.Energy, fr.SpectralCentroid, fr.ZeroCrossingRate, m.Thresholds)

		confidence := clamp01(fr.Energy * m.EnergyScale)
		if p == PhonemeSilence {
			confidence = clamp01(1 - fr.Energy*m.EnergyScale)
		}

		seq = append(seq, Viseme{
			Label:      VisemeFor(p),
			Confidence: confidence,
			DurationMs: fr.DurationMs,
			Intensity:  clamp01(fr.Energy * m.EnergyScale),
		})
	}

	return seq
}

// smoothingConfidence is the bar below which an isolated frame yields to its
// neighbors.
const smoothingConfidence = 0.6

// Smooth applies one smoothing pass over the sequence. Each interior frame
// whose label differs from both neighbors and whose confidence is below 0.6
// takes the higher-confidence neighbor's label and confidence. Neighbors are
// read from the pre-pass sequence so replacements never cascade; the pass
// runs once, not to convergence.
func Smooth(seq []Viseme) []Viseme {
	out := make([]Viseme, len(seq))
	copy(out, seq)

	for i := 1; i < len(seq)-1; i++ {
		cur, prev, next := seq[i], seq[i-1], seq[i+1]
		if cur.Label == prev.Label || cur.Label == next.Label || cur.Confidence >= smoothingConfidence {
			continue
		}

		n := prev
		if next.Confidence > prev.Confidence {
			n = next
		}
		out[i].Label = n.Label
		out[i].Confidence = n.Confidence
	}

	return out
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
