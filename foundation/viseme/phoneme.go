// Package viseme maps per-frame acoustic features onto mouth-shape labels
// for lip-sync animation: a rule classifier picks a coarse phoneme, a static
// table collapses phonemes into the viseme alphabet, and a single smoothing
// pass removes low-confidence flicker.
package viseme

// Phoneme is a coarse speech-sound class distinguishable from frame-level
// acoustic features alone.
type Phoneme string

const (
	PhonemeSilence Phoneme = "sil"

	PhonemeAA Phoneme = "aa"
	PhonemeEH Phoneme = "eh"
	PhonemeIY Phoneme = "iy"
	PhonemeOW Phoneme = "ow"
	PhonemeUW Phoneme = "uw"

	PhonemeN Phoneme = "n"
	PhonemeR Phoneme = "r"

	PhonemeB  Phoneme = "b"
	PhonemeD  Phoneme = "d"
	PhonemeF  Phoneme = "f"
	PhonemeTH Phoneme = "th"
	PhonemeK  Phoneme = "k"
	PhonemeCH Phoneme = "ch"
	PhonemeS  Phoneme = "s"
)

// Thresholds are the rule-classifier decision constants, exposed so callers
// can retune them for their corpus. Band values are spectral centroid upper
// bounds in Hz, checked in order. Murmurs are voiced frames too quiet for a
// vowel (nasals and approximants); weak fricatives are noisy frames too
// quiet for a sibilant or stop burst.
type Thresholds struct {
	SilenceEnergy   float64
	MurmurEnergy    float64
	FricativeEnergy float64
	VowelZCR        float64
	MurmurBand      float64
	FricativeBand   float64
	VowelBands      [4]float64
	ConsonantBands  [4]float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		SilenceEnergy:   0.01,
		MurmurEnergy:    0.06,
		FricativeEnergy: 0.05,
		VowelZCR:        0.1,
		MurmurBand:      900,
		FricativeBand:   4000,
		VowelBands:      [4]float64{700, 1100, 1600, 2300},
		ConsonantBands:  [4]float64{1200, 2000, 3000, 4500},
	}
}

// ClassifyPhoneme decides a coarse phoneme from frame energy, spectral
// centroid and zero-crossing rate. Energy below the silence floor always
// wins. A low zero-crossing rate selects a murmur when the frame is quiet,
// otherwise a vowel by centroid band; anything else selects a weak
// fricative when quiet, otherwise a consonant by centroid band.
func ClassifyPhoneme(energy, centroid, zcr float64, th Thresholds) Phoneme {
	if energy < th.SilenceEnergy {
		return PhonemeSilence
	}

	if zcr < th.VowelZCR {
		if energy < th.MurmurEnergy {
			if centroid < th.MurmurBand {
				return PhonemeN
			}
			return PhonemeR
		}

		switch {
		case centroid < th.VowelBands[0]:
			return PhonemeUW
		case centroid < th.VowelBands[1]:
			return PhonemeOW
		case centroid < th.VowelBands[2]:
			return PhonemeAA
		case centroid < th.VowelBands[3]:
			return PhonemeEH
		default:
			return PhonemeIY
		}
	}

	if energy < th.FricativeEnergy {
		if centroid < th.FricativeBand {
			return PhonemeF
		}
		return PhonemeTH
	}

	switch {
	case centroid < th.ConsonantBands[0]:
		return PhonemeB
	case centroid < th.ConsonantBands[1]:
		return PhonemeD
	case centroid < th.ConsonantBands[2]:
		return PhonemeK
	case centroid < th.ConsonantBands[3]:
		return PhonemeCH
	default:
		return PhonemeS
	}
}
