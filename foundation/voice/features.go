package voice

import "math"

const (
	// Voicing heuristic. A frame only counts as voiced evidence when it
	// carries energy, so silence always scores zero.
	voicedF0Low     = 80
	voicedF0High    = 400
	voicedEnergyMin = 0.01
	voicedZCRMax    = 0.25

	f0RangeWeight   = 0.4
	energyWeight    = 0.3
	lowZCRWeight    = 0.3
	rolloffFraction = 0.85
	formantLowHz    = 200
	formantHighHz   = 4000
	maxFormants     = 3
)

// bandEdges delimit the seven-band energy decomposition in Hz:
// sub-bass, bass, low-mid, mid, upper-mid, presence, brilliance.
var bandEdges = [8]float64{20, 60, 250, 500, 2000, 4000, 6000, 20000}

// Energy returns the RMS of the frame samples.
func Energy(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		sum += s * s
	}

	return math.Sqrt(sum / float64(len(samples)))
}

// ZeroCrossingRate returns the sign-change count divided by N-1, in [0,1].
func ZeroCrossingRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}

	var crossings int
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			crossings++
		}
	}

	return float64(crossings) / float64(len(samples)-1)
}

// VoicedProbability scores how likely the frame carries voiced speech.
// Each satisfied condition adds a fixed weight; the sum is clamped to [0,1].
func VoicedProbability(f0, energy, zcr float64) float64 {
	var p float64

	if f0 >= voicedF0Low && f0 <= voicedF0High {
		p += f0RangeWeight
	}
	if energy >= voicedEnergyMin {
		p += energyWeight
	}
	if zcr <= voicedZCRMax && energy >= voicedEnergyMin {
		p += lowZCRWeight
	}

	return clamp01(p)
}

// FeatureExtractor derives spectral shape features from magnitude spectra
// produced by one SpectralEngine.
type FeatureExtractor struct {
	engine *SpectralEngine
	mel    *MelBank
}

func NewFeatureExtractor(engine *SpectralEngine, melFilterCount, mfccCoeffCount int) (*FeatureExtractor, error) {
	mel, err := NewMelBank(melFilterCount, mfccCoeffCount, engine.FFTSize(), engine.SampleRate())
	if err != nil {
		return nil, err
	}

	return &FeatureExtractor{
		engine: engine,
		mel:    mel,
	}, nil
}

// SpectralCentroid returns the magnitude-weighted mean frequency in Hz,
// 0 when the spectrum carries no magnitude.
func (x *FeatureExtractor) SpectralCentroid(mags []float64) float64 {
	var weighted, total float64
	binHz := x.engine.BinHz()

	for i, m := range mags {
		weighted += float64(i) * binHz * m
		total += m
	}

	if total == 0 {
		return 0
	}

	return weighted / total
}

// SpectralRolloff returns the frequency in Hz below which 85% of the
// cumulative squared-magnitude energy lies. An empty spectrum reports 0 and
// the result never exceeds Nyquist.
func (x *FeatureExtractor) SpectralRolloff(mags []float64) float64 {
	var total float64
	for _, m := range mags {
		total += m * m
	}
	if total == 0 {
		return 0
	}

	threshold := rolloffFraction * total
	binHz := x.engine.BinHz()

	var cum float64
	for i, m := range mags {
		cum += m * m
		if cum >= threshold {
			return float64(i) * binHz
		}
	}

	return x.engine.Nyquist()
}

// Formants returns up to three local maxima of the magnitude spectrum
// between 200 and 4000 Hz, in ascending frequency order.
func (x *FeatureExtractor) Formants(mags []float64) []float64 {
	binHz := x.engine.BinHz()
	formants := make([]float64, 0, maxFormants)

	for i := 1; i < len(mags)-1; i++ {
		freq := float64(i) * binHz
		if freq < formantLowHz {
			continue
		}
		if freq > formantHighHz {
			break
		}

		if mags[i] > mags[i-1] && mags[i] > mags[i+1] {
			formants = append(formants, freq)
			if len(formants) == maxFormants {
				break
			}
		}
	}

	return formants
}

// MFCC returns the cepstral coefficients of the magnitude spectrum. The
// result length always equals the configured coefficient count.
func (x *FeatureExtractor) MFCC(mags []float64) ([]float64, error) {
	return x.mel.MFCC(mags)
}

// BandEnergies sums squared magnitudes into the seven-band decomposition.
func (x *FeatureExtractor) BandEnergies(mags []float64) []float64 {
	binHz := x.engine.BinHz()
	bands := make([]float64, len(bandEdges)-1)

	for i, m := range mags {
		freq := float64(i) * binHz
		for b := 0; b < len(bands); b++ {
			if freq >= bandEdges[b] && freq < bandEdges[b+1] {
				bands[b] += m * m
				break
			}
		}
	}

	return bands
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
