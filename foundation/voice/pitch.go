package voice

import "math"

// Pitch search bounds in Hz. Lags outside this range are never candidates,
// which keeps the tracker off harmonics below 50 Hz and above 800 Hz.
const (
	minPitchHz = 50
	maxPitchHz = 800

	// Integer multiples of the true period correlate within float jitter
	// of the maximum, so lags this close to the best mean product count as
	// ties and the shortest one wins.
	pitchTolerance = 0.995
)

// PitchTracker estimates fundamental frequency per frame by normalized
// autocorrelation over the lag range sampleRate/800 to sampleRate/50.
type PitchTracker struct {
	sampleRate int
	minLag     int
	maxLag     int
}

func NewPitchTracker(sampleRate int) (*PitchTracker, error) {
	if sampleRate <= 0 {
		return nil, &InvalidInputError{Field: "sampleRate", Reason: "must be positive"}
	}

	minLag := sampleRate / maxPitchHz
	if minLag < 1 {
		minLag = 1
	}

	return &PitchTracker{
		sampleRate: sampleRate,
		minLag:     minLag,
		maxLag:     sampleRate / minPitchHz,
	}, nil
}

// F0 returns the estimated fundamental frequency in Hz. Lags are searched
// up to half the input length. Silence or input where no lag yields a
// positive correlation reports 0, which is not an error.
func (p *PitchTracker) F0(samples []float64) float64 {
	maxLag := p.maxLag
	if half := len(samples) / 2; maxLag > half {
		maxLag = half
	}
	if maxLag < p.minLag {
		return 0
	}

	corr := make([]float64, maxLag+1)
	var best float64

	for lag := p.minLag; lag <= maxLag; lag++ {
		var sum float64
		for i := 0; i+lag < len(samples); i++ {
			sum += samples[i] * samples[i+lag]
		}

		corr[lag] = sum / float64(len(samples)-lag)
		if corr[lag] > best {
			best = corr[lag]
		}
	}

	if best <= 0 {
		return 0
	}

	for lag := p.minLag; lag <= maxLag; lag++ {
		if corr[lag] >= pitchTolerance*best {
			return float64(p.sampleRate) / float64(lag)
		}
	}

	return 0
}

// Semitone converts a fundamental frequency to the MIDI-style pitch value
// 69 + 12*log2(f0/440). Unvoiced input (f0 <= 0) reports 0.
func Semitone(f0 float64) float64 {
	if f0 <= 0 {
		return 0
	}
	return 69 + 12*math.Log2(f0/440)
}
