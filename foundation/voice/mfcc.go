package voice

import "math"

const logFloor = 1e-10

func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

// MelBank is a triangular mel filterbank over magnitude spectrum bins,
// paired with the cosine transform that turns its log energies into
// cepstral coefficients.
type MelBank struct {
	filterCount int
	coeffCount  int
	filters     [][]float64
}

func NewMelBank(filterCount, coeffCount, fftSize, sampleRate int) (*MelBank, error) {
	if filterCount <= 0 {
		return nil, &UnsupportedConfigError{Setting: "melFilterCount", Reason: "must be positive"}
	}
	if coeffCount <= 0 {
		return nil, &UnsupportedConfigError{Setting: "mfccCoefficientCount", Reason: "must be positive"}
	}
	if coeffCount > filterCount {
		return nil, &UnsupportedConfigError{Setting: "mfccCoefficientCount", Reason: "must not exceed melFilterCount"}
	}
	if fftSize <= 0 || fftSize&(fftSize-1) != 0 {
		return nil, &UnsupportedConfigError{Setting: "fftSize", Reason: "must be a power of two"}
	}
	if sampleRate <= 0 {
		return nil, &UnsupportedConfigError{Setting: "sampleRate", Reason: "must be positive"}
	}

	bins := fftSize/2 + 1
	nyquist := float64(sampleRate) / 2

	// Filter edges evenly spaced on the mel scale between 0 Hz and Nyquist,
	// mapped back onto spectrum bins.
	melLow := hzToMel(0)
	melHigh := hzToMel(nyquist)
	melStep := (melHigh - melLow) / float64(filterCount+1)

	edges := make([]int, filterCount+2)
	for i := range edges {
		hz := melToHz(melLow + float64(i)*melStep)
		edges[i] = int(float64(fftSize+1) * hz / float64(sampleRate))
		if edges[i] > bins-1 {
			edges[i] = bins - 1
		}
	}

	filters := make([][]float64, filterCount)
	for m := 0; m < filterCount; m++ {
		filter := make([]float64, bins)
		left, center, right := edges[m], edges[m+1], edges[m+2]

		for k := left; k < center; k++ {
			if center != left {
				filter[k] = float64(k-left) / float64(center-left)
			}
		}
		for k := center; k <= right; k++ {
			if right != center {
				filter[k] = float64(right-k) / float64(right-center)
			}
		}

		filters[m] = filter
	}

	return &MelBank{
		filterCount: filterCount,
		coeffCount:  coeffCount,
		filters:     filters,
	}, nil
}

func (m *MelBank) FilterCount() int {
	return m.filterCount
}

func (m *MelBank) CoeffCount() int {
	return m.coeffCount
}

// LogEnergies applies the filterbank to a magnitude spectrum and returns the
// per-filter log energies, floored so silence never produces -Inf.
func (m *MelBank) LogEnergies(mags []float64) ([]float64, error) {
	if len(mags) != len(m.filters[0]) {
		return nil, &InvalidInputError{Field: "magnitudes", Reason: "length does not match filterbank"}
	}

	logE := make([]float64, m.filterCount)
	for i, filter := range m.filters {
		var e float64
		for k, w := range filter {
			if w != 0 {
				e += w * mags[k]
			}
		}
		logE[i] = math.Log(math.Max(e, logFloor))
	}

	return logE, nil
}

// MFCC returns the first CoeffCount() cepstral coefficients of the magnitude
// spectrum: filterbank log energies followed by a DCT-II.
func (m *MelBank) MFCC(mags []float64) ([]float64, error) {
	logE, err := m.LogEnergies(mags)
	if err != nil {
		return nil, err
	}

	coeffs := make([]float64, m.coeffCount)
	n := float64(m.filterCount)
	for k := 0; k < m.coeffCount; k++ {
		var sum float64
		for i, e := range logE {
			sum += e * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/n)
		}
		coeffs[k] = sum
	}

	return coeffs, nil
}
