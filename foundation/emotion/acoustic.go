package emotion

import (
	"context"
	"math"

	"github.com/superfeelapi/goAvatar/foundation/voice"
)

// Prosody frame lengths. Pitch statistics run on short frames, tempo on
// longer ones so syllable-scale energy movement is visible.
const (
	pitchFrameMs = 25
	tempoFrameMs = 100
)

// Audio rule thresholds. Energies are RMS of normalized samples, pitch
// values in Hz, jitter and shimmer relative.
const (
	audioHighEnergy     = 0.15
	audioLowEnergy      = 0.05
	audioHighPitch      = 200
	audioLowPitch       = 140
	audioHighPitchVar   = 40
	audioLowPitchVar    = 15
	audioBrightCentroid = 2500
	audioTremorJitter   = 0.02
	audioTremorShimmer  = 0.25
)

// AcousticExtractor derives prosodic emotion evidence from a PCM buffer:
// pitch statistics over 25 ms frames, tempo movement over 100 ms frames and
// an averaged spectral profile. It is pure and safe for concurrent use.
type AcousticExtractor struct {
	sampleRate int
	pitchHop   int
	tempoHop   int
	pitch      *voice.PitchTracker
	engine     *voice.SpectralEngine
	features   *voice.FeatureExtractor
}

func NewAcousticExtractor(sampleRate int) (*AcousticExtractor, error) {
	if sampleRate <= 0 {
		return nil, &voice.InvalidInputError{Field: "sampleRate", Reason: "must be positive"}
	}

	pitchHop := sampleRate * pitchFrameMs / 1000
	tempoHop := sampleRate * tempoFrameMs / 1000

	pitch, err := voice.NewPitchTracker(sampleRate)
	if err != nil {
		return nil, err
	}

	engine, err := voice.NewSpectralEngine(pitchHop, sampleRate)
	if err != nil {
		return nil, err
	}

	features, err := voice.NewFeatureExtractor(engine, 26, 13)
	if err != nil {
		return nil, err
	}

	return &AcousticExtractor{
		sampleRate: sampleRate,
		pitchHop:   pitchHop,
		tempoHop:   tempoHop,
		pitch:      pitch,
		engine:     engine,
		features:   features,
	}, nil
}

// Extract computes the acoustic feature record for one buffer. Unvoiced
// frames are excluded from the pitch statistics; a fully unvoiced buffer
// reports zero pitch, variance and jitter. Cancelling ctx abandons the
// buffer mid-way with no partial result.
func (x *AcousticExtractor) Extract(ctx context.Context, samples []float64) (AcousticFeatures, error) {
	if len(samples) == 0 {
		return AcousticFeatures{}, &voice.InvalidInputError{Field: "samples", Reason: "empty buffer"}
	}

	frames := frameStarts(len(samples), x.pitchHop)

	var (
		frameF0s  = make([]float64, 0, len(frames))
		frameAmps = make([]float64, 0, len(frames))
		voicedF0s []float64
		centroid  float64
		bands     []float64
	)

	for _, start := range frames {
		if err := ctx.Err(); err != nil {
			return AcousticFeatures{}, err
		}

		end := start + x.pitchHop
		if end > len(samples) {
			end = len(samples)
		}
		frame := samples[start:end]

		f0 := x.pitch.F0(frame)
		frameF0s = append(frameF0s, f0)
		if f0 > 0 {
			voicedF0s = append(voicedF0s, f0)
		}
		frameAmps = append(frameAmps, voice.Energy(frame))

		mags, err := x.engine.Magnitudes(frame)
		if err != nil {
			return AcousticFeatures{}, err
		}

		centroid += x.features.SpectralCentroid(mags)
		fb := x.features.BandEnergies(mags)
		if bands == nil {
			bands = fb
		} else {
			for i, b := range fb {
				bands[i] += b
			}
		}
	}

	n := float64(len(frames))
	centroid /= n
	for i := range bands {
		bands[i] /= n
	}

	var tempoEnergies []float64
	for _, start := range frameStarts(len(samples), x.tempoHop) {
		end := start + x.tempoHop
		if end > len(samples) {
			end = len(samples)
		}
		tempoEnergies = append(tempoEnergies, voice.Energy(samples[start:end]))
	}

	return AcousticFeatures{
		Pitch:            mean(voicedF0s),
		PitchVariance:    stddev(voicedF0s),
		Energy:           voice.Energy(samples),
		Tempo:            meanAbsDelta(tempoEnergies),
		SpectralCentroid: centroid,
		Jitter:           relativeDelta(voicedF0s),
		Shimmer:          relativeDelta(frameAmps),
		BandEnergies:     bands,
	}, nil
}

// ClassifyAudio scores emotion candidates from acoustic features. Unvoiced
// buffers trip no rule, so silence classifies as the neutral fallback.
func ClassifyAudio(f AcousticFeatures, minimumConfidence float64) []Candidate {
	var cands []Candidate
	voiced := f.Pitch > 0

	if voiced && f.Energy >= audioHighEnergy && f.PitchVariance >= audioHighPitchVar {
		intensity := High
		if f.Energy >= 2*audioHighEnergy {
			intensity = VeryHigh
		}
		cands = append(cands, Candidate{
			Emotion:    Excited,
			Intensity:  intensity,
			Confidence: math.Min(0.8, 0.6+f.PitchVariance/400),
			Source:     SourceAudio,
		})
	}

	if voiced && f.Energy >= audioHighEnergy && f.SpectralCentroid >= audioBrightCentroid {
		cands = append(cands, Candidate{
			Emotion:    Angry,
			Intensity:  High,
			Confidence: 0.55,
			Source:     SourceAudio,
		})
	}

	if voiced && f.Energy >= audioHighEnergy && f.Pitch >= audioHighPitch && f.PitchVariance < audioHighPitchVar {
		cands = append(cands, Candidate{
			Emotion:    Happy,
			Intensity:  Moderate,
			Confidence: 0.5,
			Source:     SourceAudio,
		})
	}

	if voiced && f.Energy < audioLowEnergy && f.Pitch < audioLowPitch {
		cands = append(cands, Candidate{
			Emotion:    Sad,
			Intensity:  Moderate,
			Confidence: 0.55,
			Source:     SourceAudio,
		})
	}

	if voiced && (f.Jitter >= audioTremorJitter || f.Shimmer >= audioTremorShimmer) {
		cands = append(cands, Candidate{
			Emotion:    Anxious,
			Intensity:  Moderate,
			Confidence: 0.5,
			Source:     SourceAudio,
		})
	}

	if voiced && f.Energy >= audioLowEnergy && f.Energy < audioHighEnergy &&
		f.PitchVariance < audioLowPitchVar && f.Jitter < audioTremorJitter {
		cands = append(cands, Candidate{
			Emotion:    Calm,
			Intensity:  Low,
			Confidence: 0.45,
			Source:     SourceAudio,
		})
	}

	return surviving(cands, minimumConfidence, SourceAudio)
}

// =================================================================================================================

// frameStarts returns the start offsets of non-overlapping hop-sized frames,
// falling back to one whole-buffer frame when the buffer is shorter than a
// single hop.
func frameStarts(n, hop int) []int {
	if n < hop {
		return []int{0}
	}

	starts := make([]int, 0, n/hop)
	for start := 0; start+hop <= n; start += hop {
		starts = append(starts, start)
	}
	return starts
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}

	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func stddev(vs []float64) float64 {
	if len(vs) < 2 {
		return 0
	}

	m := mean(vs)
	var sum float64
	for _, v := range vs {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(vs)))
}

func meanAbsDelta(vs []float64) float64 {
	if len(vs) < 2 {
		return 0
	}

	var sum float64
	for i := 1; i < len(vs); i++ {
		sum += math.Abs(vs[i] - vs[i-1])
	}
	return sum / float64(len(vs)-1)
}

// relativeDelta is the mean absolute consecutive difference normalized by
// the mean value, the frame-level analogue of cycle-to-cycle jitter and
// shimmer.
func relativeDelta(vs []float64) float64 {
	m := mean(vs)
	if m == 0 {
		return 0
	}
	return meanAbsDelta(vs) / m
}
