// Package voice turns raw PCM buffers into acoustic feature records:
// fundamental frequency, spectral shape, cepstral coefficients and a
// voicing score. All analysis is pure computation with no I/O; silence is
// a valid input, never an error.
package voice

import (
	"context"
	"math"
)

// Config carries the tunable analysis settings.
type Config struct {
	SampleRate           int
	WindowSize           int
	HopSize              int
	MelFilterCount       int
	MFCCCoefficientCount int
}

// VoiceCharacteristics is the acoustic profile of one buffer or frame.
type VoiceCharacteristics struct {
	F0                float64   `json:"f0"`
	Pitch             float64   `json:"pitch"`
	Formants          []float64 `json:"formants"`
	SpectralCentroid  float64   `json:"spectral_centroid"`
	SpectralRolloff   float64   `json:"spectral_rolloff"`
	ZeroCrossingRate  float64   `json:"zero_crossing_rate"`
	MFCC              []float64 `json:"mfcc"`
	Energy            float64   `json:"energy"`
	VoicedProbability float64   `json:"voiced_probability"`
}

// FrameCharacteristics is one frame's profile inside a buffer, positioned
// by its start offset in samples.
type FrameCharacteristics struct {
	StartOffset int     `json:"start_offset"`
	DurationMs  float64 `json:"duration_ms"`
	VoiceCharacteristics
}

// Characterizer runs the full per-frame analysis chain: framing, spectrum,
// pitch and feature extraction. It is safe for concurrent use as all its
// methods are pure.
type Characterizer struct {
	cfg     Config
	framer  *Framer
	engine  *SpectralEngine
	pitch   *PitchTracker
	extract *FeatureExtractor
}

func NewCharacterizer(cfg Config) (*Characterizer, error) {
	framer, err := NewFramer(cfg.WindowSize, cfg.HopSize)
	if err != nil {
		return nil, err
	}

	engine, err := NewSpectralEngine(cfg.WindowSize, cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	pitch, err := NewPitchTracker(cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	extract, err := NewFeatureExtractor(engine, cfg.MelFilterCount, cfg.MFCCCoefficientCount)
	if err != nil {
		return nil, err
	}

	return &Characterizer{
		cfg:     cfg,
		framer:  framer,
		engine:  engine,
		pitch:   pitch,
		extract: extract,
	}, nil
}

func (c *Characterizer) Config() Config {
	return c.cfg
}

// AnalyzeFrame computes the characteristics of a single frame.
func (c *Characterizer) AnalyzeFrame(samples []float64) (VoiceCharacteristics, error) {
	if len(samples) == 0 {
		return VoiceCharacteristics{}, &InvalidInputError{Field: "samples", Reason: "empty frame"}
	}

	mags, err := c.engine.Magnitudes(samples)
	if err != nil {
		return VoiceCharacteristics{}, err
	}

	return c.characteristics(samples, mags)
}

// AnalyzeBuffer frames the buffer and aggregates the per-frame results into
// one record: time-domain features over the whole buffer, spectral features
// over the average magnitude spectrum, F0 from the whole buffer.
// A non-empty buffer shorter than one window is analyzed as a single
// zero-padded frame. Cancelling ctx abandons the analysis mid-buffer; no
// partial result is returned.
func (c *Characterizer) AnalyzeBuffer(ctx context.Context, samples []float64) (VoiceCharacteristics, error) {
	frames, err := c.framer.Frames(samples, c.cfg.SampleRate)
	if err != nil {
		return VoiceCharacteristics{}, err
	}
	if len(frames) == 0 {
		frames = []Frame{{Samples: samples, SampleRate: c.cfg.SampleRate}}
	}

	avgMags := make([]float64, c.engine.FFTSize()/2+1)

	for _, frame := range frames {
		if err := ctx.Err(); err != nil {
			return VoiceCharacteristics{}, err
		}

		mags, err := c.engine.Magnitudes(frame.Samples)
		if err != nil {
			return VoiceCharacteristics{}, err
		}
		for i, m := range mags {
			avgMags[i] += m
		}
	}

	for i := range avgMags {
		avgMags[i] /= float64(len(frames))
	}

	// One autocorrelation over the whole buffer is steadier than averaging
	// per-frame estimates, whose long lags see too few samples.
	f0 := c.pitch.F0(samples)
	energy := Energy(samples)
	zcr := ZeroCrossingRate(samples)

	mfcc, err := c.extract.MFCC(avgMags)
	if err != nil {
		return VoiceCharacteristics{}, err
	}

	vc := VoiceCharacteristics{
		F0:                f0,
		Pitch:             Semitone(f0),
		Formants:          c.extract.Formants(avgMags),
		SpectralCentroid:  c.extract.SpectralCentroid(avgMags),
		SpectralRolloff:   c.extract.SpectralRolloff(avgMags),
		ZeroCrossingRate:  zcr,
		MFCC:              mfcc,
		Energy:            energy,
		VoicedProbability: VoicedProbability(f0, energy, zcr),
	}

	if err := vc.validate(); err != nil {
		return VoiceCharacteristics{}, err
	}

	return vc, nil
}

// AnalyzeFrames computes one record per analysis frame, for callers that
// need the time-aligned stream rather than the buffer aggregate. The same
// cancellation contract as AnalyzeBuffer applies.
func (c *Characterizer) AnalyzeFrames(ctx context.Context, samples []float64) ([]FrameCharacteristics, error) {
	frames, err := c.framer.Frames(samples, c.cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		frames = []Frame{{Samples: samples, SampleRate: c.cfg.SampleRate}}
	}

	hopMs := float64(c.cfg.HopSize) / float64(c.cfg.SampleRate) * 1000

	records := make([]FrameCharacteristics, 0, len(frames))
	for _, frame := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mags, err := c.engine.Magnitudes(frame.Samples)
		if err != nil {
			return nil, err
		}

		vc, err := c.characteristics(frame.Samples, mags)
		if err != nil {
			return nil, err
		}

		durationMs := hopMs
		if len(frame.Samples) < c.cfg.WindowSize {
			durationMs = float64(len(frame.Samples)) / float64(c.cfg.SampleRate) * 1000
		}

		records = append(records, FrameCharacteristics{
			StartOffset:          frame.StartOffset,
			DurationMs:           durationMs,
			VoiceCharacteristics: vc,
		})
	}

	return records, nil
}

func (c *Characterizer) characteristics(samples, mags []float64) (VoiceCharacteristics, error) {
	f0 := c.pitch.F0(samples)
	energy := Energy(samples)
	zcr := ZeroCrossingRate(samples)

	mfcc, err := c.extract.MFCC(mags)
	if err != nil {
		return VoiceCharacteristics{}, err
	}

	vc := VoiceCharacteristics{
		F0:                f0,
		Pitch:             Semitone(f0),
		Formants:          c.extract.Formants(mags),
		SpectralCentroid:  c.extract.SpectralCentroid(mags),
		SpectralRolloff:   c.extract.SpectralRolloff(mags),
		ZeroCrossingRate:  zcr,
		MFCC:              mfcc,
		Energy:            energy,
		VoicedProbability: VoicedProbability(f0, energy, zcr),
	}

	if err := vc.validate(); err != nil {
		return VoiceCharacteristics{}, err
	}

	return vc, nil
}

// validate rejects non-finite fields so a malformed buffer surfaces as a
// typed error instead of NaN leaking into output.
func (vc VoiceCharacteristics) validate() error {
	fields := []float64{
		vc.F0, vc.Pitch, vc.SpectralCentroid, vc.SpectralRolloff,
		vc.ZeroCrossingRate, vc.Energy, vc.VoicedProbability,
	}
	fields = append(fields, vc.Formants...)
	fields = append(fields, vc.MFCC...)

	for _, f := range fields {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return &ComputationError{Stage: "characteristics", Reason: "non-finite value"}
		}
	}

	return nil
}
