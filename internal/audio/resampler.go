package audio

import (
	"fmt"

	goresampler "github.com/tphakala/go-audio-resampler"
)

// analysisSampleRate is the fixed rate every decoded stream is resampled to
// before windowing and feature extraction.
const analysisSampleRate = 11025

// Resampler adapts go-audio-resampler's fixed-ratio resampler to the
// fixed-input/fixed-output contract the analysis pipeline needs: callers
// must always submit exactly InputFramesMax samples and get back however
// many output-rate samples that quantum produces.
type Resampler struct {
	inner       *goresampler.Resampler
	inputFrames int
}

// NewResampler builds a mono resampler from sourceRate to the fixed
// analysis rate (11025 Hz).
func NewResampler(sourceRate int) (*Resampler, error) {
	if sourceRate <= 0 {
		return nil, fmt.Errorf("audio: invalid source sample rate %d", sourceRate)
	}
	ratio := float64(analysisSampleRate) / float64(sourceRate)
	inner, err := goresampler.New(ratio, 1)
	if err != nil {
		return nil, fmt.Errorf("audio: building resampler: %w", err)
	}
	return &Resampler{
		inner:       inner,
		inputFrames: inner.InputFrameSize(),
	}, nil
}

// InputFramesMax is the exact number of source-rate samples Process expects
// per call.
func (r *Resampler) InputFramesMax() int {
	return r.inputFrames
}

// OutputSampleRate is the fixed analysis rate all output is resampled to.
func (r *Resampler) OutputSampleRate() int {
	return analysisSampleRate
}

// Process resamples exactly InputFramesMax() mono samples to the analysis
// rate. The caller is responsible for zero-padding short final quanta to
// InputFramesMax samples before calling.
func (r *Resampler) Process(input []float32) ([]float32, error) {
	if len(input) != r.inputFrames {
		return nil, fmt.Errorf("audio: resampler expects %d input frames, got %d", r.inputFrames, len(input))
	}
	in := make([]float64, len(input))
	for i, s := range input {
		in[i] = float64(s)
	}
	out, err := r.inner.Process([][]float64{in})
	if err != nil {
		return nil, fmt.Errorf("audio: resample: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	result := make([]float32, len(out[0]))
	for i, s := range out[0] {
		result[i] = float32(s)
	}
	return result, nil
}
