package sampler

import "io"

// Source streams resampled mono samples, one packet at a time, at a fixed
// sample rate. Both samplers treat io.EOF from NextSamples as end of
// stream.
type Source interface {
	SampleRate() int
	NextSamples() ([]float64, error)
}

// drain pulls one packet from src, returning io.EOF exactly as src does.
func drain(src Source) ([]float64, error) {
	samples, err := src.NextSamples()
	if err != nil && err != io.EOF {
		return nil, err
	}
	return samples, err
}
