// Package analysis implements the spectral feature extractor (C7) and the
// concurrency orchestrator that runs multiple file analyses at once (§5).
package analysis

import (
	"math"

	"github.com/austinkregel/local-media/musicd/internal/audio"
)

const (
	melFilterCount = 26
	sampleRate11k  = 11025
)

// SpectralFeatures is the full feature vector C7 derives from the modulus
// of one file's average complex spectrum.
type SpectralFeatures struct {
	Centroid  float64 `json:"spectralCentroid"`
	Spread    float64 `json:"spectralSpread"`
	Skewness  float64 `json:"spectralSkewness"`
	Kurtosis  float64 `json:"spectralKurtosis"`
	Flatness  float64 `json:"spectralFlatness"`
	Slope     float64 `json:"spectralSlope"`
	Rolloff   float64 `json:"spectralRolloff"`

	Chroma []float64 `json:"chroma"`

	BarkLoudnessTotal    float64   `json:"barkLoudnessTotal"`
	BarkLoudnessSpecific []float64 `json:"barkLoudnessSpecific"`
	PerceptualSpread     float64   `json:"perceptualSpread"`
	PerceptualSharpness  float64   `json:"perceptualSharpness"`

	MFCC []float64 `json:"mfcc"`
}

// ExtractSpectralFeatures derives the full C7 feature vector from a
// description's average complex spectrum. windowSize is the FFT window
// size the spectrum was computed from (needed to convert bin indices back
// to Hz for rolloff and the chroma/Bark filter banks).
func ExtractSpectralFeatures(desc *audio.AudioDescription, windowSize int) SpectralFeatures {
	amp := magnitudeSpectrum(desc.AverageSpectrum, windowSize)
	sampleRate := desc.SampleRate
	if sampleRate == 0 {
		sampleRate = sampleRate11k
	}

	chromaBank := newChromaFilterBank(len(amp), sampleRate, windowSize)
	bark := ComputeBarkLoudness(amp, sampleRate, windowSize)

	f := SpectralFeatures{
		Centroid:             SpectralCentroid(amp),
		Spread:               SpectralSpread(amp),
		Skewness:             SpectralSkewness(amp),
		Kurtosis:             SpectralKurtosis(amp),
		Flatness:             SpectralFlatness(amp),
		Slope:                SpectralSlope(amp),
		Rolloff:              SpectralRolloff(amp, sampleRate, windowSize),
		Chroma:               chromaBank.Chroma(amp),
		BarkLoudnessTotal:    bark.Total,
		BarkLoudnessSpecific: bark.Specific,
		PerceptualSpread:     bark.PerceptualSpread(),
		PerceptualSharpness:  bark.PerceptualSharpness(),
		MFCC:                 MFCC(amp, sampleRate, melFilterCount, mfccCoefficients),
	}
	sanitize(&f)
	return f
}

// magnitudeSpectrum takes the modulus of each of the first windowSize/2+1
// bins of avg (the positive-frequency half a real input produces); the rest
// of avg is the conjugate-symmetric half and carries no extra information.
// This is deliberately done here, after averaging, rather than before: the
// magnitude of an averaged complex spectrum differs from the average of
// per-hop magnitudes whenever phase varies hop-to-hop.
func magnitudeSpectrum(avg audio.Spectrum, windowSize int) []float64 {
	n := windowSize/2 + 1
	if n > len(avg) {
		n = len(avg)
	}
	amp := make([]float64, n)
	for i := 0; i < n; i++ {
		amp[i] = math.Hypot(real(avg[i]), imag(avg[i]))
	}
	return amp
}

// sanitize replaces any NaN or Inf produced by a degenerate (e.g. silent)
// spectrum with zero, per the normalisation rule that a feature vector
// must always be well-formed JSON.
func sanitize(f *SpectralFeatures) {
	f.Centroid = clean(f.Centroid)
	f.Spread = clean(f.Spread)
	f.Skewness = clean(f.Skewness)
	f.Kurtosis = clean(f.Kurtosis)
	f.Flatness = clean(f.Flatness)
	f.Slope = clean(f.Slope)
	f.Rolloff = clean(f.Rolloff)
	f.BarkLoudnessTotal = clean(f.BarkLoudnessTotal)
	f.PerceptualSpread = clean(f.PerceptualSpread)
	f.PerceptualSharpness = clean(f.PerceptualSharpness)
	for i := range f.Chroma {
		f.Chroma[i] = clean(f.Chroma[i])
	}
	for i := range f.BarkLoudnessSpecific {
		f.BarkLoudnessSpecific[i] = clean(f.BarkLoudnessSpecific[i])
	}
	for i := range f.MFCC {
		f.MFCC[i] = clean(f.MFCC[i])
	}
}

func clean(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
