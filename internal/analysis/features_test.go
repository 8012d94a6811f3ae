package analysis

import (
	"math"
	"testing"

	"github.com/austinkregel/local-media/musicd/internal/audio"
)

func TestExtractSpectralFeaturesOnSilenceHasNoNaNOrInf(t *testing.T) {
	desc := &audio.AudioDescription{
		SampleRate:      11025,
		AverageSpectrum: make(audio.Spectrum, 1024),
	}
	f := ExtractSpectralFeatures(desc, 1024)

	check := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s = %v, want a finite sanitized value on a silent spectrum", name, v)
		}
	}
	check("Centroid", f.Centroid)
	check("Spread", f.Spread)
	check("Skewness", f.Skewness)
	check("Kurtosis", f.Kurtosis)
	check("Flatness", f.Flatness)
	check("Slope", f.Slope)
	check("Rolloff", f.Rolloff)
	check("BarkLoudnessTotal", f.BarkLoudnessTotal)
	check("PerceptualSpread", f.PerceptualSpread)
	check("PerceptualSharpness", f.PerceptualSharpness)
	for i, v := range f.Chroma {
		check("Chroma["+string(rune('0'+i))+"]", v)
	}
}

func TestExtractSpectralFeaturesDefaultsSampleRateWhenZero(t *testing.T) {
	desc := &audio.AudioDescription{
		SampleRate:      0,
		AverageSpectrum: make(audio.Spectrum, 1024),
	}
	// Should not panic despite the zero sample rate, and should behave as
	// though sampleRate11k was used.
	f := ExtractSpectralFeatures(desc, 1024)
	if len(f.Chroma) != chromaBins {
		t.Errorf("len(Chroma) = %d, want %d", len(f.Chroma), chromaBins)
	}
}

func TestMagnitudeSpectrumTakesModulusOfPositiveFrequencyHalf(t *testing.T) {
	avg := audio.Spectrum{
		complex(3, 4), complex(0, 5), complex(1, 0), complex(0, 0),
		complex(9, 9), // conjugate-symmetric half; must be dropped
	}
	amp := magnitudeSpectrum(avg, 4) // windowSize/2+1 == 3
	want := []float64{5, 5, 1}
	if len(amp) != len(want) {
		t.Fatalf("len(amp) = %d, want %d", len(amp), len(want))
	}
	for i, v := range want {
		if amp[i] != v {
			t.Errorf("amp[%d] = %v, want %v", i, amp[i], v)
		}
	}
}

func TestCleanReplacesNaNAndInf(t *testing.T) {
	if got := clean(math.NaN()); got != 0 {
		t.Errorf("clean(NaN) = %v, want 0", got)
	}
	if got := clean(math.Inf(1)); got != 0 {
		t.Errorf("clean(+Inf) = %v, want 0", got)
	}
	if got := clean(math.Inf(-1)); got != 0 {
		t.Errorf("clean(-Inf) = %v, want 0", got)
	}
	if got := clean(3.5); got != 3.5 {
		t.Errorf("clean(3.5) = %v, want 3.5", got)
	}
}
