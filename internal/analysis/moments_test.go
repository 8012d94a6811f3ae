package analysis

import "testing"

func TestSpectralCentroidOfSingleBin(t *testing.T) {
	// All energy in bin 5: centroid should be exactly 5.
	amp := make([]float64, 10)
	amp[5] = 1.0
	if got := SpectralCentroid(amp); got != 5 {
		t.Errorf("SpectralCentroid = %v, want 5", got)
	}
}

func TestSpectralSpreadOfSingleBinIsZero(t *testing.T) {
	amp := make([]float64, 10)
	amp[5] = 1.0
	if got := SpectralSpread(amp); got != 0 {
		t.Errorf("SpectralSpread = %v, want 0", got)
	}
}

func TestSpectralFlatnessOfFlatSpectrumIsOne(t *testing.T) {
	amp := []float64{1, 1, 1, 1}
	if got := SpectralFlatness(amp); got < 0.99 || got > 1.01 {
		t.Errorf("SpectralFlatness = %v, want ~1", got)
	}
}

func TestSpectralFlatnessOfPeakyIsLow(t *testing.T) {
	amp := []float64{0.001, 0.001, 1.0, 0.001}
	if got := SpectralFlatness(amp); got > 0.5 {
		t.Errorf("SpectralFlatness = %v, want < 0.5 for peaky spectrum", got)
	}
}

func TestSpectralRolloffOfZeroSpectrum(t *testing.T) {
	amp := make([]float64, 10)
	if got := SpectralRolloff(amp, 11025, 1024); got != 0 {
		t.Errorf("SpectralRolloff on zero spectrum = %v, want 0", got)
	}
}

func TestMuOfEmptySpectrumIsZero(t *testing.T) {
	if got := mu(1, nil); got != 0 {
		t.Errorf("mu(1, nil) = %v, want 0", got)
	}
}
