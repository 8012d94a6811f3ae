package analysis

import "testing"

func TestMFCCReturnsRequestedCoefficientCount(t *testing.T) {
	amp := make([]float64, 513)
	for i := range amp {
		amp[i] = 0.1
	}
	coeffs := MFCC(amp, 11025, 26, 13)
	if len(coeffs) != 13 {
		t.Fatalf("len(MFCC()) = %d, want 13", len(coeffs))
	}
}

func TestMFCCClampsCoefficientCount(t *testing.T) {
	amp := make([]float64, 513)
	if got := MFCC(amp, 11025, 26, 0); len(got) != 1 {
		t.Errorf("MFCC with 0 requested = %d coefficients, want clamped to 1", len(got))
	}
	if got := MFCC(amp, 11025, 40, 100); len(got) != 40 {
		t.Errorf("MFCC with 100 requested = %d coefficients, want clamped to 40", len(got))
	}
}

func TestMFCCNilWhenFilterBankTooSmall(t *testing.T) {
	amp := make([]float64, 513)
	if got := MFCC(amp, 11025, 5, 13); got != nil {
		t.Errorf("MFCC() = %v, want nil when numFilters < numCoefficients", got)
	}
}

func TestPowerSpectrumSquaresEachBin(t *testing.T) {
	amp := []float64{1, 2, 3}
	power := PowerSpectrum(amp)
	want := []float64{1, 4, 9}
	for i, v := range power {
		if v != want[i] {
			t.Errorf("PowerSpectrum()[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestFreqMelRoundTrip(t *testing.T) {
	freq := 1000.0
	mel := freqToMel(freq)
	back := melToFreq(mel)
	if back < freq-0.01 || back > freq+0.01 {
		t.Errorf("melToFreq(freqToMel(%v)) = %v, want ~%v", freq, back, freq)
	}
}

func TestDCTOfConstantInputConcentratesInFirstCoefficient(t *testing.T) {
	in := []float64{1, 1, 1, 1}
	out := dct(in)
	if out[0] <= out[1] || out[0] <= out[2] || out[0] <= out[3] {
		t.Errorf("dct(%v) = %v, want coefficient 0 dominant for constant input", in, out)
	}
}
