package audio

import "testing"

func TestZCRCountsSignChanges(t *testing.T) {
	signal := []float32{1, -1, 1, -1}
	if got := zcr(signal); got != 3 {
		t.Errorf("zcr(%v) = %v, want 3", signal, got)
	}
}

func TestZCRZeroIsNonNegative(t *testing.T) {
	// A transition from positive to zero is not a crossing; zero to
	// negative is.
	signal := []float32{1, 0, -1}
	if got := zcr(signal); got != 1 {
		t.Errorf("zcr(%v) = %v, want 1", signal, got)
	}
}

func TestRMSOfConstantSignal(t *testing.T) {
	signal := []float32{0.5, 0.5, 0.5, 0.5}
	if got := rms(signal); got < 0.49 || got > 0.51 {
		t.Errorf("rms(%v) = %v, want ~0.5", signal, got)
	}
}

func TestFeatureAccumulatorEmptyMeansZero(t *testing.T) {
	acc := &FeatureAccumulator{}
	rms, zcr, energy := acc.Means()
	if rms != 0 || zcr != 0 || energy != 0 {
		t.Errorf("Means() on empty accumulator = (%v, %v, %v), want zeros", rms, zcr, energy)
	}
	if acc.Count() != 0 {
		t.Errorf("Count() = %d, want 0", acc.Count())
	}
}

func TestFeatureAccumulatorAveragesAcrossWindows(t *testing.T) {
	acc := &FeatureAccumulator{}
	acc.Accumulate([]float32{1, 1, 1, 1})
	acc.Accumulate([]float32{0, 0, 0, 0})
	if acc.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", acc.Count())
	}
	meanRMS, _, _ := acc.Means()
	if meanRMS <= 0 || meanRMS >= 1 {
		t.Errorf("meanRMS = %v, want strictly between 0 and 1", meanRMS)
	}
}
