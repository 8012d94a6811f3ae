package analysis

import "testing"

func TestComputeBarkLoudnessOfSilenceIsZero(t *testing.T) {
	amp := make([]float64, 513)
	l := ComputeBarkLoudness(amp, 11025, 1024)
	if l.Total != 0 {
		t.Errorf("Total = %v, want 0 for a silent spectrum", l.Total)
	}
	if len(l.Specific) != barkBands {
		t.Fatalf("len(Specific) = %d, want %d", len(l.Specific), barkBands)
	}
}

func TestPerceptualSpreadOfSilenceIsZero(t *testing.T) {
	l := BarkLoudness{}
	if got := l.PerceptualSpread(); got != 0 {
		t.Errorf("PerceptualSpread() = %v, want 0", got)
	}
}

func TestPerceptualSharpnessOfSilenceIsZero(t *testing.T) {
	l := BarkLoudness{}
	if got := l.PerceptualSharpness(); got != 0 {
		t.Errorf("PerceptualSharpness() = %v, want 0", got)
	}
}

func TestBandLimitsAreMonotonicAndBounded(t *testing.T) {
	limits := bandLimits(513, 11025, 1024)
	if len(limits) != barkBands+1 {
		t.Fatalf("len(limits) = %d, want %d", len(limits), barkBands+1)
	}
	for i := 1; i < len(limits); i++ {
		if limits[i] < limits[i-1] {
			t.Fatalf("limits[%d]=%d < limits[%d]=%d, want non-decreasing", i, limits[i], i-1, limits[i-1])
		}
	}
	if limits[0] != 0 {
		t.Errorf("limits[0] = %d, want 0", limits[0])
	}
	if limits[barkBands] > 513 {
		t.Errorf("limits[%d] = %d, want <= 513", barkBands, limits[barkBands])
	}
}
