package analysis

import "testing"

func TestChromaHasTwelveBins(t *testing.T) {
	bank := newChromaFilterBank(513, 11025, 1024)
	amp := make([]float64, 513)
	amp[50] = 1.0
	chroma := bank.Chroma(amp)
	if len(chroma) != chromaBins {
		t.Fatalf("len(Chroma()) = %d, want %d", len(chroma), chromaBins)
	}
}

func TestChromaOfSilenceIsAllZero(t *testing.T) {
	bank := newChromaFilterBank(513, 11025, 1024)
	amp := make([]float64, 513)
	chroma := bank.Chroma(amp)
	for i, v := range chroma {
		if v != 0 {
			t.Errorf("Chroma()[%d] = %v, want 0 for a silent spectrum", i, v)
		}
	}
}

func TestChromaIsMaxNormalised(t *testing.T) {
	bank := newChromaFilterBank(513, 11025, 1024)
	amp := make([]float64, 513)
	for i := range amp {
		amp[i] = 0.5
	}
	chroma := bank.Chroma(amp)
	var maxVal float64
	for _, v := range chroma {
		if v > maxVal {
			maxVal = v
		}
		if v < 0 || v > 1 {
			t.Errorf("Chroma() value %v out of [0,1] range", v)
		}
	}
	if maxVal < 0.999 {
		t.Errorf("max chroma value = %v, want ~1 after max-normalisation", maxVal)
	}
}

func TestHzToOctavesOfNonPositiveFreqIsZero(t *testing.T) {
	if got := hzToOctaves(0); got != 0 {
		t.Errorf("hzToOctaves(0) = %v, want 0", got)
	}
	if got := hzToOctaves(-10); got != 0 {
		t.Errorf("hzToOctaves(-10) = %v, want 0", got)
	}
}
