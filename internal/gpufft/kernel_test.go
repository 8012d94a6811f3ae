package gpufft

import "testing"

func TestStagesOfPowerOfFour(t *testing.T) {
	stages, err := Stages(1024) // 4^5
	if err != nil {
		t.Fatalf("Stages(1024): %v", err)
	}
	if stages != 5 {
		t.Errorf("Stages(1024) = %d, want 5", stages)
	}
}

func TestStagesRejectsNonPowerOfFour(t *testing.T) {
	if _, err := Stages(1000); err == nil {
		t.Fatal("expected error for non-power-of-four window size")
	}
}

func TestFakeKernelTransformsEachSequence(t *testing.T) {
	k := NewFakeKernel()
	windowSize := 4
	batch := 2
	data := make([]complex64, windowSize*batch)
	for i := range data {
		data[i] = complex(float32(1), 0)
	}
	if err := k.Transform(data, windowSize, batch); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	// An all-ones input's DC bin (index 0) should carry the full sum for
	// each sequence.
	if real(data[0]) < float32(windowSize)-0.01 {
		t.Errorf("DC bin of sequence 0 = %v, want ~%d", data[0], windowSize)
	}
	if real(data[windowSize]) < float32(windowSize)-0.01 {
		t.Errorf("DC bin of sequence 1 = %v, want ~%d", data[windowSize], windowSize)
	}
}
