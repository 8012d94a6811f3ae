package audio

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/austinkregel/local-media/musicd/internal/gpufft"
)

func TestBatchFFTCPUAccumulatesSpectrum(t *testing.T) {
	b, err := NewBatchFFT(8, DeviceCPU, 0, nil)
	if err != nil {
		t.Fatalf("NewBatchFFT: %v", err)
	}
	window := make([]float32, 8)
	for i := range window {
		window[i] = 1
	}
	if err := b.Stage(window); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if b.SpectrumCount() != 1 {
		t.Fatalf("SpectrumCount() = %d, want 1", b.SpectrumCount())
	}
	spectrum := b.AverageSpectrum()
	if len(spectrum) != 8 { // full complex spectrum, length windowSize
		t.Fatalf("len(spectrum) = %d, want 8", len(spectrum))
	}
}

func TestBatchFFTGPURequiresKernel(t *testing.T) {
	if _, err := NewBatchFFT(1024, DeviceGPU, 8, nil); err == nil {
		t.Fatal("expected error when constructing a GPU batch FFT without a kernel")
	}
}

func TestDefaultBatchSize(t *testing.T) {
	if defaultBatchSize(DeviceCPU) != 1 {
		t.Errorf("defaultBatchSize(CPU) = %d, want 1", defaultBatchSize(DeviceCPU))
	}
	if defaultBatchSize(DeviceGPU) != 8192 {
		t.Errorf("defaultBatchSize(GPU) = %d, want 8192", defaultBatchSize(DeviceGPU))
	}
}

// TestBatchFFTCPUGPUParity feeds identical windows through the CPU path and
// the GPU path (backed by FakeKernel, which runs the same gonum complex FFT
// CPU-side) and checks the two average spectra agree within a small
// tolerance, per the CPU/GPU parity property.
func TestBatchFFTCPUGPUParity(t *testing.T) {
	const windowSize = 16
	windows := make([][]float32, 4)
	for w := range windows {
		win := make([]float32, windowSize)
		for i := range win {
			win[i] = float32(math.Sin(2 * math.Pi * float64(i+w) / windowSize))
		}
		windows[w] = win
	}

	cpu, err := NewBatchFFT(windowSize, DeviceCPU, 0, nil)
	if err != nil {
		t.Fatalf("NewBatchFFT(CPU): %v", err)
	}
	gpu, err := NewBatchFFT(windowSize, DeviceGPU, len(windows), gpufft.NewFakeKernel())
	if err != nil {
		t.Fatalf("NewBatchFFT(GPU): %v", err)
	}

	for _, win := range windows {
		if err := cpu.Stage(win); err != nil {
			t.Fatalf("cpu.Stage: %v", err)
		}
		if err := gpu.Stage(win); err != nil {
			t.Fatalf("gpu.Stage: %v", err)
		}
	}
	if err := gpu.ForceFlush(); err != nil {
		t.Fatalf("gpu.ForceFlush: %v", err)
	}

	cpuSpectrum := cpu.AverageSpectrum()
	gpuSpectrum := gpu.AverageSpectrum()
	if len(cpuSpectrum) != len(gpuSpectrum) {
		t.Fatalf("len(cpuSpectrum) = %d, len(gpuSpectrum) = %d, want equal", len(cpuSpectrum), len(gpuSpectrum))
	}
	const tolerance = 1e-6
	for i := range cpuSpectrum {
		if d := cmplx.Abs(cpuSpectrum[i] - gpuSpectrum[i]); d > tolerance {
			t.Errorf("bin %d: cpu=%v gpu=%v, differ by %v (tolerance %v)", i, cpuSpectrum[i], gpuSpectrum[i], d, tolerance)
		}
	}
}
