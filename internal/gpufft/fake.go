package gpufft

import "gonum.org/v1/gonum/dsp/fourier"

// FakeKernel runs each sequence through gonum's complex FFT on the CPU. It
// satisfies the Kernel interface so unit tests can exercise C5's batch
// dispatch and flush policy without a physical GPU, and so CPU/GPU parity
// tests have a deterministic reference independent of the Vulkan backend.
type FakeKernel struct{}

// NewFakeKernel returns a Kernel that performs the same transform a real
// GPU kernel would, entirely on the CPU.
func NewFakeKernel() *FakeKernel {
	return &FakeKernel{}
}

func (k *FakeKernel) Transform(batch []complex64, windowSize, batchCount int) error {
	if _, err := Stages(windowSize); err != nil {
		return err
	}
	fft := fourier.NewCmplxFFT(windowSize)
	tmp := make([]complex128, windowSize)
	for b := 0; b < batchCount; b++ {
		seq := batch[b*windowSize : (b+1)*windowSize]
		for i, v := range seq {
			tmp[i] = complex(float64(real(v)), float64(imag(v)))
		}
		out := fft.Coefficients(nil, tmp)
		for i, v := range out {
			seq[i] = complex64(v)
		}
	}
	return nil
}

func (k *FakeKernel) Close() error { return nil }
