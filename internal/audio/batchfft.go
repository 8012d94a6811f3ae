package audio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/austinkregel/local-media/musicd/internal/gpufft"
)

// ComputeDevice selects the batch FFT backend.
type ComputeDevice int

const (
	DeviceCPU ComputeDevice = iota
	DeviceGPU
)

// defaultBatchSize returns the conventional default batch size for a
// device: 1 (dispatch every window immediately) for CPU, 8192 for GPU
// (amortising kernel submission overhead across many windows).
func defaultBatchSize(device ComputeDevice) int {
	if device == DeviceGPU {
		return 8192
	}
	return 1
}

// BatchFFT windows, batches, and transforms fixed-size sample windows,
// accumulating a running average complex spectrum (length windowSize),
// summed bin-wise and divided by hop count only at AverageSpectrum. A CPU
// dispatch uses gonum's complex-to-complex FFT directly; a GPU dispatch
// stages windows into a batch buffer and hands them to a gpufft.Kernel in
// groups.
type BatchFFT struct {
	windowSize int
	batchSize  int
	device     ComputeDevice
	hann       []float64

	cpuFFT *fourier.CmplxFFT

	kernel gpufft.Kernel
	stage  []complex64
	k      int

	avgSpectrum Spectrum
	specCount   uint64
}

// NewBatchFFT builds a batch FFT dispatcher for the given window size,
// device, and batch size. kernel is required (and used) only for
// DeviceGPU; pass nil for DeviceCPU.
func NewBatchFFT(windowSize int, device ComputeDevice, batchSize int, kernel gpufft.Kernel) (*BatchFFT, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize(device)
	}
	if device == DeviceGPU && kernel == nil {
		return nil, fmt.Errorf("audio: GPU batch FFT requires a kernel")
	}

	hann := make([]float64, windowSize)
	for i := range hann {
		hann[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(windowSize-1)))
	}

	b := &BatchFFT{
		windowSize:  windowSize,
		batchSize:   batchSize,
		device:      device,
		hann:        hann,
		kernel:      kernel,
		avgSpectrum: make(Spectrum, windowSize),
	}
	if device == DeviceCPU {
		b.cpuFFT = fourier.NewCmplxFFT(windowSize)
	} else {
		b.stage = make([]complex64, windowSize*batchSize)
	}
	return b, nil
}

// Stage applies the Hann window to one time-domain window and queues it
// for transform. On the CPU device this dispatches immediately (batch size
// 1); on the GPU device it accumulates into the batch buffer and
// dispatches only once the buffer fills (ForceFlush handles the tail).
func (b *BatchFFT) Stage(window []float32) error {
	windowed := make([]float64, b.windowSize)
	for i, s := range window {
		windowed[i] = float64(s) * b.hann[i]
	}

	if b.device == DeviceCPU {
		return b.dispatchCPU(windowed)
	}

	base := b.k * b.windowSize
	for i, v := range windowed {
		b.stage[base+i] = complex64(complex(v, 0))
	}
	b.k++
	if b.k == b.batchSize {
		return b.flushGPU(b.batchSize)
	}
	return nil
}

// ForceFlush dispatches any partially-filled GPU batch (end-of-stream or
// cancellation). It is a no-op on the CPU device, which never buffers.
func (b *BatchFFT) ForceFlush() error {
	if b.device == DeviceCPU || b.k == 0 {
		return nil
	}
	return b.flushGPU(b.k)
}

// dispatchCPU transforms one window and folds its full complex spectrum
// (length windowSize) into the running sum. The modulus is taken later, in
// C7, from the averaged complex bins rather than here: averaging magnitudes
// and taking the magnitude of an averaged complex spectrum are different
// quantities whenever phase varies hop-to-hop, and the accumulator must
// produce the latter.
func (b *BatchFFT) dispatchCPU(windowed []float64) error {
	coeffs := b.cpuFFT.Coefficients(nil, complexify(windowed))
	for i, c := range coeffs {
		b.avgSpectrum[i] += c
	}
	b.specCount++
	return nil
}

// complexify builds a zero-imaginary complex input for gonum's complex FFT.
func complexify(in []float64) []complex128 {
	out := make([]complex128, len(in))
	for i, v := range in {
		out[i] = complex(v, 0)
	}
	return out
}

// flushGPU transforms the k valid leading sequences in the staged batch
// buffer via the configured Kernel and folds their complex spectra into the
// running sum. validCount may be less than batchSize on a forced flush at
// end-of-stream.
func (b *BatchFFT) flushGPU(validCount int) error {
	if err := b.kernel.Transform(b.stage, b.windowSize, b.batchSize); err != nil {
		return fmt.Errorf("%w", err)
	}
	for seq := 0; seq < validCount; seq++ {
		base := seq * b.windowSize
		for i := 0; i < b.windowSize; i++ {
			c := b.stage[base+i]
			b.avgSpectrum[i] += complex(float64(real(c)), float64(imag(c)))
		}
		b.specCount++
	}
	b.k = 0
	return nil
}

// AverageSpectrum returns the running-average complex spectrum (length
// windowSize), normalised by the number of windows transformed so far. C7
// takes the modulus of each bin to recover the magnitude spectrum the spec
// calls avg_spectrum's |.| projection.
func (b *BatchFFT) AverageSpectrum() Spectrum {
	if b.specCount == 0 {
		return make(Spectrum, len(b.avgSpectrum))
	}
	out := make(Spectrum, len(b.avgSpectrum))
	for i, v := range b.avgSpectrum {
		out[i] = v / complex(float64(b.specCount), 0)
	}
	return out
}

// SpectrumCount is the number of windows folded into AverageSpectrum.
func (b *BatchFFT) SpectrumCount() uint64 { return b.specCount }
