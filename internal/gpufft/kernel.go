// Package gpufft defines the batch FFT kernel contract C6 dispatches
// against and a Vulkan compute-shader implementation of it. The contract is
// substrate-independent (a buffer of complex samples in, the same buffer
// transformed in place, log4(window) stages, ping-pong between two device
// buffers) so it is expressed as a plain interface: a CPU-backed FakeKernel
// satisfies it for parity tests that don't require a physical GPU.
package gpufft

import (
	"errors"
	"fmt"
)

// ErrSubmissionFailure is returned when the compute backend could not
// submit or complete a dispatch. Analysis must terminate on this error;
// there is no silent CPU fallback.
var ErrSubmissionFailure = errors.New("gpufft: submission failure")

// ErrWindowNotPowerOfFour is returned when WindowSize is not a power of
// four, which the radix-4 Stockham algorithm requires.
var ErrWindowNotPowerOfFour = errors.New("gpufft: window size must be a power of four")

// Kernel transforms a batch of independent, equal-length complex sequences
// in place. The batch buffer holds batchCount sequences of windowSize
// complex samples each, concatenated: batch[b*windowSize : (b+1)*windowSize]
// is sequence b. Implementations must leave any trailing padding sequences
// the caller marked invalid untouched or overwritten consistently; C5 only
// reads back the k valid leading sequences on a forced flush.
type Kernel interface {
	// Transform performs an in-place forward FFT of each of the batchCount
	// length-windowSize sequences packed in batch.
	Transform(batch []complex64, windowSize, batchCount int) error

	// Close releases any backend resources (device handles, shader
	// modules, buffers).
	Close() error
}

// Stages returns log4(windowSize), the number of radix-4 Stockham passes
// the kernel contract requires, or an error if windowSize is not a power
// of four.
func Stages(windowSize int) (int, error) {
	if windowSize <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrWindowNotPowerOfFour, windowSize)
	}
	n := windowSize
	stages := 0
	for n > 1 {
		if n%4 != 0 {
			return 0, fmt.Errorf("%w: %d", ErrWindowNotPowerOfFour, windowSize)
		}
		n /= 4
		stages++
	}
	return stages, nil
}
