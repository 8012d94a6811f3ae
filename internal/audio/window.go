package audio

// windowPadQuantum is the multiple samples are padded to at end-of-stream
// before a final forced flush, matching the original analyzer's
// end-of-stream handling.
const windowPadQuantum = 1024

// WindowBuffer accumulates analysis-rate mono samples and slices them into
// fixed-size, optionally overlapping windows as soon as enough samples have
// accumulated. It does not itself compute any spectral quantity; it is the
// buffering discipline C3/C4 ride on top of.
type WindowBuffer struct {
	windowSize int
	hop        int // windowSize - overlap
	buf        []float32
}

// NewWindowBuffer builds a window buffer that emits windows of windowSize
// samples, advancing by windowSize-overlap samples each time.
func NewWindowBuffer(windowSize, overlap int) *WindowBuffer {
	hop := windowSize - overlap
	if hop <= 0 {
		hop = windowSize
	}
	return &WindowBuffer{
		windowSize: windowSize,
		hop:        hop,
		buf:        make([]float32, 0, windowSize*2),
	}
}

// Push appends newly resampled samples and returns zero or more completed
// windows, each exactly windowSize samples long. The returned slices are
// copies; callers may retain them.
func (w *WindowBuffer) Push(samples []float32) [][]float32 {
	w.buf = append(w.buf, samples...)

	var windows [][]float32
	for len(w.buf) >= w.windowSize {
		win := make([]float32, w.windowSize)
		copy(win, w.buf[:w.windowSize])
		windows = append(windows, win)

		if w.hop >= len(w.buf) {
			w.buf = w.buf[:0]
		} else {
			w.buf = append(w.buf[:0], w.buf[w.hop:]...)
		}
	}
	return windows
}

// Flush pads any remaining buffered samples up to the next multiple of
// windowPadQuantum (at least windowSize) with zeros and emits exactly one
// final window, unless the buffer is already empty.
func (w *WindowBuffer) Flush() []float32 {
	if len(w.buf) == 0 {
		return nil
	}
	target := w.windowSize
	for target < len(w.buf) {
		target += windowPadQuantum
	}
	padded := make([]float32, target)
	copy(padded, w.buf)
	w.buf = w.buf[:0]
	if target == w.windowSize {
		return padded
	}
	return padded[:w.windowSize]
}
