package codec

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

func init() {
	Register(".wav", openWAV)
}

// wavTrack decodes the whole file in one shot via FullPCMBuffer, the
// idiomatic go-audio/wav entry point for bounded-size files, and serves it
// back as a single packet. Subsequent calls report io.EOF, matching the
// Track contract for a container with no natural smaller packet boundary.
type wavTrack struct {
	closer     io.Closer
	sampleRate int
	channels   int
	samples    []float32
	served     bool
}

func openWAV(r io.ReadCloser) (Track, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV file", ErrUnsupportedCodec)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFatal, err)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	bits := buf.SourceBitDepth
	format := intBitDepthFormat(bits)

	n := len(buf.Data) / channels
	samples := make([]float32, n)
	frame := make([]float32, channels)
	for i := 0; i < n; i++ {
		for ch := 0; ch < channels; ch++ {
			frame[ch] = ToFloat32(format, int64(buf.Data[i*channels+ch]), 0)
		}
		samples[i] = MixDown(frame)
	}

	return &wavTrack{
		closer:     r,
		sampleRate: buf.Format.SampleRate,
		channels:   channels,
		samples:    samples,
	}, nil
}

func intBitDepthFormat(bits int) SampleFormat {
	switch {
	case bits <= 8:
		return FormatU8 // WAV's 8-bit PCM convention is unsigned
	case bits <= 16:
		return FormatS16
	case bits <= 24:
		return FormatS24
	default:
		return FormatS32
	}
}

func (t *wavTrack) SampleRate() int { return t.sampleRate }
func (t *wavTrack) Channels() int   { return t.channels }

func (t *wavTrack) NextPacket() ([]float32, error) {
	if t.served {
		return nil, io.EOF
	}
	t.served = true
	return t.samples, nil
}

func (t *wavTrack) Close() error { return t.closer.Close() }
