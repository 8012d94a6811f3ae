package codec

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

func init() {
	Register(".flac", openFLAC)
}

type flacTrack struct {
	closer        io.Closer
	stream        *flac.Stream
	sampleRate    int
	channels      int
	bitsPerSample int
}

func openFLAC(r io.ReadCloser) (Track, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCodec, err)
	}
	return &flacTrack{
		closer:        r,
		stream:        stream,
		sampleRate:    int(stream.Info.SampleRate),
		channels:      int(stream.Info.NChannels),
		bitsPerSample: int(stream.Info.BitsPerSample),
	}, nil
}

func (t *flacTrack) SampleRate() int { return t.sampleRate }
func (t *flacTrack) Channels() int   { return t.channels }

func (t *flacTrack) NextPacket() ([]float32, error) {
	frame, err := t.stream.ParseNext()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFatal, err)
	}

	nSubframes := len(frame.Subframes)
	if nSubframes == 0 {
		return nil, nil
	}
	nSamples := len(frame.Subframes[0].Samples)
	format, full := bitDepthFormat(t.bitsPerSample)

	packet := make([]float32, nSamples)
	chanBuf := make([]float32, nSubframes)
	for i := 0; i < nSamples; i++ {
		for ch := 0; ch < nSubframes; ch++ {
			raw := int64(frame.Subframes[ch].Samples[i])
			chanBuf[ch] = ToFloat32(format, raw, 0) * full
		}
		packet[i] = MixDown(chanBuf)
	}
	return packet, nil
}

// bitDepthFormat maps a FLAC stream's bits-per-sample to the nearest signed
// SampleFormat and a compensating scale (mewkiz/flac exposes samples
// sign-extended to int32 regardless of bit depth, so ToFloat32's native
// range for that format must be rescaled back to the true bit depth).
func bitDepthFormat(bits int) (SampleFormat, float32) {
	var format SampleFormat
	var native int
	switch {
	case bits <= 8:
		format, native = FormatS8, 8
	case bits <= 16:
		format, native = FormatS16, 16
	case bits <= 24:
		format, native = FormatS24, 24
	default:
		format, native = FormatS32, 32
	}
	if bits <= 0 || bits >= native {
		return format, 1
	}
	return format, float32(int64(1) << uint(native-bits))
}

func (t *flacTrack) Close() error { return t.closer.Close() }
