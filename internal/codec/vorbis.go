package codec

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

func init() {
	Register(".ogg", openVorbis)
	Register(".oga", openVorbis)
}

const vorbisPacketFrames = 4096

type vorbisTrack struct {
	closer io.Closer
	reader *oggvorbis.Reader
	buf    []float32
}

func openVorbis(r io.ReadCloser) (Track, error) {
	reader, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCodec, err)
	}
	return &vorbisTrack{
		closer: r,
		reader: reader,
		buf:    make([]float32, vorbisPacketFrames*reader.Channels()),
	}, nil
}

func (t *vorbisTrack) SampleRate() int { return t.reader.SampleRate() }
func (t *vorbisTrack) Channels() int   { return t.reader.Channels() }

func (t *vorbisTrack) NextPacket() ([]float32, error) {
	n, err := t.reader.Read(t.buf)
	if n > 0 {
		packet := mixInterleavedFloat32(t.buf[:n], t.reader.Channels())
		if err != nil && err != io.EOF {
			return packet, fmt.Errorf("%w: %v", ErrDecodeFatal, err)
		}
		return packet, nil
	}
	if err == nil {
		err = io.EOF
	}
	if err != io.EOF {
		err = fmt.Errorf("%w: %v", ErrDecodeFatal, err)
	}
	return nil, err
}

func (t *vorbisTrack) Close() error { return t.closer.Close() }

// mixInterleavedFloat32 mixes interleaved float32 PCM down to mono.
func mixInterleavedFloat32(data []float32, channels int) []float32 {
	if channels <= 0 {
		channels = 1
	}
	n := len(data) / channels
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = MixDown(data[i*channels : (i+1)*channels])
	}
	return out
}
