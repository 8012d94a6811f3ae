package codec

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

func init() {
	Register(".mp3", openMP3)
}

const mp3PacketFrames = 4096

// mp3Track wraps go-mp3, which always decodes to signed 16-bit little
// endian stereo PCM regardless of the source's original channel count.
type mp3Track struct {
	closer  io.Closer
	decoder *mp3.Decoder
	buf     []byte
}

func openMP3(r io.ReadCloser) (Track, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCodec, err)
	}
	return &mp3Track{
		closer:  r,
		decoder: dec,
		buf:     make([]byte, mp3PacketFrames*4), // 16-bit stereo frames
	}, nil
}

func (t *mp3Track) SampleRate() int { return t.decoder.SampleRate() }
func (t *mp3Track) Channels() int   { return 2 }

func (t *mp3Track) NextPacket() ([]float32, error) {
	n, err := t.decoder.Read(t.buf)
	if n > 0 {
		packet := S16LEToMonoFloat32(t.buf[:n], 2)
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

func (t *mp3Track) Close() error { return t.closer.Close() }
