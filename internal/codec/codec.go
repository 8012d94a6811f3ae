// Package codec opens audio containers and decodes them into mono float32
// frames, one packet at a time. It is the concrete backend for the
// decode/mix stage of the analysis pipeline: callers never see container or
// codec-specific types, only a Track that yields []float32 packets already
// mixed down to mono.
package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupportedContainer is returned by Open when the file extension has no
// registered backend. This mirrors the original CODEC_TYPE_NULL track
// filter, expressed as an extension-keyed registry instead of a probed
// codec tag.
var ErrUnsupportedContainer = errors.New("codec: unsupported container")

// ErrUnsupportedCodec is returned by a backend when the container opens but
// the stream inside it cannot be decoded (e.g. the decoding library rejects
// the stream header).
var ErrUnsupportedCodec = errors.New("codec: unsupported codec")

// ErrDecodeFatal signals a decode error the backend cannot recover from;
// the analysis of this file must terminate.
var ErrDecodeFatal = errors.New("codec: fatal decode error")

// Track yields decoded audio one packet at a time.
type Track interface {
	// SampleRate is the native sample rate of the decoded stream.
	SampleRate() int

	// Channels is the native channel count of the decoded stream.
	Channels() int

	// NextPacket returns the next packet of mono float32 samples at the
	// native sample rate, or io.EOF when the stream is exhausted. A
	// non-EOF, non-nil error other than one wrapping ErrDecodeFatal is a
	// transient decode error: the caller may skip the packet and continue.
	NextPacket() ([]float32, error)

	// Close releases any resources held by the track.
	Close() error
}

// Backend opens a container of a specific kind from a reader.
type Backend func(r io.ReadCloser) (Track, error)

var registry = map[string]Backend{}

// Register associates a file extension (including the leading dot, e.g.
// ".mp3") with a decode backend. Called from each backend's init().
func Register(ext string, backend Backend) {
	registry[strings.ToLower(ext)] = backend
}

// Open selects a backend by the file's extension and opens it for
// decoding. The returned Track owns r and closing the Track closes r.
func Open(path string, r io.ReadCloser) (Track, error) {
	ext := strings.ToLower(filepath.Ext(path))
	backend, ok := registry[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContainer, ext)
	}
	track, err := backend(r)
	if err != nil {
		return nil, fmt.Errorf("codec: opening %q: %w", path, err)
	}
	return track, nil
}

// Supported reports whether ext (including the leading dot) has a
// registered backend.
func Supported(ext string) bool {
	_, ok := registry[strings.ToLower(ext)]
	return ok
}
