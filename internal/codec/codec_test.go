package codec

import (
	"errors"
	"testing"
)

func TestOpenUnsupportedExtensionReturnsErrUnsupportedContainer(t *testing.T) {
	_, err := Open("track.xm", nopReadCloser{})
	if !errors.Is(err, ErrUnsupportedContainer) {
		t.Fatalf("Open(.xm) error = %v, want wrapping ErrUnsupportedContainer", err)
	}
}

func TestSupportedReflectsRegisteredBackends(t *testing.T) {
	for _, ext := range []string{".mp3", ".flac", ".ogg", ".oga", ".wav"} {
		if !Supported(ext) {
			t.Errorf("Supported(%q) = false, want true", ext)
		}
	}
	if Supported(".xm") {
		t.Errorf("Supported(.xm) = true, want false")
	}
}

func TestSupportedIsCaseInsensitive(t *testing.T) {
	if !Supported(".MP3") {
		t.Error("Supported(.MP3) = false, want true")
	}
}

type nopReadCloser struct{}

func (nopReadCloser) Read(p []byte) (int, error) { return 0, nil }
func (nopReadCloser) Close() error               { return nil }
