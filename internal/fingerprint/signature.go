// Package fingerprint implements the identify client (C10): given an
// encoded audio signature, it submits it to a Shazam-style fingerprint
// matching service over HTTP, rate-limited and retried per the service's
// own 429 backoff contract.
package fingerprint

import "encoding/base64"

// Signature is an opaque, already-encoded audio fingerprint payload (the
// encoding itself is out of this package's scope; it only knows how to
// wrap it as a base64 data URI for the wire request).
type Signature struct {
	Data       []byte
	NumSamples int
	SampleRate int
}

// dataURI returns the signature as a base64 data URI the request body
// embeds verbatim.
func (s Signature) dataURI() string {
	return "data:audio/vnd.shazam.sig;base64," + base64.StdEncoding.EncodeToString(s.Data)
}

// sampleMillis is the signature's represented duration in milliseconds.
func (s Signature) sampleMillis() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(s.NumSamples) / float64(s.SampleRate) * 1000
}
