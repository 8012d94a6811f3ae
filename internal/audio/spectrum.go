package audio

import "encoding/json"

// Spectrum is a full complex spectrum of length windowSize: avg_spectrum as
// the data model names it, before C7 takes the modulus of each bin.
// encoding/json has no native complex-number support, so it marshals as an
// array of [real, imaginary] pairs.
type Spectrum []complex128

func (s Spectrum) MarshalJSON() ([]byte, error) {
	pairs := make([][2]float64, len(s))
	for i, c := range s {
		pairs[i] = [2]float64{real(c), imag(c)}
	}
	return json.Marshal(pairs)
}

func (s *Spectrum) UnmarshalJSON(data []byte) error {
	var pairs [][2]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	out := make(Spectrum, len(pairs))
	for i, p := range pairs {
		out[i] = complex(p[0], p[1])
	}
	*s = out
	return nil
}
