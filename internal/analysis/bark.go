package analysis

import "math"

const barkBands = 24

// barkScale converts a frequency in Hz to the Bark critical-band scale.
func barkScale(freqHz float64) float64 {
	return 13*math.Atan(freqHz/1315.8) + 3.5*math.Atan(math.Pow(freqHz/7518.0, 2))
}

// bandLimits precomputes, for the given sample rate and number of spectrum
// bins, the first bin index belonging to each of the 24 Bark bands.
func bandLimits(numBins, sampleRate, windowSize int) []int {
	freqPerBin := float64(sampleRate) / float64(windowSize)
	maxBark := barkScale(float64(sampleRate) / 2)

	limits := make([]int, barkBands+1)
	for b := 0; b <= barkBands; b++ {
		targetBark := maxBark * float64(b) / float64(barkBands)
		// Binary search for the first bin whose Bark value reaches target.
		lo, hi := 0, numBins
		for lo < hi {
			mid := (lo + hi) / 2
			if barkScale(float64(mid)*freqPerBin) < targetBark {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		limits[b] = lo
	}
	return limits
}

// BarkLoudness is the per-band (specific) and total perceptual loudness of
// a magnitude spectrum, following the Zwicker-style sum-of-powers model
// used throughout the reference implementation.
type BarkLoudness struct {
	Specific []float64
	Total    float64
}

// ComputeBarkLoudness sums magnitude within each of the 24 Bark bands,
// raises the sum to the 0.23 power (the standard loudness-model exponent),
// and totals the bands.
func ComputeBarkLoudness(amp []float64, sampleRate, windowSize int) BarkLoudness {
	limits := bandLimits(len(amp), sampleRate, windowSize)
	specific := make([]float64, barkBands)
	var total float64
	for b := 0; b < barkBands; b++ {
		lo, hi := limits[b], limits[b+1]
		if hi > len(amp) {
			hi = len(amp)
		}
		var sum float64
		for k := lo; k < hi; k++ {
			sum += amp[k]
		}
		loudness := 0.0
		if sum > 0 {
			loudness = math.Pow(sum, 0.23)
		}
		specific[b] = loudness
		total += loudness
	}
	return BarkLoudness{Specific: specific, Total: total}
}

// PerceptualSpread measures how much the loudness is concentrated in a
// single band versus spread across bands.
func (l BarkLoudness) PerceptualSpread() float64 {
	if l.Total == 0 {
		return 0
	}
	var maxSpecific float64
	for _, s := range l.Specific {
		if s > maxSpecific {
			maxSpecific = s
		}
	}
	ratio := (l.Total - maxSpecific) / l.Total
	return ratio * ratio
}

// PerceptualSharpness is a weighted sum across bands emphasising the
// higher, perceptually "sharper" critical bands, scaled by total loudness.
func (l BarkLoudness) PerceptualSharpness() float64 {
	if l.Total == 0 {
		return 0
	}
	var weighted float64
	for i, s := range l.Specific {
		band := float64(i + 1)
		weight := 1.0
		if i >= 15 {
			weight = 0.066 * math.Exp(0.171*band)
		}
		weighted += weight * s * band
	}
	return weighted * 0.11 / l.Total
}
