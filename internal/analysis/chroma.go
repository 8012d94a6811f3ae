package analysis

import "math"

const chromaBins = 12

// chromaFilterBank holds one Gaussian weight row per pitch class, each row
// as long as the spectrum it will be applied to.
type chromaFilterBank struct {
	rows [][]float64
}

// newChromaFilterBank builds a 12-bin log-frequency Gaussian filter bank
// over numBins FFT bins at the given sample rate and window size, rotated
// so that bin 0 corresponds to C (base_c), matching the reference chroma
// construction this is ported from.
func newChromaFilterBank(numBins, sampleRate, windowSize int) *chromaFilterBank {
	freqPerBin := float64(sampleRate) / float64(windowSize)

	octaves := make([]float64, numBins)
	for k := 0; k < numBins; k++ {
		freq := float64(k) * freqPerBin
		octaves[k] = hzToOctaves(freq)
	}

	binWidth := 1.0
	if numBins > 1 {
		var maxDiff float64 = 1.0
		for k := 1; k < numBins; k++ {
			d := octaves[k] - octaves[k-1]
			if d > maxDiff {
				maxDiff = d
			}
		}
		binWidth = maxDiff
	}

	rows := make([][]float64, chromaBins)
	for p := 0; p < chromaBins; p++ {
		row := make([]float64, numBins)
		var colSum float64
		for k := 0; k < numBins; k++ {
			// Distance (in chroma-wrapped octave space, scaled by 12) from
			// this bin's pitch class to filter p.
			pitchClass := math.Mod(octaves[k]*chromaBins, chromaBins)
			dist := pitchClass - float64(p)
			dist = math.Mod(dist+chromaBins*0.5, chromaBins) - chromaBins*0.5
			weight := math.Exp(-0.5 * math.Pow(2*dist/binWidth, 2))
			row[k] = weight
			colSum += weight
		}
		if colSum > 0 {
			for k := range row {
				row[k] /= colSum
			}
		}
		rows[p] = row
	}

	bank := &chromaFilterBank{rows: rows}
	bank.rotateLeft(3) // align bin 0 to C (base_c)
	return bank
}

func (b *chromaFilterBank) rotateLeft(n int) {
	n = n % len(b.rows)
	b.rows = append(b.rows[n:], b.rows[:n]...)
}

func hzToOctaves(freq float64) float64 {
	const a440 = 440.0
	if freq <= 0 {
		return 0
	}
	return math.Log2(freq / (a440 / 16))
}

// Chroma projects amp onto the 12 pitch-class filters and max-normalises
// the result (L-infinity normalisation), matching the spec's "normalise by
// the maximum, or zero out if the maximum is zero" rule.
func (b *chromaFilterBank) Chroma(amp []float64) []float64 {
	out := make([]float64, chromaBins)
	var maxVal float64
	for p, row := range b.rows {
		var sum float64
		n := len(row)
		if len(amp) < n {
			n = len(amp)
		}
		for k := 0; k < n; k++ {
			sum += row[k] * amp[k]
		}
		out[p] = sum
		if sum > maxVal {
			maxVal = sum
		}
	}
	if maxVal > 0 {
		for p := range out {
			out[p] /= maxVal
		}
	}
	return out
}
