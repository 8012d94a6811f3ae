package analysis

import (
	"math"
	"sync"
)

const mfccCoefficients = 13

// freqToMel and melToFreq implement the standard O'Shaughnessy mel scale.
func freqToMel(freq float64) float64 {
	return 2595 * math.Log10(1+freq/700)
}

func melToFreq(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

// melFilterBank holds numFilters triangular filters over numBins spectrum
// bins, standard mel-scale spaced between 0 and the Nyquist frequency.
type melFilterBank struct {
	rows [][]float64
}

func newMelFilterBank(numFilters, numBins, sampleRate int) *melFilterBank {
	nyquist := float64(sampleRate) / 2
	maxMel := freqToMel(nyquist)

	points := make([]int, numFilters+2)
	for i := range points {
		mel := maxMel * float64(i) / float64(numFilters+1)
		freq := melToFreq(mel)
		bin := int(math.Round(freq / nyquist * float64(numBins-1)))
		if bin < 0 {
			bin = 0
		}
		if bin >= numBins {
			bin = numBins - 1
		}
		points[i] = bin
	}

	rows := make([][]float64, numFilters)
	for m := 1; m <= numFilters; m++ {
		left, center, right := points[m-1], points[m], points[m+1]
		row := make([]float64, numBins)
		for k := left; k < center; k++ {
			if center != left {
				row[k] = float64(k-left) / float64(center-left)
			}
		}
		for k := center; k < right; k++ {
			if right != center {
				row[k] = float64(right-k) / float64(right-center)
			}
		}
		rows[m-1] = row
	}
	return &melFilterBank{rows: rows}
}

// MelBands applies the filter bank to a power spectrum and compresses with
// ln(1+x), matching the perceptual loudness compression used before DCT.
func (m *melFilterBank) MelBands(power []float64) []float64 {
	out := make([]float64, len(m.rows))
	for i, row := range m.rows {
		var sum float64
		n := len(row)
		if len(power) < n {
			n = len(power)
		}
		for k := 0; k < n; k++ {
			sum += row[k] * power[k]
		}
		out[i] = math.Log1p(sum)
	}
	return out
}

// PowerSpectrum squares each bin of a magnitude spectrum into a new slice,
// leaving amp unchanged.
func PowerSpectrum(amp []float64) []float64 {
	out := make([]float64, len(amp))
	for i, a := range amp {
		out[i] = a * a
	}
	return out
}

// cosTableCache memoizes DCT-II cosine tables by length, process-wide, and
// is never evicted: the set of distinct mel-band counts used across an
// analysis run is small and bounded, so the memory cost is negligible next
// to recomputing cos() for every window.
var (
	cosTableMu    sync.Mutex
	cosTableCache = map[int][]float64{}
)

func cosTable(n int) []float64 {
	cosTableMu.Lock()
	defer cosTableMu.Unlock()
	if t, ok := cosTableCache[n]; ok {
		return t
	}
	t := make([]float64, n*n)
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			t[k*n+i] = math.Cos(math.Pi / float64(n) * (float64(i) + 0.5) * float64(k))
		}
	}
	cosTableCache[n] = t
	return t
}

// dct computes a type-II discrete cosine transform of in using the
// memoized cosine table, with the conventional scale factor of 2.
func dct(in []float64) []float64 {
	n := len(in)
	table := cosTable(n)
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		var sum float64
		row := table[k*n : (k+1)*n]
		for i, v := range in {
			sum += v * row[i]
		}
		out[k] = 2 * sum
	}
	return out
}

// MFCC computes numCoefficients (clamped to [1, 40]) mel-frequency
// cepstral coefficients from a magnitude spectrum. It returns nil if the
// filter bank is too small to produce any bands.
func MFCC(amp []float64, sampleRate, numFilters, numCoefficients int) []float64 {
	if numCoefficients < 1 {
		numCoefficients = 1
	}
	if numCoefficients > 40 {
		numCoefficients = 40
	}
	if numFilters < numCoefficients {
		return nil
	}
	bank := newMelFilterBank(numFilters, len(amp), sampleRate)
	bands := bank.MelBands(PowerSpectrum(amp))
	coeffs := dct(bands)
	if len(coeffs) < numCoefficients {
		return coeffs
	}
	return coeffs[:numCoefficients]
}
