// Package detect extracts tentative interference bands from magnitude
// spectra and confirms them by clustering detections across windows.
package detect

import (
	"math"
	"sort"
)

// numEdges is how many rising and falling spectral edges are considered
// per window.
const numEdges = 3

// Candidate is a tentative interference band observed in one window.
type Candidate struct {
	LowHz  float64
	HighHz float64
}

// Edges returns the indices of the strongest rising and falling edges of
// the spectrum's first difference. Bins below fftSize/4 are ignored to
// suppress spurious DC and low-frequency edges. Only strictly positive
// (rising) and strictly negative (falling) differences qualify, so a
// flat or silent spectrum yields no edges.
func Edges(spectrum []float64, fftSize int) (rising, falling []int) {
	if len(spectrum) < 2 {
		return nil, nil
	}
	diff := make([]float64, len(spectrum)-1)
	for i := range diff {
		diff[i] = spectrum[i+1] - spectrum[i]
	}

	cutoff := fftSize / 4
	if cutoff >= len(diff) {
		return nil, nil
	}

	rising = topIndices(diff, cutoff, numEdges, false)
	falling = topIndices(diff, cutoff, numEdges, true)
	return rising, falling
}

// Pair converts edge indices to Hz and emits a Candidate for every
// rising edge followed by a falling edge closer than maxPairDistHz. The
// ordering requirement keeps the pairing peak-shaped: a rise into a
// narrow band and a fall out of it. A dip in the spectrum presents the
// opposite order and is never paired, so the trough a notch filter
// leaves behind cannot be re-detected as interference.
func Pair(rising, falling []int, sampleRate, fftSize int, maxPairDistHz float64) []Candidate {
	binHz := func(idx int) float64 {
		return float64(idx) * float64(sampleRate) / float64(fftSize)
	}

	var out []Candidate
	for _, f := range falling {
		for _, r := range rising {
			if r >= f {
				continue
			}
			fHz, rHz := binHz(f), binHz(r)
			if math.Abs(fHz-rHz) < maxPairDistHz {
				out = append(out, Candidate{LowHz: rHz, HighHz: fHz})
			}
		}
	}
	return out
}

// Extract runs Edges and Pair on one window's spectrum. fftSize is the
// window's own point count, which also fixes the bin spacing
// sampleRate/fftSize.
func Extract(spectrum []float64, sampleRate, fftSize int, maxPairDistHz float64) []Candidate {
	rising, falling := Edges(spectrum, fftSize)
	return Pair(rising, falling, sampleRate, fftSize, maxPairDistHz)
}

// topIndices returns up to k indices >= cutoff ordered by descending
// difference magnitude; negate selects the most negative differences
// instead. Ties resolve to the lower index. Indices whose difference is
// not strictly on the requested side of zero are excluded.
func topIndices(diff []float64, cutoff, k int, negate bool) []int {
	idx := make([]int, 0, len(diff)-cutoff)
	for i := cutoff; i < len(diff); i++ {
		v := diff[i]
		if negate {
			v = -v
		}
		if v > 0 {
			idx = append(idx, i)
		}
	}

	sort.Slice(idx, func(a, b int) bool {
		va, vb := diff[idx[a]], diff[idx[b]]
		if negate {
			va, vb = -va, -vb
		}
		if va != vb {
			return va > vb
		}
		return idx[a] < idx[b]
	})

	if len(idx) > k {
		idx = idx[:k]
	}
	return idx
}
