// Package notch synthesizes second-order IIR notch filters and applies
// them with zero-phase (forward-backward) filtering.
package notch

import (
	"errors"
	"math"
)

var (
	ErrInvalidCenter     = errors.New("notch: center frequency must lie in (0, Nyquist)")
	ErrInvalidQ          = errors.New("notch: quality factor must be positive and finite")
	ErrInvalidSampleRate = errors.New("notch: sample rate must be positive and finite")
)

// MinBandWidthHz is the floor applied to a band's width before the
// quality factor is derived. It keeps near-zero-width bands from
// producing numerically unstable filters.
const MinBandWidthHz = 10.0

// Coefficients holds the transfer function of a single second-order
// section with a0 normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Design returns RBJ notch coefficients centered at freq (Hz) with
// quality factor q.
func Design(freq, q, sampleRate float64) (Coefficients, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Coefficients{}, ErrInvalidSampleRate
	}
	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return Coefficients{}, ErrInvalidCenter
	}
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return Coefficients{}, ErrInvalidQ
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := 1.0
	b1 := -2 * cw
	b2 := 1.0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}, nil
}

// ForBand derives a notch for a confirmed interference band: the center
// is the band midpoint, the width is floored at MinBandWidthHz, and the
// quality factor is 2*center/width.
func ForBand(lowHz, highHz, sampleRate float64) (Coefficients, error) {
	center := (lowHz + highHz) / 2
	width := math.Abs(highHz - lowHz)
	if width < MinBandWidthHz {
		width = MinBandWidthHz
	}
	q := 2 * center / width
	return Design(center, q, sampleRate)
}
