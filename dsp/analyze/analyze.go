// Package analyze slices a channel into fixed-duration windows and
// computes a magnitude spectrum per window.
package analyze

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Analyzer computes per-window magnitude spectra for one channel at a
// fixed sample rate. It is not safe for concurrent use; per-channel
// workers each own their own Analyzer.
type Analyzer struct {
	sampleRate int
	windowMs   int
	points     int

	fft *fourier.FFT // cached plan for full-size windows
}

// New creates an Analyzer for the given sample rate and window duration
// in milliseconds.
func New(sampleRate, windowMs int) (*Analyzer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("analyze: sample rate must be > 0: %d", sampleRate)
	}
	if windowMs <= 0 {
		return nil, fmt.Errorf("analyze: window duration must be > 0: %d ms", windowMs)
	}
	points := windowMs * sampleRate / 1000
	if points < 4 {
		return nil, fmt.Errorf("analyze: window of %d ms at %d Hz holds only %d samples", windowMs, sampleRate, points)
	}
	return &Analyzer{
		sampleRate: sampleRate,
		windowMs:   windowMs,
		points:     points,
	}, nil
}

// SampleRate returns the configured sample rate in Hz.
func (a *Analyzer) SampleRate() int { return a.sampleRate }

// PointsPerWindow returns the number of samples per full window.
func (a *Analyzer) PointsPerWindow() int { return a.points }

// Windows returns a restartable iterator over consecutive,
// non-overlapping windows of the channel. The final window may be
// shorter than PointsPerWindow if the channel length is not an exact
// multiple; it is still yielded.
func (a *Analyzer) Windows(samples []float64) *WindowIter {
	return &WindowIter{samples: samples, points: a.points}
}

// WindowIter walks a channel window by window. The zero position is
// before the first window; call Next before Window.
type WindowIter struct {
	samples []float64
	points  int

	start, end int
	started    bool
}

// Next advances to the next window and reports whether one exists.
func (it *WindowIter) Next() bool {
	if !it.started {
		it.started = true
	} else {
		it.start = it.end
	}
	if it.start >= len(it.samples) {
		return false
	}
	it.end = it.start + it.points
	if it.end > len(it.samples) {
		it.end = len(it.samples)
	}
	return true
}

// Window returns the current window. The slice aliases the channel.
func (it *WindowIter) Window() []float64 {
	return it.samples[it.start:it.end]
}

// Index returns the zero-based index of the current window.
func (it *WindowIter) Index() int {
	return it.start / it.points
}

// Reset rewinds the iterator to before the first window.
func (it *WindowIter) Reset() {
	it.start, it.end = 0, 0
	it.started = false
}

// Spectrum computes the magnitude of the window's discrete Fourier
// transform, truncated to the first len(window)/2 - 1 bins; the
// Nyquist-redundant half is discarded. Windows too short to produce a
// bin return nil.
func (a *Analyzer) Spectrum(window []float64) []float64 {
	n := len(window)
	half := n/2 - 1
	if half <= 0 {
		return nil
	}

	var plan *fourier.FFT
	if n == a.points {
		if a.fft == nil {
			a.fft = fourier.NewFFT(n)
		}
		plan = a.fft
	} else {
		// Tail window with its own length.
		plan = fourier.NewFFT(n)
	}

	coeffs := plan.Coefficients(nil, window)

	re := make([]float64, half)
	im := make([]float64, half)
	for i := 0; i < half; i++ {
		re[i] = real(coeffs[i])
		im[i] = imag(coeffs[i])
	}

	out := make([]float64, half)
	vecmath.Magnitude(out, re, im)
	return out
}
