// Package testutil provides deterministic signals and tolerance helpers
// for tests.
package testutil

import (
	"math"
	"math/rand"
)

// Sine generates a deterministic sine wave.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise generates white noise with a fixed seed for reproducibility.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// ToneInNoise sums a sine and seeded noise, the standard fixture for
// detection tests.
func ToneInNoise(freqHz, sampleRate, toneAmp, noiseAmp float64, seed int64, length int) []float64 {
	out := Sine(freqHz, sampleRate, toneAmp, length)
	noise := Noise(seed, noiseAmp, length)
	for i := range out {
		out[i] += noise[i]
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}
