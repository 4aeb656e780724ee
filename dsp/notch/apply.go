package notch

import "github.com/jamesthoughton/bandstop/dsp/detect"

// Apply removes the given bands from x with zero-phase notch filters
// applied in order, each filter reading the previous filter's output.
// Bands whose notch cannot be synthesized, such as a center outside
// (0, Nyquist), are skipped and returned. With no applicable bands the
// input values come back unchanged.
func Apply(bands []detect.Band, x []float64, sampleRate float64) (cleaned []float64, skipped []detect.Band) {
	cleaned = x
	for _, b := range bands {
		c, err := ForBand(b.LowHz, b.HighHz, sampleRate)
		if err != nil {
			skipped = append(skipped, b)
			continue
		}
		cleaned = FiltFilt(c, cleaned)
	}
	return cleaned, skipped
}
