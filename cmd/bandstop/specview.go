package main

import (
	"fmt"
	"io"
	"strings"
)

// spectrumView renders each window's magnitude spectrum as a one-line
// text chart with markers on the bins the extractor flagged. Output
// goes to stderr and never feeds back into the pipeline.
type spectrumView struct {
	w     io.Writer
	width int
}

func newSpectrumView(w io.Writer) *spectrumView {
	return &spectrumView{w: w, width: 72}
}

var levelRunes = []rune(" .:-=+*#%@")

// Render draws spectrum magnitudes downsampled to a fixed width, with a
// second line marking rising (^) and falling (v) edge bins.
func (v *spectrumView) Render(channel, window int, spectrum []float64, rising, falling []int) {
	if len(spectrum) == 0 {
		return
	}

	peak := 0.0
	for _, m := range spectrum {
		if m > peak {
			peak = m
		}
	}

	cols := v.width
	if cols > len(spectrum) {
		cols = len(spectrum)
	}
	binsPerCol := (len(spectrum) + cols - 1) / cols

	chart := make([]rune, cols)
	for c := range chart {
		maxMag := 0.0
		for i := c * binsPerCol; i < (c+1)*binsPerCol && i < len(spectrum); i++ {
			if spectrum[i] > maxMag {
				maxMag = spectrum[i]
			}
		}
		level := 0
		if peak > 0 {
			level = int(maxMag / peak * float64(len(levelRunes)-1))
		}
		chart[c] = levelRunes[level]
	}

	marks := []rune(strings.Repeat(" ", cols))
	for _, idx := range rising {
		if c := idx / binsPerCol; c < cols {
			marks[c] = '^'
		}
	}
	for _, idx := range falling {
		if c := idx / binsPerCol; c < cols {
			marks[c] = 'v'
		}
	}

	fmt.Fprintf(v.w, "ch %d win %4d |%s|\n", channel, window, string(chart))
	fmt.Fprintf(v.w, "             |%s|\n", string(marks))
}
