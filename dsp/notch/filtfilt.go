package notch

// FiltFilt applies the filter forward, then backward with the same
// coefficients, so the output stays time-aligned with the input. The
// effective filter order doubles and the stopband attenuation is
// squared. The input is not modified.
func FiltFilt(c Coefficients, x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)

	s := NewSection(c)
	s.ProcessBlock(out)

	reverse(out)
	s.Reset()
	s.ProcessBlock(out)
	reverse(out)

	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
