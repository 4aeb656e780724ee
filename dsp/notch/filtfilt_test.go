package notch

import (
	"math"
	"testing"

	"github.com/jamesthoughton/bandstop/internal/testutil"
)

func middleRMS(x []float64) float64 {
	mid := x[len(x)/4 : 3*len(x)/4]
	sum := 0.0
	for _, v := range mid {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(mid)))
}

func TestFiltFiltPreservesInput(t *testing.T) {
	c, err := ForBand(900, 1100, 8000)
	if err != nil {
		t.Fatal(err)
	}
	in := testutil.Noise(3, 1, 512)
	orig := make([]float64, len(in))
	copy(orig, in)

	out := FiltFilt(c, in)
	if len(out) != len(in) {
		t.Fatalf("output length = %d, want %d", len(out), len(in))
	}
	testutil.RequireSliceEqual(t, in, orig)
}

func TestFiltFiltZeroPhase(t *testing.T) {
	c, err := ForBand(900, 1100, 8000)
	if err != nil {
		t.Fatal(err)
	}

	// Forward-backward filtering of a centered impulse gives a response
	// symmetric about the impulse position.
	const n, pos = 4096, 2048
	out := FiltFilt(c, testutil.Impulse(n, pos))
	testutil.RequireFinite(t, out)

	for k := 1; k < 1500; k++ {
		if d := math.Abs(out[pos+k] - out[pos-k]); d > 1e-9 {
			t.Fatalf("asymmetry at offset %d: %v", k, d)
		}
	}
}

func TestFiltFiltRemovesCenterTone(t *testing.T) {
	c, err := ForBand(2950, 3050, 8000)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.Sine(3000, 8000, 1, 8000)
	before := middleRMS(in)
	after := middleRMS(FiltFilt(c, in))

	if after > before/20 {
		t.Fatalf("center tone RMS %v -> %v, want at least 20x attenuation", before, after)
	}
}

func TestFiltFiltKeepsOffBandTone(t *testing.T) {
	c, err := ForBand(2950, 3050, 8000)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.Sine(1000, 8000, 1, 8000)
	before := middleRMS(in)
	after := middleRMS(FiltFilt(c, in))

	if math.Abs(after-before)/before > 0.02 {
		t.Fatalf("off-band tone RMS %v -> %v, want unchanged within 2%%", before, after)
	}
}
