package analyze

import (
	"math"
	"testing"

	"github.com/jamesthoughton/bandstop/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate int
		windowMs   int
	}{
		{"zero rate", 0, 100},
		{"negative rate", -8000, 100},
		{"zero window", 8000, 0},
		{"window too small", 1000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.sampleRate, tt.windowMs); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	a, err := New(8000, 500)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.PointsPerWindow(); got != 4000 {
		t.Fatalf("PointsPerWindow = %d, want 4000", got)
	}
}

func TestWindowsSplitAndPartialTail(t *testing.T) {
	a, err := New(1000, 4) // 4 samples per window
	if err != nil {
		t.Fatal(err)
	}

	samples := make([]float64, 10)
	for i := range samples {
		samples[i] = float64(i)
	}

	it := a.Windows(samples)
	var lengths []int
	var indices []int
	for it.Next() {
		lengths = append(lengths, len(it.Window()))
		indices = append(indices, it.Index())
	}

	wantLens := []int{4, 4, 2}
	if len(lengths) != len(wantLens) {
		t.Fatalf("window count = %d, want %d", len(lengths), len(wantLens))
	}
	for i := range wantLens {
		if lengths[i] != wantLens[i] {
			t.Fatalf("window %d length = %d, want %d", i, lengths[i], wantLens[i])
		}
		if indices[i] != i {
			t.Fatalf("window %d index = %d", i, indices[i])
		}
	}
}

func TestWindowsRestartable(t *testing.T) {
	a, err := New(1000, 4)
	if err != nil {
		t.Fatal(err)
	}

	it := a.Windows(make([]float64, 8))
	first := 0
	for it.Next() {
		first++
	}
	it.Reset()
	second := 0
	for it.Next() {
		second++
	}
	if first != 2 || second != 2 {
		t.Fatalf("iterator not restartable: %d then %d windows", first, second)
	}
}

func TestWindowsExactMultipleHasNoTail(t *testing.T) {
	a, err := New(1000, 4)
	if err != nil {
		t.Fatal(err)
	}
	it := a.Windows(make([]float64, 12))
	count := 0
	for it.Next() {
		if len(it.Window()) != 4 {
			t.Fatalf("window %d has %d samples", count, len(it.Window()))
		}
		count++
	}
	if count != 3 {
		t.Fatalf("window count = %d, want 3", count)
	}
}

func TestSpectrumLengthAndSilence(t *testing.T) {
	a, err := New(8000, 32) // 256 points per window
	if err != nil {
		t.Fatal(err)
	}

	spec := a.Spectrum(make([]float64, 256))
	if len(spec) != 127 {
		t.Fatalf("spectrum length = %d, want 127", len(spec))
	}
	testutil.RequireSliceNearlyEqual(t, spec, make([]float64, 127), 1e-9)
}

func TestSpectrumSinePeakBin(t *testing.T) {
	a, err := New(8000, 32) // 256 points, bins 31.25 Hz apart
	if err != nil {
		t.Fatal(err)
	}

	// 1000 Hz places exactly 32 cycles in the window: all energy in bin 32.
	win := testutil.Sine(1000, 8000, 1, 256)
	spec := a.Spectrum(win)
	testutil.RequireFinite(t, spec)

	peakBin := 0
	for i, m := range spec {
		if m > spec[peakBin] {
			peakBin = i
		}
	}
	if peakBin != 32 {
		t.Fatalf("peak bin = %d, want 32", peakBin)
	}
	if spec[32] < 100 {
		t.Fatalf("peak magnitude = %v, want about N/2 = 128", spec[32])
	}
	for i, m := range spec {
		if i != 32 && m > 1 {
			t.Fatalf("leakage at bin %d: %v", i, m)
		}
	}
}

func TestSpectrumTinyWindow(t *testing.T) {
	a, err := New(8000, 32)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Spectrum([]float64{1, 2, 3}); got != nil {
		t.Fatalf("tiny window spectrum = %v, want nil", got)
	}
}

func TestSpectrumTailUsesOwnLength(t *testing.T) {
	a, err := New(8000, 32)
	if err != nil {
		t.Fatal(err)
	}

	// A tail of 128 samples must be transformed at its own length:
	// 1000 Hz then lands on bin 16 (bins 62.5 Hz apart).
	win := testutil.Sine(1000, 8000, 1, 128)
	spec := a.Spectrum(win)
	if len(spec) != 63 {
		t.Fatalf("tail spectrum length = %d, want 63", len(spec))
	}
	peakBin := 0
	for i, m := range spec {
		if m > spec[peakBin] {
			peakBin = i
		}
	}
	if peakBin != 16 {
		t.Fatalf("tail peak bin = %d, want 16", peakBin)
	}
	if math.Abs(spec[16]-64) > 1 {
		t.Fatalf("tail peak magnitude = %v, want about 64", spec[16])
	}
}
