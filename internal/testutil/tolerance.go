package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got and want have the same
// length and every sample pair is within eps of each other. An eps of
// zero demands exact equality.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range got {
		d := math.Abs(got[i] - want[i])
		if math.IsNaN(d) || d > eps {
			t.Fatalf("sample %d: got %v, want %v (off by %v)", i, got[i], want[i], d)
		}
	}
}

// RequireSliceEqual is RequireSliceNearlyEqual with zero tolerance.
func RequireSliceEqual(t *testing.T, got, want []float64) {
	t.Helper()
	RequireSliceNearlyEqual(t, got, want, 0)
}

// RequireFinite fails t if any sample is NaN or infinite.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d is %v", i, v)
		}
	}
}
