package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireNearlyEqual fails t if got and want differ in length or if any
// sample pair differs by more than eps.
func RequireNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	d, at, err := MaxAbsDiff(got, want)
	if err != nil {
		t.Fatal(err)
	}
	if d > eps {
		t.Fatalf("sample %d: got %v, want %v (diff %v > eps %v)", at, got[at], want[at], d, eps)
	}
}

// RequireFinite fails t on the first NaN or Inf in data.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute difference between a and b and
// the first index where it occurs.
func MaxAbsDiff(a, b []float64) (diff float64, at int, err error) {
	if len(a) != len(b) {
		return 0, 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > diff {
			diff, at = d, i
		}
	}
	return diff, at, nil
}

// MaxPCMDiff is MaxAbsDiff for 16-bit PCM, in LSBs.
func MaxPCMDiff(a, b []int16) (diff, at int, err error) {
	if len(a) != len(b) {
		return 0, 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		if d > diff {
			diff, at = d, i
		}
	}
	return diff, at, nil
}
