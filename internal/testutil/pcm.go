package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Channel extracts channel ch of interleaved PCM as floats in [-1, 1].
func Channel(pcm []int16, channels, ch int) []float64 {
	out := make([]float64, 0, len(pcm)/channels)
	for i := ch; i < len(pcm); i += channels {
		out = append(out, core.PCM16ToFloat(pcm[i]))
	}
	return out
}

// RMS returns the root mean square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// ZeroCrossings counts sign changes in x. Zeros do not start or end a
// crossing.
func ZeroCrossings(x []float64) int {
	n := 0
	prev := 0.0
	for _, v := range x {
		if v == 0 {
			continue
		}
		if prev != 0 && (v > 0) != (prev > 0) {
			n++
		}
		prev = v
	}
	return n
}

// RequireSilent fails t if any sample is non-zero.
func RequireSilent(t *testing.T, pcm []int16) {
	t.Helper()
	for i, s := range pcm {
		if s != 0 {
			t.Fatalf("index %d: got %d, want silence", i, s)
		}
	}
}

// RequirePCMEqual fails t unless got and want are identical.
func RequirePCMEqual(t *testing.T, got, want []int16) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}
