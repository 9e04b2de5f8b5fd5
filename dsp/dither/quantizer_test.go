package dither

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/core"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		rate, ch int
		opts     []Option
	}{
		{"zero rate", 0, 1, nil},
		{"zero channels", 44100, 0, nil},
		{"bad type", 44100, 1, []Option{WithType(Type(9))}},
		{"bad shaping", 44100, 1, []Option{WithShaping(Shaping(-1))}},
		{"negative amplitude", 44100, 1, []Option{WithAmplitude(-1)}},
		{"nan amplitude", 44100, 1, []Option{WithAmplitude(math.NaN())}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.rate, tc.ch, tc.opts...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNoneMatchesPlainRounding(t *testing.T) {
	q, err := New(44100, 1, WithType(None))
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{0, 0.25, -0.25, 1e-5, 0.999, -1, 1, 2, -3} {
		if got, want := q.PCM16(0, x), core.PCM16(x); got != want {
			t.Fatalf("PCM16(%v) = %d, want %d", x, got, want)
		}
	}
	if got := q.PCM16(0, math.NaN()); got != 0 {
		t.Fatalf("PCM16(NaN) = %d, want 0", got)
	}
}

func TestTriangularStaysWithinOneLSB(t *testing.T) {
	q, err := New(44100, 1, WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	const n = 20000
	for i := 0; i < n; i++ {
		v := q.PCM16(0, 0)
		if v < -1 || v > 1 {
			t.Fatalf("sample %d = %d, want within ±1", i, v)
		}
		sum += float64(v)
	}
	if mean := sum / n; math.Abs(mean) > 0.05 {
		t.Fatalf("mean = %v, want near 0", mean)
	}
}

func TestDitherLinearizesSmallSignals(t *testing.T) {
	// A constant of 0.3 LSB rounds to zero without dither but averages to
	// about 0.3 with it.
	q, err := New(44100, 1, WithType(Triangular), WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	x := 0.3 / 32767
	var sum float64
	const n = 40000
	for i := 0; i < n; i++ {
		sum += float64(q.PCM16(0, x))
	}
	if mean := sum / n; math.Abs(mean-0.3) > 0.05 {
		t.Fatalf("mean = %v, want about 0.3", mean)
	}
}

func TestSeedAndReset(t *testing.T) {
	run := func(q *Quantizer) []int16 {
		out := make([]int16, 256)
		for i := range out {
			out[i] = q.PCM16(i%2, 0.1*math.Sin(float64(i)*0.05))
		}
		return out
	}
	a, _ := New(48000, 2, WithSeed(42), WithShaping(ShapingSharp))
	b, _ := New(48000, 2, WithSeed(42), WithShaping(ShapingSharp))
	first := run(a)
	if got := run(b); !equal(first, got) {
		t.Fatal("same seed produced different output")
	}
	a.Reset()
	if got := run(a); !equal(first, got) {
		t.Fatal("Reset did not restore the initial state")
	}
	c, _ := New(48000, 2, WithSeed(43), WithShaping(ShapingSharp))
	if got := run(c); equal(first, got) {
		t.Fatal("different seeds produced identical output")
	}
}

func TestShapingKeepsSignal(t *testing.T) {
	for _, s := range []Shaping{ShapingEFB, Shaping9FC, ShapingSharp} {
		q, err := New(44100, 1, WithShaping(s), WithSeed(3))
		if err != nil {
			t.Fatal(err)
		}
		var sumErr float64
		const n = 4096
		for i := 0; i < n; i++ {
			x := 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
			sumErr += float64(q.PCM16(0, x)) - 32767*x
		}
		if mean := sumErr / n; math.Abs(mean) > 0.5 {
			t.Fatalf("%v: mean error = %v LSB, want near 0", s, mean)
		}
	}
}

func TestClipping(t *testing.T) {
	q, _ := New(44100, 1, WithShaping(Shaping9FC))
	for i := 0; i < 100; i++ {
		if v := q.PCM16(0, 4); v != 32767 {
			t.Fatalf("PCM16(4) = %d, want 32767", v)
		}
	}
}

func TestParse(t *testing.T) {
	for _, ty := range []Type{None, Rectangular, Triangular} {
		got, err := ParseType(ty.String())
		if err != nil || got != ty {
			t.Fatalf("ParseType(%q) = %v, %v", ty, got, err)
		}
	}
	for _, s := range []Shaping{ShapingNone, ShapingEFB, Shaping9FC, ShapingSharp} {
		got, err := ParseShaping(s.String())
		if err != nil || got != s {
			t.Fatalf("ParseShaping(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseType("pink"); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if _, err := ParseShaping("x"); err == nil {
		t.Fatal("expected error for unknown shaping")
	}
	if Type(7).String() != "Type(7)" || Shaping(9).String() != "Shaping(9)" {
		t.Fatal("unexpected fallback names")
	}
}

func equal(a, b []int16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
