package window

import (
	"math"
	"testing"
)

func TestGenerate(t *testing.T) {
	for typ := TypeHann; typ < typeCount; typ++ {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 65)
			if len(w) != 65 {
				t.Fatalf("len=%d, want 65", len(w))
			}
			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
				if d := math.Abs(v - w[64-i]); d > 1e-12 {
					t.Fatalf("not symmetric at %d: %v vs %v", i, v, w[64-i])
				}
			}
			if math.Abs(w[32]-1) > 1e-6 {
				t.Fatalf("centre = %v, want 1", w[32])
			}
		})
	}
}

func TestGenerateEdges(t *testing.T) {
	if Generate(TypeHann, 0) != nil {
		t.Fatal("zero length should return nil")
	}
	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 0 {
		t.Fatalf("Generate(Hann, 1) = %v", w)
	}
	sym := Generate(TypeHann, 8)
	per := Generate(TypeHann, 8, WithPeriodic())
	if math.Abs(sym[7]-sym[0]) > 1e-12 || math.Abs(per[7]-per[0]) < 1e-3 {
		t.Fatalf("periodic form not distinct: sym=%v per=%v", sym, per)
	}
	if per[4] != 1 {
		t.Fatalf("periodic peak = %v, want 1", per[4])
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		typ      Type
		cg, enbw float64
	}{
		{TypeRectangular, 1, 1},
		{TypeHann, 0.5, 1.5},
		{TypeBlackmanHarris4Term, 0.35875, 2.0044},
	}
	for _, tt := range tests {
		a := Analyze(Generate(tt.typ, 4096, WithPeriodic()))
		if math.Abs(a.CoherentGain-tt.cg) > 1e-6 {
			t.Fatalf("%v: coherent gain = %v, want %v", tt.typ, a.CoherentGain, tt.cg)
		}
		if math.Abs(a.ENBW-tt.enbw) > 1e-3 {
			t.Fatalf("%v: ENBW = %v, want %v", tt.typ, a.ENBW, tt.enbw)
		}
	}
	if a := Analyze(nil); a != (Analysis{}) {
		t.Fatalf("Analyze(nil) = %+v", a)
	}
}

func TestApply(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	Apply(TypeHann, buf)
	want := []float64{0, 1, 2, 1, 0}
	for i := range buf {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("Apply = %v, want %v", buf, want)
		}
	}
	Apply(TypeHann, nil)
}

func TestParse(t *testing.T) {
	for typ := TypeHann; typ < typeCount; typ++ {
		got, err := Parse(typ.String())
		if err != nil || got != typ {
			t.Fatalf("Parse(%q) = %v, %v", typ, got, err)
		}
	}
	if _, err := Parse("kaiser"); err == nil {
		t.Fatal("expected error")
	}
	if Type(99).String() != "Type(99)" {
		t.Fatal("unexpected fallback name")
	}
}
