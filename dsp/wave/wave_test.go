package wave

import (
	"math"
	"testing"
)

func TestInitIsIdempotent(t *testing.T) {
	Init()
	a := Get(Saw)
	Init()
	b := Get(Saw)
	if a != b {
		t.Fatal("Get() returned different tables across Init calls")
	}
	if &a.LUT[0] != &b.LUT[0] {
		t.Fatal("tables were rebuilt")
	}
}

func TestGetUnknown(t *testing.T) {
	if Get(ID(99)) != nil {
		t.Fatal("Get() of unknown id must return nil")
	}
}

func TestTablesAreNormalized(t *testing.T) {
	for _, id := range IDs() {
		t.Run(id.String(), func(t *testing.T) {
			tab := Get(id)
			if len(tab.LUT) != Len || len(tab.PILUT) != Len {
				t.Fatalf("table lengths %d/%d, want %d", len(tab.LUT), len(tab.PILUT), Len)
			}

			var peak float64
			for i := range tab.LUT {
				if tab.LUT[i] < -1 || tab.LUT[i] > 1 {
					t.Fatalf("LUT[%d] = %v outside [-1,1]", i, tab.LUT[i])
				}
				peak = math.Max(peak, math.Abs(tab.PILUT[i]))
			}
			if math.Abs(peak-1) > 1e-12 {
				t.Fatalf("PILUT peak = %v, want 1", peak)
			}
			if tab.Scale <= 0 {
				t.Fatalf("Scale = %v, want > 0", tab.Scale)
			}
		})
	}
}

func TestDiffReproducesSmoothWaves(t *testing.T) {
	const delta = int32(1 << 22) // about 1/1024 of a cycle

	for _, id := range []ID{Sin, Tri, Saw, Srs, Ssr} {
		t.Run(id.String(), func(t *testing.T) {
			tab := Get(id)
			f := shapes[id]
			for _, x := range []float64{0.1, 0.3, 0.6, 0.85} {
				p0 := uint32(x * (1 << 32))
				p1 := p0 + uint32(delta)
				got := tab.Diff(tab.Integral(p0), tab.Integral(p1), delta)
				mid := x + float64(delta)/(1<<33)
				want := f(mid)
				if math.Abs(got-want) > 2e-3 {
					t.Fatalf("x=%v: Diff = %v, want %v", x, got, want)
				}
			}
		})
	}
}

func TestDiffAveragesAcrossEdges(t *testing.T) {
	tab := Get(Sqr)

	// Quarter-cycle steps on either side of the mid-cycle edge average to
	// the two levels of the square.
	const quarter = 1 << 30
	high := tab.Diff(tab.Integral(0), tab.Integral(quarter), quarter)
	low := tab.Diff(tab.Integral(2*quarter), tab.Integral(3*quarter), quarter)
	if math.Abs(high-1) > 1e-6 {
		t.Fatalf("first quarter average = %v, want 1", high)
	}
	if math.Abs(low+1) > 1e-6 {
		t.Fatalf("third quarter average = %v, want -1", low)
	}

	// A step straddling the edge averages both levels.
	mid := tab.Diff(tab.Integral(quarter), tab.Integral(3*quarter), 2*quarter-1)
	if math.Abs(mid) > 1e-3 {
		t.Fatalf("straddling average = %v, want 0", mid)
	}
}

func TestPhaseAdjMarksRisingDCCrossing(t *testing.T) {
	tests := []struct {
		id   ID
		want uint32
	}{
		{id: Sin, want: 0},
		{id: Sqr, want: 0},
		{id: Tri, want: 1 << 30},
		{id: Saw, want: 1 << 31},
	}
	for _, tt := range tests {
		if got := Get(tt.id).PhaseAdj; got != tt.want {
			t.Fatalf("%s PhaseAdj = %#x, want %#x", tt.id, got, tt.want)
		}
	}

	hrs := Get(Hrs)
	if v := hrs.Sample(hrs.PhaseAdj); math.Abs(v-hrs.Offset) > 0.01 {
		t.Fatalf("hrs at PhaseAdj = %v, want near DC %v", v, hrs.Offset)
	}
}

func TestParse(t *testing.T) {
	for _, id := range IDs() {
		got, err := Parse(id.String())
		if err != nil || got != id {
			t.Fatalf("Parse(%q) = %v, %v", id.String(), got, err)
		}
	}
	if _, err := Parse("organ"); err == nil {
		t.Fatal("expected error for unknown wave")
	}
}
