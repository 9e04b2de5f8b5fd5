package interp

import "testing"

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestLinear2(t *testing.T) {
	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("Linear2 got %v want 2.5", got)
	}
}

func TestPhaseIndex(t *testing.T) {
	i, frac := PhaseIndex(0x80000000, 2)
	if i != 2 || frac != 0 {
		t.Fatalf("PhaseIndex(half) = %d, %v; want 2, 0", i, frac)
	}

	i, frac = PhaseIndex(0x20000000, 2)
	if i != 0 || frac != 0.5 {
		t.Fatalf("PhaseIndex(eighth) = %d, %v; want 0, 0.5", i, frac)
	}
}

func TestTableWraps(t *testing.T) {
	table := []float64{0, 1, 2, 3}

	// Halfway between the last entry and the first.
	got := Table(table, 2, 0xE0000000)
	if got != 1.5 {
		t.Fatalf("Table wrap got %v want 1.5", got)
	}

	// Hermite reproduces the stored points exactly.
	for i := range table {
		phase := uint32(i) << 30
		if got := TableHermite(table, 2, phase); got != table[i] {
			t.Fatalf("TableHermite(%d) = %v, want %v", i, got, table[i])
		}
	}
}
