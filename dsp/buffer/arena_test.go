package buffer

import "testing"

func TestNewArenaRejectsInvalidSizes(t *testing.T) {
	if _, err := NewArena[float64](0, 16); err == nil {
		t.Fatal("expected error for zero count")
	}
	if _, err := NewArena[float64](4, -1); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestReserveReleaseIsLIFO(t *testing.T) {
	a, err := NewArena[float64](3, 8)
	if err != nil {
		t.Fatalf("NewArena() error = %v", err)
	}

	first, ok := a.Reserve()
	if !ok || len(first) != 8 || cap(first) != 8 {
		t.Fatalf("Reserve() = len %d cap %d ok %v", len(first), cap(first), ok)
	}
	first[0] = 1

	mark := a.Mark()
	second, _ := a.Reserve()
	second[0] = 2
	a.Release(mark)

	again, ok := a.Reserve()
	if !ok {
		t.Fatal("Reserve() after Release failed")
	}
	if again[0] != 2 {
		t.Fatalf("expected reuse of released buffer, got %v", again[0])
	}
	if first[0] != 1 {
		t.Fatal("reserved buffers must not overlap")
	}
	if a.Used() != 2 {
		t.Fatalf("Used() = %d, want 2", a.Used())
	}
}

func TestReserveExhaustion(t *testing.T) {
	a, err := NewArena[uint32](2, 4)
	if err != nil {
		t.Fatalf("NewArena() error = %v", err)
	}

	if _, ok := a.Reserve(); !ok {
		t.Fatal("first Reserve() failed")
	}
	if _, ok := a.Reserve(); !ok {
		t.Fatal("second Reserve() failed")
	}
	if _, ok := a.Reserve(); ok {
		t.Fatal("Reserve() past capacity must fail")
	}

	a.Reset()
	if a.Used() != 0 {
		t.Fatalf("Used() after Reset = %d, want 0", a.Used())
	}
}

func TestReserveNAllOrNothing(t *testing.T) {
	a, err := NewArena[float64](3, 2)
	if err != nil {
		t.Fatalf("NewArena() error = %v", err)
	}

	bufs := make([][]float64, 4)
	if a.ReserveN(bufs) {
		t.Fatal("ReserveN() beyond capacity must fail")
	}
	if a.Used() != 0 {
		t.Fatalf("failed ReserveN() reserved %d buffers", a.Used())
	}

	if !a.ReserveN(bufs[:3]) {
		t.Fatal("ReserveN() within capacity failed")
	}
	for i, b := range bufs[:3] {
		if len(b) != 2 {
			t.Fatalf("bufs[%d] len = %d, want 2", i, len(b))
		}
	}
}
