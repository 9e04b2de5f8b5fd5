package interp

// Linear2 interpolates between x0 and x1 at t in [0,1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// PhaseIndex splits a 32-bit phase into a table index and fraction for a
// table of 1<<bits entries.
func PhaseIndex(phase uint32, bits uint) (int, float64) {
	shift := 32 - bits
	i := int(phase >> shift)
	frac := float64(phase&(1<<shift-1)) / float64(uint64(1)<<shift)
	return i, frac
}

// Table reads table at phase with linear interpolation. len(table) must be
// 1<<bits.
func Table(table []float64, bits uint, phase uint32) float64 {
	mask := len(table) - 1
	i, frac := PhaseIndex(phase, bits)
	return Linear2(frac, table[i], table[(i+1)&mask])
}

// TableHermite reads table at phase with 4-point Hermite interpolation.
// len(table) must be 1<<bits.
func TableHermite(table []float64, bits uint, phase uint32) float64 {
	mask := len(table) - 1
	i, frac := PhaseIndex(phase, bits)
	return Hermite4(frac,
		table[(i-1)&mask],
		table[i],
		table[(i+1)&mask],
		table[(i+2)&mask],
	)
}
