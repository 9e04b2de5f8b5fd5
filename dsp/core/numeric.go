package core

import "math"

// denormalFloor is the magnitude below which recursive state is zeroed.
const denormalFloor = 1e-30

// Clamp limits x to [lo, hi]. Swapped bounds are reordered.
func Clamp(x, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, x))
}

// FlushDenormals returns 0 for values closer to zero than 1e-30, so that
// feedback state decaying toward silence does not linger in the subnormal
// range.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalFloor {
		return 0
	}
	return x
}

// LinearToDB converts an amplitude to dB (20*log10). Zero maps to -Inf and
// negative values to NaN.
func LinearToDB(amp float64) float64 {
	return toDB(amp, 20)
}

// PowerToDB converts a power or power ratio to dB (10*log10). Zero maps to
// -Inf and negative values to NaN.
func PowerToDB(power float64) float64 {
	return toDB(power, 10)
}

func toDB(v, scale float64) float64 {
	switch {
	case v < 0:
		return math.NaN()
	case v == 0:
		return math.Inf(-1)
	}
	return scale * math.Log10(v)
}
