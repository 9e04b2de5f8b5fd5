package line

import "math"

const (
	expCurveK   = 6.0
	decayCurveK = 10.0
)

var (
	expCurveNorm   = 1 / (math.Exp(expCurveK) - 1)
	decayCurveNorm = 1 / (math.Exp(decayCurveK) - 1)
)

// shape returns the normalized progress in [0,1] at position pos of a span,
// where x = pos/span. rising tells direction-dependent shapes which branch
// to use.
func shape(t Type, x float64, rising bool, seed uint32, pos int) float64 {
	switch t {
	case Hold:
		return 0
	case Lin:
		return x
	case Cos:
		return cosCurve(x)
	case Exp:
		if rising {
			return xpe(x)
		}
		return lge(x)
	case Log:
		if rising {
			return lge(x)
		}
		return xpe(x)
	case Xpe:
		return xpe(x)
	case Lge:
		return lge(x)
	case Sqe:
		if x < 0.5 {
			return 2 * x * x
		}
		y := 1 - x
		return 1 - 2*y*y
	case Cub:
		if x < 0.5 {
			return 4 * x * x * x
		}
		y := 1 - x
		return 1 - 4*y*y*y
	case Smooth:
		return x * x * (3 - 2*x)
	case Noise:
		if pos == 0 {
			return 0
		}
		return noise(seed, pos)
	case NoiseLin:
		return perturb(x, seed, pos)
	case NoiseCos:
		return perturb(cosCurve(x), seed, pos)
	case Ead:
		if rising {
			return x * (2 - x)
		}
		y := 1 - x
		return 1 - (mathExp(decayCurveK*y)-1)*decayCurveNorm
	default:
		return x
	}
}

func cosCurve(x float64) float64 {
	return 0.5 - 0.5*math.Cos(math.Pi*x)
}

func xpe(x float64) float64 {
	return (mathExp(expCurveK*x) - 1) * expCurveNorm
}

func lge(x float64) float64 {
	return 1 - xpe(1-x)
}

// perturb displaces y by up to y*(1-y) in either direction, which keeps the
// result inside [0,1] and pins both endpoints.
func perturb(y float64, seed uint32, pos int) float64 {
	r := 2*noise(seed, pos) - 1
	return y + r*y*(1-y)
}

// noise hashes a sample position into [0,1).
func noise(seed uint32, pos int) float64 {
	x := uint32(pos)*0x9e3779b1 ^ seed
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return float64(x) / (1 << 32)
}
