package line

import "fmt"

// Type selects the interpolation shape of a line.
type Type uint8

const (
	// Hold keeps the start value until the end of the span.
	Hold Type = iota
	// Lin is a straight segment.
	Lin
	// Cos is a half-cosine segment.
	Cos
	// Exp uses Xpe when rising and Lge when falling.
	Exp
	// Log uses Lge when rising and Xpe when falling.
	Log
	// Xpe is a slow-start saturating exponential curve.
	Xpe
	// Lge is a fast-start logarithmic-like curve, the mirror image of Xpe.
	Lge
	// Sqe is a quadratic ease-in-out curve.
	Sqe
	// Cub is a cubic ease-in-out curve.
	Cub
	// Smooth is the smoothstep polynomial.
	Smooth
	// Noise jumps to a uniformly random value between the endpoints on
	// every sample.
	Noise
	// NoiseLin is a straight segment with noise bounded to the range.
	NoiseLin
	// NoiseCos is a half-cosine segment with noise bounded to the range.
	NoiseCos
	// Ead is a quick ease-out attack when rising and a steep exponential
	// decay when falling.
	Ead

	numTypes
)

var typeNames = [numTypes]string{
	Hold:     "hold",
	Lin:      "lin",
	Cos:      "cos",
	Exp:      "exp",
	Log:      "log",
	Xpe:      "xpe",
	Lge:      "lge",
	Sqe:      "sqe",
	Cub:      "cub",
	Smooth:   "smooth",
	Noise:    "noise",
	NoiseLin: "nlin",
	NoiseCos: "ncos",
	Ead:      "ead",
}

func (t Type) String() string {
	if t < numTypes {
		return typeNames[t]
	}
	return "unknown"
}

// Valid reports whether t names a known shape.
func (t Type) Valid() bool { return t < numTypes }

// Types returns all shapes in declaration order.
func Types() []Type {
	out := make([]Type, numTypes)
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

// ParseType resolves a shape by name.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("line: unknown type %q", name)
}
