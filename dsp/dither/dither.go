package dither

import (
	"fmt"
	"strings"
)

// Type selects the probability distribution of the dither noise.
type Type int

const (
	// None rounds without adding noise.
	None Type = iota
	// Rectangular adds uniform noise of one LSB peak.
	Rectangular
	// Triangular adds TPDF noise, the sum of two uniform draws.
	Triangular

	typeCount
)

var typeNames = [typeCount]string{"none", "rect", "tpdf"}

func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is a known dither type.
func (t Type) Valid() bool { return t >= 0 && t < typeCount }

// ParseType returns the Type named s.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range typeNames {
		if n == s {
			return Type(i), nil
		}
	}
	return None, fmt.Errorf("dither: unknown type %q", s)
}

// Shaping selects the noise-shaping filter.
type Shaping int

const (
	// ShapingNone leaves the quantization error white.
	ShapingNone Shaping = iota
	// ShapingEFB is first-order error feedback.
	ShapingEFB
	// Shaping9FC is a 9th-order F-weighted curve.
	Shaping9FC
	// ShapingSharp is a sharp 15 kHz curve chosen for the sample rate.
	ShapingSharp

	shapingCount
)

var shapingNames = [shapingCount]string{"none", "efb", "9fc", "sharp"}

func (s Shaping) String() string {
	if s.Valid() {
		return shapingNames[s]
	}
	return fmt.Sprintf("Shaping(%d)", int(s))
}

// Valid reports whether s is a known shaping filter.
func (s Shaping) Valid() bool { return s >= 0 && s < shapingCount }

// ParseShaping returns the Shaping named s.
func ParseShaping(s string) (Shaping, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range shapingNames {
		if n == s {
			return Shaping(i), nil
		}
	}
	return ShapingNone, fmt.Errorf("dither: unknown shaping %q", s)
}

// coefficients returns the error-feedback taps for s at sampleRate.
func (s Shaping) coefficients(sampleRate int) []float64 {
	switch s {
	case ShapingEFB:
		return coeffEFB
	case Shaping9FC:
		return coeff9FC
	case ShapingSharp:
		return sharpForSampleRate(sampleRate)
	default:
		return nil
	}
}

var coeffEFB = []float64{1}

var coeff9FC = []float64{
	2.412, -3.370, 3.937, -4.174, 3.353,
	-2.205, 1.281, -0.569, 0.0847,
}

var (
	coeffSharp40000 = []float64{
		0.919387305668676, -1.04843437730544,
		1.04843048925451, -0.868972788711174,
		0.60853001063849, -0.3449209471469,
		0.147484332561636, -0.0370652871194614,
	}
	coeffSharp44100 = []float64{
		1.34860378444905, -1.80123976889643,
		2.04804746376671, -1.93234174830592,
		1.59264693241396, -1.04979311664936,
		0.599422666305319, -0.213194268754789,
	}
	coeffSharp48000 = []float64{
		1.4247141061364, -1.5437678148854,
		1.0967969510044, -0.32075758107035,
		-0.32074811729292, 0.525494723539046,
		-0.38058984415197, 0.14824460513256,
	}
	coeffSharp64000 = []float64{
		2.49725554745212, -3.23587161287721,
		2.31844946822861, -0.54326047010533,
		-0.54325301319653, 0.543289788745007,
		-0.142132484905, -0.0202120370327948,
	}
	coeffSharp96000 = []float64{
		3.14014081409305, -3.76888037179035,
		1.26107138314221, 1.26088059917107,
		-0.807698715053922, -0.80767075968406,
		1.0101984930848, -0.322351688402064,
	}
)

func sharpForSampleRate(rate int) []float64 {
	switch {
	case rate < 41000:
		return coeffSharp40000
	case rate < 46000:
		return coeffSharp44100
	case rate < 55000:
		return coeffSharp48000
	case rate < 75100:
		return coeffSharp64000
	default:
		return coeffSharp96000
	}
}
