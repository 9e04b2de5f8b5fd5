package wave

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-synth/dsp/interp"
)

// ID selects a wave from the catalogue.
type ID uint8

const (
	// Sin is a sine wave.
	Sin ID = iota
	// Sqr is a square wave.
	Sqr
	// Tri is a triangle wave.
	Tri
	// Saw is a rising sawtooth.
	Saw
	// Ahs is an absolute (full-wave rectified) sine, one hump per cycle.
	Ahs
	// Hrs is a half-wave rectified sine.
	Hrs
	// Srs is a signed square root of sine, fuller than a sine.
	Srs
	// Ssr is a signed squared sine, thinner than a sine.
	Ssr

	numWaves
)

const (
	// LenBits is log2 of the table length.
	LenBits = 11
	// Len is the number of entries per table.
	Len = 1 << LenBits

	oversampleBits = 4
	fineBits       = LenBits + oversampleBits
	fineLen        = 1 << fineBits

	// crossingEps absorbs rounding when locating the DC crossing.
	crossingEps = 1e-9
)

var names = [numWaves]string{
	Sin: "sin",
	Sqr: "sqr",
	Tri: "tri",
	Saw: "saw",
	Ahs: "ahs",
	Hrs: "hrs",
	Srs: "srs",
	Ssr: "ssr",
}

// shapes define one cycle over x in [0,1) within [-1,1].
var shapes = [numWaves]func(x float64) float64{
	Sin: func(x float64) float64 { return math.Sin(2 * math.Pi * x) },
	Sqr: func(x float64) float64 {
		if x < 0.5 {
			return 1
		}
		return -1
	},
	Tri: func(x float64) float64 {
		if x < 0.5 {
			return 4*x - 1
		}
		return 3 - 4*x
	},
	Saw: func(x float64) float64 { return 2*x - 1 },
	Ahs: func(x float64) float64 { return 2*math.Sin(math.Pi*x) - 1 },
	Hrs: func(x float64) float64 {
		if x < 0.5 {
			return 2*math.Sin(2*math.Pi*x) - 1
		}
		return -1
	},
	Srs: func(x float64) float64 {
		s := math.Sin(2 * math.Pi * x)
		if s < 0 {
			return -math.Sqrt(-s)
		}
		return math.Sqrt(s)
	},
	Ssr: func(x float64) float64 {
		s := math.Sin(2 * math.Pi * x)
		return s * math.Abs(s)
	},
}

func (id ID) String() string {
	if id < numWaves {
		return names[id]
	}
	return "unknown"
}

// Valid reports whether id is in the catalogue.
func (id ID) Valid() bool { return id < numWaves }

// IDs returns all catalogue entries.
func IDs() []ID {
	out := make([]ID, numWaves)
	for i := range out {
		out[i] = ID(i)
	}
	return out
}

// Parse resolves a wave by name.
func Parse(name string) (ID, error) {
	for i, n := range names {
		if n == name {
			return ID(i), nil
		}
	}
	return 0, fmt.Errorf("wave: unknown wave %q", name)
}

// Table is the pair of look-up tables for one wave plus the coefficients
// needed to turn a PILUT difference quotient back into a sample.
type Table struct {
	ID    ID
	LUT   []float64
	PILUT []float64
	// Scale is the peak of the DC-free antiderivative over one cycle.
	Scale float64
	// Offset is the DC level removed before integration.
	Offset float64
	// PhaseAdj is the phase of the first upward crossing of the DC level.
	// Oscillators start there, so every wave begins at the same point of its
	// cycle and wave switches keep that alignment.
	PhaseAdj uint32
}

// Sample reads the LUT at phase with linear interpolation.
func (t *Table) Sample(phase uint32) float64 {
	return interp.Table(t.LUT, LenBits, phase)
}

// Integral reads the PILUT at phase with Hermite interpolation.
func (t *Table) Integral(phase uint32) float64 {
	return interp.TableHermite(t.PILUT, LenBits, phase)
}

// Diff converts the PILUT readings at two phases delta apart (delta != 0)
// into the mean wave value over that phase step.
func (t *Table) Diff(i0, i1 float64, delta int32) float64 {
	return (i1-i0)*t.Scale*(1<<32)/float64(delta) + t.Offset
}

var (
	initOnce sync.Once
	tables   [numWaves]Table
)

// Init builds all tables. Later calls return immediately.
func Init() {
	initOnce.Do(func() {
		for id := range tables {
			tables[id] = build(ID(id))
		}
	})
}

// Get returns the table for id, building the catalogue on first use.
// It returns nil for an unknown id.
func Get(id ID) *Table {
	if !id.Valid() {
		return nil
	}
	Init()
	return &tables[id]
}

func build(id ID) Table {
	f := shapes[id]

	var mean float64
	for j := 0; j < fineLen; j++ {
		mean += f((float64(j) + 0.5) / fineLen)
	}
	mean /= fineLen

	t := Table{
		ID:     id,
		LUT:    make([]float64, Len),
		PILUT:  make([]float64, Len),
		Offset: mean,
	}

	// Midpoint-rule integration on the fine grid, recorded at table points.
	var acc, sum float64
	for j := 0; j < fineLen; j++ {
		if j&(1<<oversampleBits-1) == 0 {
			i := j >> oversampleBits
			t.LUT[i] = f(float64(i) / Len)
			t.PILUT[i] = acc
			sum += acc
		}
		acc += (f((float64(j)+0.5)/fineLen) - mean) / fineLen
	}

	center := sum / Len
	var peak float64
	for i := range t.PILUT {
		t.PILUT[i] -= center
		peak = math.Max(peak, math.Abs(t.PILUT[i]))
	}
	if peak > 0 {
		for i := range t.PILUT {
			t.PILUT[i] /= peak
		}
	}
	t.Scale = peak

	prev := f(float64(fineLen-1) / fineLen)
	for j := 0; j < fineLen; j++ {
		cur := f(float64(j) / fineLen)
		if prev < mean-crossingEps && cur >= mean-crossingEps {
			t.PhaseAdj = uint32(j) << (32 - fineBits)
			break
		}
		prev = cur
	}
	return t
}
