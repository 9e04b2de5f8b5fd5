package osc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/wave"
)

// FreqPhaseScale converts frequency-relative phase modulation to cycles: an
// input of 1 at f Hz shifts the phase by f*FreqPhaseScale cycles.
const FreqPhaseScale = 1.0 / 1000

const (
	halfCycle = 1 << 31
	fullCycle = 1 << 32

	// fbPole is the pole of the smoothing applied to feedback history.
	fbPole = 0.25
)

type resetFlag uint8

const (
	// flagReset rebuilds the integral baseline from the current phase.
	flagReset resetFlag = 1 << iota
	// flagResetDiff additionally resamples the previous output from the
	// naive table.
	flagResetDiff
)

// Osc is a single oscillator. It is not safe for concurrent use.
type Osc struct {
	rate  int
	coeff float64
	tab   *wave.Table

	phase uint32
	base  uint32
	flags resetFlag

	prevPhase uint32
	prevIs    float64
	prevS     float64

	fbPrev float64
	fbAvg  float64
}

// New returns an oscillator playing w at sampleRate, starting at the wave's
// upward DC crossing.
func New(sampleRate int, w wave.ID) (*Osc, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("osc sample rate must be > 0: %d", sampleRate)
	}
	tab := wave.Get(w)
	if tab == nil {
		return nil, fmt.Errorf("osc wave not in catalogue: %d", w)
	}
	return &Osc{
		rate:  sampleRate,
		coeff: fullCycle / float64(sampleRate),
		tab:   tab,
		phase: tab.PhaseAdj,
		base:  tab.PhaseAdj,
		flags: flagReset | flagResetDiff,
	}, nil
}

// Wave returns the current wave.
func (o *Osc) Wave() wave.ID { return o.tab.ID }

// Phase returns the raw phase accumulator.
func (o *Osc) Phase() uint32 { return o.phase }

// SetWave switches to w, moving the phase by the difference of the two
// waves' crossing offsets so the cycle position is kept.
func (o *Osc) SetWave(w wave.ID) error {
	tab := wave.Get(w)
	if tab == nil {
		return fmt.Errorf("osc wave not in catalogue: %d", w)
	}
	if tab == o.tab {
		return nil
	}
	o.phase += tab.PhaseAdj - o.tab.PhaseAdj
	o.base = o.phase
	o.tab = tab
	o.flags |= flagReset | flagResetDiff
	return nil
}

// SetPhase moves the oscillator to the given position in cycles, measured
// from the wave's upward DC crossing.
func (o *Osc) SetPhase(cycles float64) {
	o.phase = o.tab.PhaseAdj + cyclesToPhase(cycles)
	o.base = o.phase
	o.flags |= flagReset
}

// CycleLen returns the number of samples in one cycle at freq, or 0 for a
// zero frequency.
func (o *Osc) CycleLen(freq float64) int {
	if freq == 0 {
		return 0
	}
	return int(math.Round(float64(o.rate) / math.Abs(freq)))
}

// FillPhase writes one absolute phase per sample of freq into phase. pm
// holds absolute phase offsets (1 = half a cycle) and fpm offsets relative
// to the frequency (see FreqPhaseScale); either may be nil. The slices must
// be at least len(phase) long.
func (o *Osc) FillPhase(phase []uint32, freq, pm, fpm []float64) {
	if len(phase) == 0 {
		return
	}
	if o.flags&flagReset != 0 {
		o.base = o.phase + o.offset(0, freq, pm, fpm)
	}
	for i := range phase {
		o.phase += uint32(int64(math.Round(freq[i] * o.coeff)))
		phase[i] = o.phase + o.offset(i, freq, pm, fpm)
	}
}

func (o *Osc) offset(i int, freq, pm, fpm []float64) uint32 {
	var off uint32
	if pm != nil {
		off += uint32(int64(pm[i] * halfCycle))
	}
	if fpm != nil {
		off += uint32(int64(fpm[i] * freq[i] * FreqPhaseScale * fullCycle))
	}
	return off
}

// Run renders one sample per phase into out.
func (o *Osc) Run(out []float64, phase []uint32) {
	o.begin(0)
	for i := range out {
		out[i] = o.step(phase[i])
	}
}

// RunFeedback is Run with self-modulation: each phase is pushed by
// fb[i] times the smoothed recent output, in half cycles.
func (o *Osc) RunFeedback(out []float64, phase []uint32, fb []float64) {
	if len(out) == 0 {
		return
	}
	o.begin(o.fbOffset(fb[0]))
	for i := range out {
		s := o.step(phase[i] + o.fbOffset(fb[i]))
		o.fbAvg = core.FlushDenormals((1-fbPole)*0.5*(s+o.fbPrev) + fbPole*o.fbAvg)
		o.fbPrev = s
		out[i] = s
	}
}

func (o *Osc) fbOffset(amount float64) uint32 {
	return uint32(int64(amount * o.fbAvg * halfCycle))
}

func (o *Osc) begin(shift uint32) {
	if o.flags&flagReset == 0 {
		return
	}
	p := o.base + shift
	o.prevPhase = p
	o.prevIs = o.tab.Integral(p)
	if o.flags&flagResetDiff != 0 {
		o.prevS = o.tab.Sample(p)
	}
	o.flags = 0
}

func (o *Osc) step(p uint32) float64 {
	delta := int32(p - o.prevPhase)
	if delta == 0 {
		return o.prevS
	}
	is := o.tab.Integral(p)
	s := o.tab.Diff(o.prevIs, is, delta)
	o.prevPhase = p
	o.prevIs = is
	o.prevS = s
	return s
}

func cyclesToPhase(cycles float64) uint32 {
	_, frac := math.Modf(cycles)
	return uint32(int64(frac * fullCycle))
}
