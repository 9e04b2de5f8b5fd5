package time

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Stats holds time-domain statistics of one channel.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max(|x|)
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	ZeroCrossings  int
	Clipped        int // samples at or beyond full scale
	LeadingSilence int // samples before the first non-zero one
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:  math.Inf(-1),
		Peak_dB: math.Inf(-1),
	}
}

// Calculate computes the statistics of signal. Samples with |x| >= 1 count
// as clipped.
func Calculate(signal []float64) Stats {
	var acc channel
	for _, x := range signal {
		acc.add(x)
	}
	return acc.result()
}

// Accumulator gathers per-channel statistics of interleaved 16-bit PCM
// across blocks.
type Accumulator struct {
	ch []channel
}

// NewAccumulator returns an accumulator for the given channel count
// (at least 1).
func NewAccumulator(channels int) *Accumulator {
	return &Accumulator{ch: make([]channel, max(channels, 1))}
}

// Update adds a block of interleaved frames. A trailing partial frame is
// ignored.
func (a *Accumulator) Update(pcm []int16) {
	n := len(a.ch)
	frames := len(pcm) / n
	for i := 0; i < frames; i++ {
		for c := range a.ch {
			a.ch[c].add(core.PCM16ToFloat(pcm[i*n+c]))
		}
	}
}

// Result returns the statistics of every channel.
func (a *Accumulator) Result() []Stats {
	out := make([]Stats, len(a.ch))
	for i := range a.ch {
		out[i] = a.ch[i].result()
	}
	return out
}

// Reset clears all accumulated data.
func (a *Accumulator) Reset() {
	for i := range a.ch {
		a.ch[i] = channel{}
	}
}

// CalculatePCM is a one-shot Accumulator over interleaved PCM.
func CalculatePCM(pcm []int16, channels int) []Stats {
	a := NewAccumulator(channels)
	a.Update(pcm)
	return a.Result()
}

type channel struct {
	n         int
	sum       float64
	sumSq     float64
	peak      float64
	crossings int
	clipped   int
	lead      int
	heard     bool
	last      float64
}

func (c *channel) add(x float64) {
	c.n++
	c.sum += x
	c.sumSq += x * x
	a := math.Abs(x)
	c.peak = math.Max(c.peak, a)
	if a >= 1 {
		c.clipped++
	}
	if x != 0 {
		if c.heard && c.last*x < 0 {
			c.crossings++
		}
		if !c.heard {
			c.lead = c.n - 1
			c.heard = true
		}
		c.last = x
	}
}

func (c *channel) result() Stats {
	if c.n == 0 {
		return emptyStats()
	}
	nf := float64(c.n)
	rms := math.Sqrt(c.sumSq / nf)
	lead := c.lead
	if !c.heard {
		lead = c.n
	}
	var crest float64
	if rms > 0 {
		crest = c.peak / rms
	}
	return Stats{
		Length:         c.n,
		DC:             c.sum / nf,
		RMS:            rms,
		RMS_dB:         core.LinearToDB(rms),
		Peak:           c.peak,
		Peak_dB:        core.LinearToDB(c.peak),
		CrestFactor:    crest,
		ZeroCrossings:  c.crossings,
		Clipped:        c.clipped,
		LeadingSilence: lead,
	}
}
