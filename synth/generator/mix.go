package generator

import (
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// render produces n frames into dst, one block at a time.
func (g *Generator) render(dst []int16, n int) {
	ch := g.cfg.Channels
	for n > 0 {
		m := min(n, g.cfg.BlockSize)
		g.clearMix()
		for i := g.cursor; i < len(g.voices); i++ {
			v := &g.voices[i]
			if v.remaining == 0 {
				if i == g.cursor {
					g.cursor++
				}
				continue
			}
			g.runVoice(v, m)
		}
		g.output(dst[:m*ch], m)
		dst = dst[m*ch:]
		n -= m
	}
}

// clearMix zeroes the part of the mix touched by the previous block.
func (g *Generator) clearMix() {
	core.Zero(g.mixL[:g.mixUsed])
	core.Zero(g.mixR[:g.mixUsed])
	g.mixUsed = 0
}

// mix pans out into the mix buffers with the balance law: the channel
// away from the pan position is attenuated, the other kept at unity.
func (g *Generator) mix(v *voice, out []float64) {
	n := len(out)
	g.mixUsed = max(g.mixUsed, n)
	mixL, mixR := g.mixL[:n], g.mixR[:n]

	if !v.pan.Pending() {
		gl, gr := balance(v.pan.V0)
		gl *= g.amp
		gr *= g.amp
		for i, s := range out {
			mixL[i] += s * gl
			mixR[i] += s * gr
		}
		return
	}

	pan := g.panBuf[:n]
	gainL, gainR := g.gainL[:n], g.gainR[:n]
	v.pan.Run(pan, nil)
	for i, p := range pan {
		gl, gr := balance(p)
		gainL[i] = gl * g.amp
		gainR[i] = gr * g.amp
	}
	vecmath.MulBlockInPlace(gainL, out)
	vecmath.MulBlockInPlace(gainR, out)
	for i := range out {
		mixL[i] += gainL[i]
		mixR[i] += gainR[i]
	}
}

func balance(p float64) (l, r float64) {
	p = core.Clamp(p, -1, 1)
	return min(1, 1-p), min(1, 1+p)
}

// output clips and quantizes n frames of the mix into dst.
func (g *Generator) output(dst []int16, n int) {
	if g.quant != nil {
		g.outputDithered(dst, n)
		return
	}
	if g.cfg.Channels == 1 {
		for i := 0; i < n; i++ {
			dst[i] = core.PCM16(0.5 * (g.mixL[i] + g.mixR[i]))
		}
		return
	}
	for i := 0; i < n; i++ {
		dst[2*i] = core.PCM16(g.mixL[i])
		dst[2*i+1] = core.PCM16(g.mixR[i])
	}
}

func (g *Generator) outputDithered(dst []int16, n int) {
	q := g.quant
	if g.cfg.Channels == 1 {
		for i := 0; i < n; i++ {
			dst[i] = q.PCM16(0, 0.5*(g.mixL[i]+g.mixR[i]))
		}
		return
	}
	for i := 0; i < n; i++ {
		dst[2*i] = q.PCM16(0, g.mixL[i])
		dst[2*i+1] = q.PCM16(1, g.mixR[i])
	}
}
