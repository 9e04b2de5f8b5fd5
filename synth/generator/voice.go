package generator

import (
	"github.com/cwbudde/algo-synth/dsp/line"
	"github.com/cwbudde/algo-synth/synth/program"
)

type voice struct {
	initialized bool
	remaining   int
	carrier     int
	pan         line.Line
}

func (v *voice) reset(id int) {
	*v = voice{pan: line.New(0)}
	v.pan.Seed = uint32(id)
}

// voiceDuration returns the samples until the last finite operator on the
// carrier chain starting at id stops.
func (g *Generator) voiceDuration(id int) int {
	if g.visit.has(id) {
		return 0
	}
	g.visit.add(id)
	op := &g.ops[id]
	d := 0
	if !op.infinite {
		d = op.silence + op.time
	}
	for _, c := range op.mods[program.RoleCarrier] {
		d = max(d, g.voiceDuration(c))
	}
	g.visit.remove(id)
	return d
}

// runVoice renders up to n samples of v and adds them to the mix.
func (g *Generator) runVoice(v *voice, n int) {
	n = min(n, v.remaining)
	if n <= 0 {
		return
	}
	out := g.voiceOut[:n]
	produced := g.runOp(v.carrier, out, nil, false, false)
	v.remaining -= n
	if produced == 0 {
		v.pan.Skip(n)
		return
	}
	g.mix(v, out[:produced])
	if produced < n {
		v.pan.Skip(n - produced)
	}
}
