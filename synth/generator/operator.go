package generator

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/line"
	"github.com/cwbudde/algo-synth/dsp/osc"
	"github.com/cwbudde/algo-synth/dsp/wave"
	"github.com/cwbudde/algo-synth/synth/program"
)

type operator struct {
	osc      *osc.Osc
	time     int
	silence  int
	infinite bool

	freq  line.Line
	freq2 line.Line
	amp   line.Line
	amp2  line.Line
	fb    line.Line

	mods program.ModLists
}

// reset puts the operator in its pre-program state: a sine with infinite
// time, unit amplitude, zero frequency and no modulators.
func (op *operator) reset(id, sampleRate int) error {
	o, err := osc.New(sampleRate, wave.Sin)
	if err != nil {
		return err
	}
	*op = operator{
		osc:      o,
		infinite: true,
		freq:     line.New(0),
		freq2:    line.New(0),
		amp:      line.New(1),
		amp2:     line.New(0),
		fb:       line.New(0),
	}
	for k, l := range []*line.Line{&op.freq, &op.freq2, &op.amp, &op.amp2, &op.fb} {
		l.Seed = uint32(id)<<3 | uint32(k)
	}
	return nil
}

func (op *operator) hasFeedback() bool {
	return op.fb.Pending() || op.fb.V0 != 0
}

// scratch names the per-level buffers.
type scratch struct {
	freq, target, mod, amp, pm, fpm, wave, fb []float64
	phase                                     []uint32
}

// silence writes the zero signal of the given use into out. Only the first
// writer zeroes; layered outputs leave what their siblings built alone.
func silence(out []float64, layer bool) {
	if layer {
		return
	}
	core.Zero(out)
}

// runOp renders operator id into out and returns the number of samples it
// covered; a cycle-guarded operator covers none. parentFreq, when non-nil, is the frequency of the operator being
// modulated and scales ratio lines. layer adds to (carrier) or multiplies
// into (envelope) the existing contents of out instead of replacing them. env
// selects envelope output, w*a/2 + |a/2|, over carrier output, w*a.
func (g *Generator) runOp(id int, out, parentFreq []float64, layer, env bool) int {
	if g.visit.has(id) {
		silence(out, layer)
		return 0
	}
	g.visit.add(id)
	defer g.visit.remove(id)

	op := &g.ops[id]
	length := len(out)
	if !op.infinite {
		length = min(length, op.silence+op.time)
	}

	lead := min(op.silence, length)
	if lead > 0 {
		silence(out[:lead], layer)
		op.silence -= lead
	}
	if n := length - lead; n > 0 {
		var pf []float64
		if parentFreq != nil {
			pf = parentFreq[lead:length]
		}
		if !g.renderOp(op, out[lead:length], pf, layer, env) {
			silence(out[lead:length], layer)
		}
		if !op.infinite {
			op.time -= n
		}
	}
	silence(out[length:], layer)

	produced := length
	for _, c := range op.mods[program.RoleCarrier] {
		produced = max(produced, g.runOp(c, out, parentFreq, true, env))
	}
	return produced
}

// renderOp runs the oscillator of op over len(out) samples. It reports false
// when no scratch buffers were left.
func (g *Generator) renderOp(op *operator, out, parentFreq []float64, layer, env bool) bool {
	mark, pmark := g.bufs.Mark(), g.phases.Mark()
	defer func() {
		g.bufs.Release(mark)
		g.phases.Release(pmark)
	}()

	s, ok := g.reserve(len(out))
	if !ok {
		return false
	}
	n := len(out)

	op.freq.Run(s.freq, parentFreq)
	fmIDs, rfmIDs := op.mods[program.RoleFreq], op.mods[program.RoleFreqRatio]
	if len(fmIDs) > 0 || len(rfmIDs) > 0 {
		var mul []float64
		if op.freq2.Flags&line.StateRatio != 0 {
			mul = parentFreq
		}
		op.freq2.Run(s.target, nil)
		if len(fmIDs) > 0 {
			g.runMods(fmIDs, s.mod, s.freq, true)
			pull(s.freq, s.target, mul, s.mod)
		}
		if len(rfmIDs) > 0 {
			g.runMods(rfmIDs, s.mod, s.freq, true)
			pullRatio(s.freq, s.target, s.mod)
		}
	} else {
		op.freq2.Skip(n)
	}

	var pm, fpm []float64
	if ids := op.mods[program.RolePhase]; len(ids) > 0 {
		g.runMods(ids, s.pm, s.freq, false)
		pm = s.pm
	}
	if ids := op.mods[program.RoleFreqPhase]; len(ids) > 0 {
		g.runMods(ids, s.fpm, s.freq, false)
		fpm = s.fpm
	}

	op.amp.Run(s.amp, nil)
	amIDs, ramIDs := op.mods[program.RoleAmp], op.mods[program.RoleAmpRatio]
	if len(amIDs) > 0 || len(ramIDs) > 0 {
		op.amp2.Run(s.target, nil)
		if len(amIDs) > 0 {
			g.runMods(amIDs, s.mod, s.freq, true)
			pull(s.amp, s.target, nil, s.mod)
		}
		if len(ramIDs) > 0 {
			g.runMods(ramIDs, s.mod, s.freq, true)
			pullRatio(s.amp, s.target, s.mod)
		}
	} else {
		op.amp2.Skip(n)
	}

	op.osc.FillPhase(s.phase, s.freq, pm, fpm)
	if op.hasFeedback() {
		op.fb.Run(s.fb, nil)
		op.osc.RunFeedback(s.wave, s.phase, s.fb)
	} else {
		op.osc.Run(s.wave, s.phase)
	}

	switch {
	case env && layer:
		for i, w := range s.wave {
			a := s.amp[i] * 0.5
			out[i] *= w*a + math.Abs(a)
		}
	case env:
		for i, w := range s.wave {
			a := s.amp[i] * 0.5
			out[i] = w*a + math.Abs(a)
		}
	case layer:
		for i, w := range s.wave {
			out[i] += w * s.amp[i]
		}
	default:
		for i, w := range s.wave {
			out[i] = w * s.amp[i]
		}
	}
	return true
}

// reserve takes one level of scratch buffers cut to n samples.
func (g *Generator) reserve(n int) (scratch, bool) {
	var b [bufsPerLevel][]float64
	if !g.bufs.ReserveN(b[:]) {
		g.warnArena()
		return scratch{}, false
	}
	phase, ok := g.phases.Reserve()
	if !ok {
		g.warnArena()
		return scratch{}, false
	}
	return scratch{
		freq:   b[0][:n],
		target: b[1][:n],
		mod:    b[2][:n],
		amp:    b[3][:n],
		pm:     b[4][:n],
		fpm:    b[5][:n],
		wave:   b[6][:n],
		fb:     b[7][:n],
		phase:  phase[:n],
	}, true
}

func (g *Generator) warnArena() {
	if g.arenaWarned {
		return
	}
	g.arenaWarned = true
	g.logger.Printf("modulation nested deeper than %d levels, silencing the rest",
		g.bufs.Cap()/bufsPerLevel)
}

// runMods renders the modulators ids into out, the first replacing its
// contents and the rest layered on top. Several envelopes form a product in
// which a modulator that has ended or is cycle-guarded drops out; the
// product is zero only where none of them is running.
func (g *Generator) runMods(ids []int, out, parentFreq []float64, env bool) {
	if env && len(ids) > 1 {
		core.Fill(out, 1)
		covered := 0
		for _, id := range ids {
			covered = max(covered, g.runOp(id, out, parentFreq, true, true))
		}
		core.Zero(out[covered:])
		return
	}
	for i, id := range ids {
		g.runOp(id, out, parentFreq, i > 0, env)
	}
}

// pull moves v toward target by the fraction amount. target is scaled by
// mul when mul is non-nil.
func pull(v, target, mul, amount []float64) {
	if mul != nil {
		for i := range v {
			v[i] += (target[i]*mul[i] - v[i]) * amount[i]
		}
		return
	}
	for i := range v {
		v[i] += (target[i] - v[i]) * amount[i]
	}
}

// pullRatio moves v toward v*ratio by the fraction amount.
func pullRatio(v, ratio, amount []float64) {
	for i := range v {
		v[i] += v[i] * (ratio[i] - 1) * amount[i]
	}
}
