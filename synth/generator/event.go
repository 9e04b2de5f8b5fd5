package generator

import (
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/synth/program"
)

// handleEvent applies ev: operator updates first, then the voice update.
// The targeted voice restarts with a duration taken from its carrier chain.
func (g *Generator) handleEvent(ev *program.Event) {
	for i := range ev.Ops {
		g.applyOp(&ev.Ops[i])
	}

	v := &g.voices[ev.VoiceID]
	vd := ev.Voice
	if vd != nil && vd.Params.Has(program.VoParamCarrier) {
		v.carrier = vd.Carrier
	}
	v.initialized = true
	v.remaining = g.voiceDuration(v.carrier)
	if vd != nil && vd.Params.Has(program.VoParamPan) {
		v.pan.Set(vd.Pan, g.cfg.SampleRate, v.remaining)
	}
	if ev.VoiceID < g.cursor {
		g.cursor = ev.VoiceID
	}
}

func (g *Generator) applyOp(od *program.OpData) {
	op := &g.ops[od.ID]
	rate := g.cfg.SampleRate

	if od.Params.Has(program.ParamWave) {
		// Validated with the program.
		_ = op.osc.SetWave(od.Wave)
	}
	if od.Params.Has(program.ParamTime) {
		op.infinite = od.Time.Infinite
		op.time = 0
		if !op.infinite {
			op.time = core.MSToSamples(od.Time.MS, rate)
		}
	}
	if od.Params.Has(program.ParamSilence) {
		op.silence = core.MSToSamples(od.SilenceMS, rate)
	}
	if od.Params.Has(program.ParamPhase) {
		op.osc.SetPhase(od.Phase)
	}

	// Goals without their own time run for the operator's time.
	def := op.time
	if od.Params.Has(program.ParamFreq) {
		op.freq.Set(od.Freq, rate, def)
	}
	if od.Params.Has(program.ParamFreq2) {
		op.freq2.Set(od.Freq2, rate, def)
	}
	if od.Params.Has(program.ParamAmp) {
		op.amp.Set(od.Amp, rate, def)
	}
	if od.Params.Has(program.ParamAmp2) {
		op.amp2.Set(od.Amp2, rate, def)
	}
	if od.Params.Has(program.ParamFeedback) {
		op.fb.Set(od.Feedback, rate, def)
	}

	for r := program.Role(0); r < program.NumRoles; r++ {
		if od.ModsSet.Has(r) {
			op.mods[r] = od.Mods[r]
		}
	}
}
