package program

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/line"
)

// ErrInvalidProgram is wrapped by every validation failure.
var ErrInvalidProgram = errors.New("program: invalid program")

// Validate checks that every id is in range and every selector is known.
// The first event of each voice must bind a carrier.
func (p *Program) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil program", ErrInvalidProgram)
	}
	if p.VoiceCount < 0 {
		return fmt.Errorf("%w: voice count must be >= 0: %d", ErrInvalidProgram, p.VoiceCount)
	}
	if p.OpCount < 0 {
		return fmt.Errorf("%w: operator count must be >= 0: %d", ErrInvalidProgram, p.OpCount)
	}
	if p.NestDepth < 0 {
		return fmt.Errorf("%w: nesting depth must be >= 0: %d", ErrInvalidProgram, p.NestDepth)
	}

	bound := make([]bool, p.VoiceCount)
	for i := range p.Events {
		ev := &p.Events[i]
		if ev.VoiceID < 0 || ev.VoiceID >= p.VoiceCount {
			return fmt.Errorf("%w: event %d: voice %d out of range [0,%d)",
				ErrInvalidProgram, i, ev.VoiceID, p.VoiceCount)
		}
		for j := range ev.Ops {
			if err := p.validateOp(&ev.Ops[j]); err != nil {
				return fmt.Errorf("%w: event %d: %v", ErrInvalidProgram, i, err)
			}
		}
		if ev.Voice != nil {
			if err := p.validateVoice(ev.Voice); err != nil {
				return fmt.Errorf("%w: event %d: %v", ErrInvalidProgram, i, err)
			}
			if ev.Voice.Params.Has(VoParamCarrier) {
				bound[ev.VoiceID] = true
			}
		}
		if !bound[ev.VoiceID] {
			return fmt.Errorf("%w: event %d: voice %d has no carrier",
				ErrInvalidProgram, i, ev.VoiceID)
		}
	}
	return nil
}

func (p *Program) validateOp(op *OpData) error {
	if op.ID < 0 || op.ID >= p.OpCount {
		return fmt.Errorf("operator %d out of range [0,%d)", op.ID, p.OpCount)
	}
	if op.Params.Has(ParamWave) && !op.Wave.Valid() {
		return fmt.Errorf("operator %d: unknown wave %d", op.ID, op.Wave)
	}
	if op.Params.Has(ParamPhase) && (math.IsNaN(op.Phase) || math.IsInf(op.Phase, 0)) {
		return fmt.Errorf("operator %d: phase must be finite: %v", op.ID, op.Phase)
	}
	ramps := []struct {
		name string
		flag Params
		r    *line.Ramp
	}{
		{"freq", ParamFreq, &op.Freq},
		{"freq2", ParamFreq2, &op.Freq2},
		{"amp", ParamAmp, &op.Amp},
		{"amp2", ParamAmp2, &op.Amp2},
		{"feedback", ParamFeedback, &op.Feedback},
	}
	for _, rr := range ramps {
		if !op.Params.Has(rr.flag) {
			continue
		}
		if err := validateRamp(rr.r); err != nil {
			return fmt.Errorf("operator %d: %s: %v", op.ID, rr.name, err)
		}
	}
	for r := Role(0); r < NumRoles; r++ {
		for _, id := range op.Mods[r] {
			if id < 0 || id >= p.OpCount {
				return fmt.Errorf("operator %d: %s modulator %d out of range [0,%d)",
					op.ID, r, id, p.OpCount)
			}
		}
		if len(op.Mods[r]) > 0 && !op.ModsSet.Has(r) {
			return fmt.Errorf("operator %d: %s modulators given but role not marked as set", op.ID, r)
		}
	}
	return nil
}

func (p *Program) validateVoice(vd *VoiceData) error {
	if vd.Params.Has(VoParamCarrier) && (vd.Carrier < 0 || vd.Carrier >= p.OpCount) {
		return fmt.Errorf("carrier %d out of range [0,%d)", vd.Carrier, p.OpCount)
	}
	if vd.Params.Has(VoParamPan) {
		if err := validateRamp(&vd.Pan); err != nil {
			return fmt.Errorf("pan: %v", err)
		}
	}
	return nil
}

func validateRamp(r *line.Ramp) error {
	if r.Flags&line.RampGoal != 0 && !r.Type.Valid() {
		return fmt.Errorf("unknown line type %d", r.Type)
	}
	for _, v := range []float64{r.V0, r.Vt} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value must be finite: %v", v)
		}
	}
	return nil
}
