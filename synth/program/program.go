package program

import (
	"github.com/cwbudde/algo-synth/dsp/line"
	"github.com/cwbudde/algo-synth/dsp/wave"
)

// Mode holds program-wide mixing flags.
type Mode uint8

const (
	// ModeAmpDivVoices divides the output amplitude by the voice count.
	ModeAmpDivVoices Mode = 1 << iota
)

// Program is a compiled score. The generator only reads it, so one program
// may back any number of generators.
type Program struct {
	Name       string
	Events     []Event
	VoiceCount int
	OpCount    int
	// NestDepth is the longest modulation chain, in edges.
	NestDepth  int
	Mode       Mode
	DurationMS uint32
}

// Event is a set of updates applied WaitMS after the previous event.
type Event struct {
	WaitMS  uint32
	VoiceID int
	Voice   *VoiceData
	Ops     []OpData
}

// VoParams marks the voice parameters carried by a VoiceData.
type VoParams uint8

const (
	// VoParamPan updates the pan line.
	VoParamPan VoParams = 1 << iota
	// VoParamCarrier rebinds the voice's carrier operator.
	VoParamCarrier
)

// VoiceData updates a voice. Pan runs from -1 (left) to 1 (right).
type VoiceData struct {
	Params  VoParams
	Pan     line.Ramp
	Carrier int
}

// Params marks the operator parameters carried by an OpData.
type Params uint16

const (
	ParamWave Params = 1 << iota
	ParamTime
	ParamSilence
	ParamPhase
	ParamFreq
	ParamFreq2
	ParamAmp
	ParamAmp2
	ParamFeedback
)

// Time is an operator play time. An infinite time plays as long as the
// operator is referenced.
type Time struct {
	MS       uint32
	Infinite bool
}

// OpData updates an operator.
//
// Freq2 and Amp2 are the modulation targets: frequency and amplitude
// modulators pull the primary value toward them. Phase is in cycles.
// Feedback is the self-modulation amount in half cycles.
type OpData struct {
	ID        int
	Params    Params
	Time      Time
	SilenceMS uint32
	Wave      wave.ID
	Phase     float64
	Freq      line.Ramp
	Freq2     line.Ramp
	Amp       line.Ramp
	Amp2      line.Ramp
	Feedback  line.Ramp
	Mods      ModLists
	ModsSet   RoleSet
}

// Has reports whether every flag of q is set in p.
func (p Params) Has(q Params) bool { return p&q == q }

// Has reports whether every flag of q is set in p.
func (p VoParams) Has(q VoParams) bool { return p&q == q }

// Ops returns the number of operator updates in all events.
func (p *Program) Ops() int {
	n := 0
	for i := range p.Events {
		n += len(p.Events[i].Ops)
	}
	return n
}
