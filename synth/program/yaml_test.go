package program

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/line"
	"github.com/cwbudde/algo-synth/dsp/wave"
)

func TestLoadExample(t *testing.T) {
	p, err := Load("testdata/fm_bell.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if p.Name != "fm bell" {
		t.Fatalf("Name = %q", p.Name)
	}
	if p.Mode&ModeAmpDivVoices == 0 {
		t.Fatal("amp_div_voices not applied")
	}
	if p.VoiceCount != 2 || p.OpCount != 4 {
		t.Fatalf("counts = %d voices, %d ops; want 2, 4", p.VoiceCount, p.OpCount)
	}
	if p.NestDepth != 1 {
		t.Fatalf("NestDepth = %d, want 1", p.NestDepth)
	}
	if p.DurationMS != 1750 {
		t.Fatalf("DurationMS = %d, want 1750", p.DurationMS)
	}

	ev := p.Events[0]
	if ev.Voice == nil || !ev.Voice.Params.Has(VoParamCarrier|VoParamPan) {
		t.Fatalf("voice data = %+v", ev.Voice)
	}
	if ev.Voice.Pan.Type != line.Cos || ev.Voice.Pan.Vt != 0.5 {
		t.Fatalf("pan = %+v", ev.Voice.Pan)
	}

	op0 := ev.Ops[0]
	if !op0.Params.Has(ParamWave | ParamTime | ParamFreq | ParamFreq2 | ParamAmp) {
		t.Fatalf("op 0 params = %b", op0.Params)
	}
	if op0.Freq.V0 != 220 || op0.Freq.Flags != line.RampState {
		t.Fatalf("op 0 freq = %+v", op0.Freq)
	}
	if got := op0.Mods[RolePhase]; len(got) != 1 || got[0] != 1 {
		t.Fatalf("op 0 phase mods = %v", got)
	}

	op1 := ev.Ops[1]
	if !op1.Time.Infinite {
		t.Fatal("op 1 time should be infinite")
	}
	if op1.Freq.Flags&line.RampStateRatio == 0 {
		t.Fatal("op 1 frequency should be a ratio")
	}
	if !op1.Params.Has(ParamFeedback) || op1.Feedback.V0 != 0.2 {
		t.Fatalf("op 1 feedback = %+v", op1.Feedback)
	}

	op3 := p.Events[1].Ops[0]
	if op3.Wave != wave.Saw || op3.SilenceMS != 250 {
		t.Fatalf("op 3 = %+v", op3)
	}
	if op3.Freq.Flags&line.RampTime == 0 || op3.Freq.TimeMS != 1000 {
		t.Fatalf("op 3 freq = %+v", op3.Freq)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		invalid bool
	}{
		{"unknown field", "events: [{voice: 0, carrier: 0, volume: 1}]", false},
		{"bad time", "events: [{voice: 0, carrier: 0, ops: [{id: 0, time: forever}]}]", false},
		{"unknown wave", "events: [{voice: 0, carrier: 0, ops: [{id: 0, wave: organ}]}]", true},
		{"unknown line type", "events: [{voice: 0, carrier: 0, ops: [{id: 0, amp: {v: 1, goal: 0, type: wobble}}]}]", true},
		{"unknown role", "events: [{voice: 0, carrier: 0, ops: [{id: 0, mods: {volume: [0]}}]}]", true},
		{"ratio without value", "events: [{voice: 0, carrier: 0, ops: [{id: 0, freq: {ratio: true}}]}]", true},
		{"no carrier", "events: [{voice: 0, ops: [{id: 0}]}]", true},
		{"declared counts too small", "voices: 1\nops: 1\nevents: [{voice: 0, carrier: 2}]", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrInvalidProgram); got != tt.invalid {
				t.Fatalf("errors.Is(ErrInvalidProgram) = %v for %v", got, err)
			}
		})
	}
}

func TestDecodeScalarsAndInfinity(t *testing.T) {
	doc := `
events:
  - voice: 0
    carrier: 0
    ops:
      - {id: 0, time: inf, freq: 440, amp: {v: 1, goal: 0.5}}
`
	p, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	op := p.Events[0].Ops[0]
	if !op.Time.Infinite || !op.Params.Has(ParamTime) {
		t.Fatalf("time = %+v", op.Time)
	}
	if op.Amp.Type != line.Lin || op.Amp.Flags != line.RampState|line.RampGoal {
		t.Fatalf("amp = %+v", op.Amp)
	}
	if p.DurationMS != 0 {
		t.Fatalf("DurationMS = %d, want 0 for an infinite voice", p.DurationMS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.yaml"); err == nil {
		t.Fatal("expected error")
	}
}
