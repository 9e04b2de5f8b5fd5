package program

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/cwbudde/algo-synth/dsp/line"
	"github.com/cwbudde/algo-synth/dsp/wave"
)

// document is the YAML form of a Program. Omitted counts are derived from
// the events.
type document struct {
	Name         string     `yaml:"name,omitempty"`
	AmpDivVoices bool       `yaml:"amp_div_voices,omitempty"`
	Voices       int        `yaml:"voices,omitempty"`
	Ops          int        `yaml:"ops,omitempty"`
	Depth        int        `yaml:"depth,omitempty"`
	Events       []eventDoc `yaml:"events"`
}

type eventDoc struct {
	Wait    uint32   `yaml:"wait,omitempty"`
	Voice   int      `yaml:"voice"`
	Carrier *int     `yaml:"carrier,omitempty"`
	Pan     *rampDoc `yaml:"pan,omitempty"`
	Ops     []opDoc  `yaml:"ops,omitempty"`
}

type opDoc struct {
	ID       int              `yaml:"id"`
	Wave     string           `yaml:"wave,omitempty"`
	Time     *timeDoc         `yaml:"time,omitempty"`
	Silence  *uint32          `yaml:"silence,omitempty"`
	Phase    *float64         `yaml:"phase,omitempty"`
	Freq     *rampDoc         `yaml:"freq,omitempty"`
	Freq2    *rampDoc         `yaml:"freq2,omitempty"`
	Amp      *rampDoc         `yaml:"amp,omitempty"`
	Amp2     *rampDoc         `yaml:"amp2,omitempty"`
	Feedback *rampDoc         `yaml:"feedback,omitempty"`
	Mods     map[string][]int `yaml:"mods,flow,omitempty"`
}

// rampDoc is a line update. A bare number sets the value.
type rampDoc struct {
	V         *float64 `yaml:"v,omitempty"`
	Ratio     bool     `yaml:"ratio,omitempty"`
	Goal      *float64 `yaml:"goal,omitempty"`
	GoalRatio bool     `yaml:"goal_ratio,omitempty"`
	Time      *uint32  `yaml:"time,omitempty"`
	Type      string   `yaml:"type,omitempty"`
}

func (r *rampDoc) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v float64
	if err := unmarshal(&v); err == nil {
		*r = rampDoc{V: &v}
		return nil
	}
	type plain rampDoc
	return unmarshal((*plain)(r))
}

// timeDoc is a play time in milliseconds or "inf".
type timeDoc Time

func (t *timeDoc) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var ms uint32
	if err := unmarshal(&ms); err == nil {
		*t = timeDoc{MS: ms}
		return nil
	}
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if !strings.EqualFold(s, "inf") {
		return fmt.Errorf("time must be milliseconds or inf: %q", s)
	}
	*t = timeDoc{Infinite: true}
	return nil
}

// Load reads a YAML program from path.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode reads a YAML program from r and validates it.
func Decode(r io.Reader) (*Program, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("program: decode: %w", err)
	}

	p, err := doc.program()
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (d *document) program() (*Program, error) {
	p := &Program{
		Name:       d.Name,
		VoiceCount: d.Voices,
		OpCount:    d.Ops,
		NestDepth:  d.Depth,
		Events:     make([]Event, len(d.Events)),
	}
	if d.AmpDivVoices {
		p.Mode |= ModeAmpDivVoices
	}

	maxVoice, maxOp := -1, -1
	for i := range d.Events {
		ed := &d.Events[i]
		ev := Event{WaitMS: ed.Wait, VoiceID: ed.Voice}
		maxVoice = max(maxVoice, ed.Voice)

		if ed.Carrier != nil || ed.Pan != nil {
			vd := &VoiceData{}
			if ed.Carrier != nil {
				vd.Params |= VoParamCarrier
				vd.Carrier = *ed.Carrier
				maxOp = max(maxOp, vd.Carrier)
			}
			if ed.Pan != nil {
				r, err := ed.Pan.ramp()
				if err != nil {
					return nil, fmt.Errorf("%w: event %d: pan: %v", ErrInvalidProgram, i, err)
				}
				vd.Params |= VoParamPan
				vd.Pan = r
			}
			ev.Voice = vd
		}

		ev.Ops = make([]OpData, 0, len(ed.Ops))
		for j := range ed.Ops {
			od, err := ed.Ops[j].op()
			if err != nil {
				return nil, fmt.Errorf("%w: event %d: operator %d: %v",
					ErrInvalidProgram, i, ed.Ops[j].ID, err)
			}
			maxOp = max(maxOp, od.ID)
			for _, ids := range od.Mods {
				for _, id := range ids {
					maxOp = max(maxOp, id)
				}
			}
			ev.Ops = append(ev.Ops, od)
		}
		p.Events[i] = ev
	}

	if p.VoiceCount == 0 {
		p.VoiceCount = maxVoice + 1
	}
	if p.OpCount == 0 {
		p.OpCount = maxOp + 1
	}
	if p.NestDepth == 0 {
		p.NestDepth = p.EstimateNestDepth()
	}
	p.DurationMS = p.EstimateDurationMS()
	return p, nil
}

func (o *opDoc) op() (OpData, error) {
	od := OpData{ID: o.ID}
	if o.Wave != "" {
		w, err := wave.Parse(o.Wave)
		if err != nil {
			return od, err
		}
		od.Params |= ParamWave
		od.Wave = w
	}
	if o.Time != nil {
		od.Params |= ParamTime
		od.Time = Time(*o.Time)
	}
	if o.Silence != nil {
		od.Params |= ParamSilence
		od.SilenceMS = *o.Silence
	}
	if o.Phase != nil {
		od.Params |= ParamPhase
		od.Phase = *o.Phase
	}

	ramps := []struct {
		name string
		flag Params
		doc  *rampDoc
		dst  *line.Ramp
	}{
		{"freq", ParamFreq, o.Freq, &od.Freq},
		{"freq2", ParamFreq2, o.Freq2, &od.Freq2},
		{"amp", ParamAmp, o.Amp, &od.Amp},
		{"amp2", ParamAmp2, o.Amp2, &od.Amp2},
		{"feedback", ParamFeedback, o.Feedback, &od.Feedback},
	}
	for _, rr := range ramps {
		if rr.doc == nil {
			continue
		}
		r, err := rr.doc.ramp()
		if err != nil {
			return od, fmt.Errorf("%s: %v", rr.name, err)
		}
		od.Params |= rr.flag
		*rr.dst = r
	}

	for name, ids := range o.Mods {
		role, err := ParseRole(name)
		if err != nil {
			return od, err
		}
		od.Set(role, ids...)
	}
	return od, nil
}

func (r *rampDoc) ramp() (line.Ramp, error) {
	var out line.Ramp
	if r.V != nil {
		out.Flags |= line.RampState
		out.V0 = *r.V
		if r.Ratio {
			out.Flags |= line.RampStateRatio
		}
	} else if r.Ratio {
		return out, fmt.Errorf("ratio given without a value")
	}
	if r.Goal != nil {
		out.Flags |= line.RampGoal
		out.Vt = *r.Goal
		if r.GoalRatio {
			out.Flags |= line.RampGoalRatio
		}
		out.Type = line.Lin
	} else if r.GoalRatio {
		return out, fmt.Errorf("goal_ratio given without a goal")
	}
	if r.Type != "" {
		t, err := line.ParseType(r.Type)
		if err != nil {
			return out, err
		}
		out.Type = t
	}
	if r.Time != nil {
		out.Flags |= line.RampTime
		out.TimeMS = *r.Time
	}
	return out, nil
}
