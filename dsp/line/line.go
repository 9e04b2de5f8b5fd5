package line

import "github.com/cwbudde/algo-synth/dsp/core"

// Flag holds the runtime state bits of a Line.
type Flag uint8

const (
	// StateRatio marks V0 as a ratio of the modulation buffer.
	StateRatio Flag = 1 << iota
	// GoalSet marks a pending goal.
	GoalSet
	// GoalRatio marks Vt as a ratio of the modulation buffer.
	GoalRatio
)

// RampFlag tells which parts of a Ramp carry new values.
type RampFlag uint8

const (
	// RampState sets the current value.
	RampState RampFlag = 1 << iota
	// RampStateRatio marks the new current value as a ratio.
	RampStateRatio
	// RampGoal sets a goal.
	RampGoal
	// RampGoalRatio marks the goal as a ratio.
	RampGoalRatio
	// RampTime sets the span explicitly; without it a goal uses the
	// caller's default time.
	RampTime
)

// Ramp is an update to a line expressed in milliseconds, as found in
// program events.
type Ramp struct {
	V0     float64
	Vt     float64
	TimeMS uint32
	Type   Type
	Flags  RampFlag
}

// Line is a value trajectory measured in samples.
type Line struct {
	V0    float64
	Vt    float64
	Pos   int
	End   int
	Type  Type
	Flags Flag
	Seed  uint32
}

// New returns a line holding v.
func New(v float64) Line {
	return Line{V0: v}
}

// Pending reports whether a goal is still to be reached.
func (l *Line) Pending() bool {
	return l.Flags&GoalSet != 0
}

// Set applies r. defaultSamples is the span used for a goal without an
// explicit time. A goal with a zero span is applied at once.
func (l *Line) Set(r Ramp, sampleRate int, defaultSamples int) {
	if r.Flags&RampState != 0 {
		l.V0 = r.V0
		l.Flags &^= StateRatio
		if r.Flags&RampStateRatio != 0 {
			l.Flags |= StateRatio
		}
	}

	end := defaultSamples
	if r.Flags&RampTime != 0 {
		end = core.MSToSamples(r.TimeMS, sampleRate)
	}

	if r.Flags&RampGoal == 0 {
		if r.Flags&RampTime != 0 && l.Pending() {
			l.End = end
			if l.Pos >= l.End {
				l.finish()
			}
		}
		return
	}

	l.Vt = r.Vt
	l.Type = r.Type
	l.Pos = 0
	l.End = end
	l.Flags |= GoalSet
	l.Flags &^= GoalRatio
	if r.Flags&RampGoalRatio != 0 {
		l.Flags |= GoalRatio
	}
	if l.End <= 0 {
		l.finish()
	}
}

// Run fills buf with the trajectory and advances it by len(buf) samples.
// mul, when non-nil, must be at least len(buf) long and scales endpoints
// whose ratio flag is set. It returns whether a goal is still pending.
func (l *Line) Run(buf, mul []float64) bool {
	n := len(buf)
	i := 0
	if l.Pending() {
		rem := l.End - l.Pos
		if rem <= 0 {
			l.finish()
		} else {
			if rem > n {
				rem = n
			}
			l.fill(buf[:rem], mul)
			l.Pos += rem
			i = rem
			if l.Pos >= l.End {
				l.finish()
			}
		}
	}

	v := l.V0
	if mul != nil && l.Flags&StateRatio != 0 {
		for ; i < n; i++ {
			buf[i] = v * mul[i]
		}
	} else {
		for ; i < n; i++ {
			buf[i] = v
		}
	}
	return l.Pending()
}

// Skip advances the line by n samples without output and returns whether a
// goal is still pending.
func (l *Line) Skip(n int) bool {
	if !l.Pending() {
		return false
	}
	l.Pos += n
	if l.Pos >= l.End {
		l.finish()
	}
	return l.Pending()
}

// fill renders the goal segment starting at l.Pos; l.End > l.Pos holds.
func (l *Line) fill(buf, mul []float64) {
	span := float64(l.End)
	rising := l.Vt >= l.V0
	stateRatio := mul != nil && l.Flags&StateRatio != 0
	goalRatio := mul != nil && l.Flags&GoalRatio != 0
	for i := range buf {
		pos := l.Pos + i
		f := shape(l.Type, float64(pos)/span, rising, l.Seed, pos)
		v0, vt := l.V0, l.Vt
		if stateRatio {
			v0 *= mul[i]
		}
		if goalRatio {
			vt *= mul[i]
		}
		buf[i] = v0 + (vt-v0)*f
	}
}

func (l *Line) finish() {
	l.V0 = l.Vt
	l.Flags &^= GoalSet | StateRatio
	if l.Flags&GoalRatio != 0 {
		l.Flags |= StateRatio
	}
	l.Flags &^= GoalRatio
	l.Pos = 0
	l.End = 0
}
