package program

// EstimateDurationMS returns the time at which the last voice falls silent.
// A voice lasts as long as the longest finite operator on its carrier chain,
// silence included. Infinite operators, the default until an event sets a
// time, do not extend it.
func (p *Program) EstimateDurationMS() uint32 {
	type opState struct {
		time     Time
		silence  uint32
		carriers []int
	}
	ops := make([]opState, p.OpCount)
	for i := range ops {
		ops[i].time.Infinite = true
	}
	carrier := make([]int, p.VoiceCount)
	for i := range carrier {
		carrier[i] = -1
	}

	visiting := make([]bool, p.OpCount)
	var chain func(id int) uint32
	chain = func(id int) uint32 {
		if id < 0 || id >= len(ops) || visiting[id] {
			return 0
		}
		visiting[id] = true
		op := &ops[id]
		var d uint32
		if !op.time.Infinite {
			d = op.silence + op.time.MS
		}
		for _, c := range op.carriers {
			if cd := chain(c); cd > d {
				d = cd
			}
		}
		visiting[id] = false
		return d
	}

	var now, end uint32
	for i := range p.Events {
		ev := &p.Events[i]
		now += ev.WaitMS
		for j := range ev.Ops {
			od := &ev.Ops[j]
			if od.ID < 0 || od.ID >= len(ops) {
				continue
			}
			op := &ops[od.ID]
			if od.Params.Has(ParamTime) {
				op.time = od.Time
			}
			if od.Params.Has(ParamSilence) {
				op.silence = od.SilenceMS
			}
			if od.ModsSet.Has(RoleCarrier) {
				op.carriers = od.Mods[RoleCarrier]
			}
		}
		if ev.VoiceID < 0 || ev.VoiceID >= len(carrier) {
			continue
		}
		if ev.Voice != nil && ev.Voice.Params.Has(VoParamCarrier) {
			carrier[ev.VoiceID] = ev.Voice.Carrier
		}
		if t := now + chain(carrier[ev.VoiceID]); t > end {
			end = t
		}
	}
	return end
}
