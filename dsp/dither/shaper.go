package dither

// shaper is an FIR error-feedback filter over a ring of past errors.
type shaper struct {
	taps []float64
	hist []float64
	pos  int
}

func newShaper(taps []float64) shaper {
	return shaper{taps: taps, hist: make([]float64, len(taps))}
}

// shape subtracts the weighted past errors from x and advances the ring.
func (s *shaper) shape(x float64) float64 {
	n := len(s.taps)
	if n == 0 {
		return x
	}
	for i, c := range s.taps {
		x -= c * s.hist[(n+s.pos-i)%n]
	}
	s.pos = (s.pos + 1) % n
	return x
}

// record stores the error of the sample last passed to shape.
func (s *shaper) record(e float64) {
	if len(s.taps) == 0 {
		return
	}
	s.hist[s.pos] = e
}

func (s *shaper) reset() {
	clear(s.hist)
	s.pos = 0
}
