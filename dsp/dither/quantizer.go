package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const pcm16Max = 32767

// Quantizer converts samples in [-1, 1] to signed 16-bit PCM.
type Quantizer struct {
	cfg     config
	rng     *rand.Rand
	src     *rand.PCG
	shapers []shaper
}

// New returns a Quantizer for the given sample rate and channel count.
func New(sampleRate, channels int, opts ...Option) (*Quantizer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("dither: sample rate must be > 0: %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("dither: channel count must be > 0: %d", channels)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	q := &Quantizer{
		cfg:     cfg,
		src:     rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15),
		shapers: make([]shaper, channels),
	}
	q.rng = rand.New(q.src)
	taps := cfg.shaping.coefficients(sampleRate)
	for i := range q.shapers {
		q.shapers[i] = newShaper(taps)
	}
	return q, nil
}

// Type returns the dither noise type.
func (q *Quantizer) Type() Type { return q.cfg.typ }

// Shaping returns the noise-shaping filter.
func (q *Quantizer) Shaping() Shaping { return q.cfg.shaping }

// Channels returns the number of independent channel states.
func (q *Quantizer) Channels() int { return len(q.shapers) }

// PCM16 quantizes x for channel ch. Full scale maps to ±32767 and values
// beyond it are clipped. NaN maps to silence and leaves the shaper untouched.
func (q *Quantizer) PCM16(ch int, x float64) int16 {
	if x != x {
		return 0
	}
	s := &q.shapers[ch]
	shaped := s.shape(pcm16Max * x)
	v := math.Round(shaped + q.noise())
	v = max(-pcm16Max, min(pcm16Max, v))
	s.record(v - shaped)
	return int16(v)
}

// Reset clears the shaping history and reseeds the noise generator.
func (q *Quantizer) Reset() {
	q.src.Seed(q.cfg.seed, q.cfg.seed^0x9e3779b97f4a7c15)
	for i := range q.shapers {
		q.shapers[i].reset()
	}
}

func (q *Quantizer) noise() float64 {
	switch q.cfg.typ {
	case Rectangular:
		return q.cfg.amplitude * (q.rng.Float64() - 0.5)
	case Triangular:
		return q.cfg.amplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}
