package dither

import (
	"fmt"
	"math"
)

type config struct {
	typ       Type
	amplitude float64
	shaping   Shaping
	seed      uint64
}

func defaultConfig() config {
	return config{
		typ:       Triangular,
		amplitude: 1,
		shaping:   ShapingNone,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithType sets the dither noise PDF (default [Triangular]).
func WithType(t Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("dither: invalid type: %d", t)
		}
		cfg.typ = t
		return nil
	}
}

// WithAmplitude scales the dither noise in LSBs (default 1, must be >= 0).
func WithAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			return fmt.Errorf("dither: amplitude must be >= 0 and finite: %f", amp)
		}
		cfg.amplitude = amp
		return nil
	}
}

// WithShaping sets the noise-shaping filter (default [ShapingNone]).
func WithShaping(s Shaping) Option {
	return func(cfg *config) error {
		if !s.Valid() {
			return fmt.Errorf("dither: invalid shaping: %d", s)
		}
		cfg.shaping = s
		return nil
	}
}

// WithSeed seeds the noise generator (default 0).
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}
