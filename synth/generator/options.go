package generator

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/dither"
)

// Option configures a Generator. Options that receive invalid values make
// New fail with ErrConfig.
type Option func(*settings) error

type settings struct {
	proc     []core.ProcessorOption
	logger   *log.Logger
	ampScale float64
	dither   []dither.Option
	dithered bool
}

func defaultSettings() settings {
	return settings{
		logger:   log.New(os.Stderr, "generator: ", 0),
		ampScale: 1,
	}
}

// WithSampleRate sets the output sample rate in Hz.
func WithSampleRate(hz int) Option {
	return func(s *settings) error {
		if hz <= 0 {
			return fmt.Errorf("%w: sample rate must be > 0: %d", ErrConfig, hz)
		}
		s.proc = append(s.proc, core.WithSampleRate(hz))
		return nil
	}
}

// WithBlockSize sets the number of frames rendered per internal pass.
func WithBlockSize(frames int) Option {
	return func(s *settings) error {
		if frames <= 0 {
			return fmt.Errorf("%w: block size must be > 0: %d", ErrConfig, frames)
		}
		s.proc = append(s.proc, core.WithBlockSize(frames))
		return nil
	}
}

// WithChannels selects mono (1) or interleaved stereo (2) output.
func WithChannels(n int) Option {
	return func(s *settings) error {
		if n != 1 && n != 2 {
			return fmt.Errorf("%w: channels must be 1 or 2: %d", ErrConfig, n)
		}
		s.proc = append(s.proc, core.WithChannels(n))
		return nil
	}
}

// WithLogger sets the destination of diagnostics. A nil logger discards
// them.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) error {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		s.logger = l
		return nil
	}
}

// WithAmpScale scales the mix before clipping.
func WithAmpScale(scale float64) Option {
	return func(s *settings) error {
		if math.IsNaN(scale) || math.IsInf(scale, 0) || scale < 0 {
			return fmt.Errorf("%w: amplitude scale must be finite and >= 0: %v", ErrConfig, scale)
		}
		s.ampScale = scale
		return nil
	}
}

// WithDither quantizes the output through a dither.Quantizer built from
// opts instead of plain rounding. The noise is seeded, so output stays
// reproducible across runs and after Reset.
func WithDither(opts ...dither.Option) Option {
	return func(s *settings) error {
		s.dither = append(s.dither[:0:0], opts...)
		s.dithered = true
		return nil
	}
}
