package generator

import (
	"errors"
	"fmt"
	"log"

	"github.com/cwbudde/algo-synth/dsp/buffer"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/dither"
	"github.com/cwbudde/algo-synth/synth/program"
)

// ErrConfig is wrapped by errors caused by invalid generator options.
var ErrConfig = errors.New("generator: invalid configuration")

// bufsPerLevel is the number of scratch buffers one operator holds while
// rendering: frequency, frequency/amplitude target, modulator sum,
// amplitude, phase offsets, frequency-relative phase offsets, wave output
// and feedback amount.
const bufsPerLevel = 8

// Generator renders one program. It is not safe for concurrent use.
type Generator struct {
	prog   *program.Program
	cfg    core.ProcessorConfig
	logger *log.Logger
	amp    float64
	quant  *dither.Quantizer

	ops    []operator
	voices []voice
	visit  visitSet

	bufs   *buffer.Arena[float64]
	phases *buffer.Arena[uint32]

	voiceOut []float64
	panBuf   []float64
	gainL    []float64
	gainR    []float64
	mixL     []float64
	mixR     []float64
	mixUsed  int

	clock     *core.MSClock
	nextEvent int
	wait      int
	cursor    int
	ended     bool

	arenaWarned bool
}

// New prepares a generator for prog. The program is validated and all
// runtime state is allocated here.
func New(prog *program.Program, opts ...Option) (*Generator, error) {
	if err := prog.Validate(); err != nil {
		return nil, err
	}

	s := defaultSettings()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&s); err != nil {
			return nil, err
		}
	}
	cfg := core.ApplyProcessorOptions(s.proc...)

	depth := max(prog.NestDepth, prog.EstimateNestDepth())
	bufs, err := buffer.NewArena[float64]((1+depth)*bufsPerLevel, cfg.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	phases, err := buffer.NewArena[uint32](1+depth, cfg.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	var quant *dither.Quantizer
	if s.dithered {
		quant, err = dither.New(cfg.SampleRate, cfg.Channels, s.dither...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
	}

	amp := s.ampScale
	if prog.Mode&program.ModeAmpDivVoices != 0 && prog.VoiceCount > 0 {
		amp /= float64(prog.VoiceCount)
	}

	g := &Generator{
		prog:     prog,
		cfg:      cfg,
		logger:   s.logger,
		amp:      amp,
		quant:    quant,
		ops:      make([]operator, prog.OpCount),
		voices:   make([]voice, prog.VoiceCount),
		visit:    newVisitSet(prog.OpCount),
		bufs:     bufs,
		phases:   phases,
		voiceOut: make([]float64, cfg.BlockSize),
		panBuf:   make([]float64, cfg.BlockSize),
		gainL:    make([]float64, cfg.BlockSize),
		gainR:    make([]float64, cfg.BlockSize),
		mixL:     make([]float64, cfg.BlockSize),
		mixR:     make([]float64, cfg.BlockSize),
		clock:    core.NewMSClock(cfg.SampleRate),
	}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Config returns the rendering configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Program returns the program being rendered.
func (g *Generator) Program() *program.Program {
	return g.prog
}

// Reset rewinds the generator to the start of the program.
func (g *Generator) Reset() error {
	for i := range g.ops {
		if err := g.ops[i].reset(i, g.cfg.SampleRate); err != nil {
			return err
		}
	}
	for i := range g.voices {
		g.voices[i].reset(i)
	}
	g.visit.clear()
	g.bufs.Reset()
	g.phases.Reset()
	core.Zero(g.mixL)
	core.Zero(g.mixR)
	g.mixUsed = 0
	if g.quant != nil {
		g.quant.Reset()
	}

	g.clock.Reset()
	g.nextEvent = 0
	g.wait = 0
	if len(g.prog.Events) > 0 {
		g.wait = g.clock.Samples(g.prog.Events[0].WaitMS)
	}
	g.cursor = 0
	g.ended = false
	g.arenaWarned = false
	return nil
}

// Run renders up to len(dst)/channels frames into dst and returns the
// number of frames written. more is false once the program has ended; the
// frames returned by that call are the last ones.
func (g *Generator) Run(dst []int16) (frames int, more bool) {
	ch := g.cfg.Channels
	want := len(dst) / ch
	events := g.prog.Events

	for frames < want {
		for g.nextEvent < len(events) && g.wait == 0 {
			g.handleEvent(&events[g.nextEvent])
			g.nextEvent++
			if g.nextEvent < len(events) {
				g.wait = g.clock.Samples(events[g.nextEvent].WaitMS)
			}
		}

		pending := g.nextEvent < len(events)
		if !pending && !g.active() {
			break
		}
		n := want - frames
		if pending {
			n = min(n, g.wait)
		} else {
			n = min(n, g.tail())
		}
		g.render(dst[frames*ch:(frames+n)*ch], n)
		frames += n
		if pending {
			g.wait -= n
		}
	}

	more = g.nextEvent < len(events) || g.active()
	if !more && !g.ended {
		g.ended = true
		g.reportUninitialized()
	}
	return frames, more
}

// active reports whether any voice still has samples to play, moving the
// cursor past exhausted voices.
func (g *Generator) active() bool {
	for g.cursor < len(g.voices) && g.voices[g.cursor].remaining == 0 {
		g.cursor++
	}
	for i := g.cursor; i < len(g.voices); i++ {
		if g.voices[i].remaining > 0 {
			return true
		}
	}
	return false
}

// tail returns the samples left until the longest remaining voice ends.
func (g *Generator) tail() int {
	n := 0
	for i := g.cursor; i < len(g.voices); i++ {
		n = max(n, g.voices[i].remaining)
	}
	return n
}

func (g *Generator) reportUninitialized() {
	for i := range g.voices {
		if !g.voices[i].initialized {
			g.logger.Printf("voice %d was never initialized", i)
		}
	}
}

// Render renders prog from start to end with a fresh generator.
func Render(prog *program.Program, opts ...Option) ([]int16, error) {
	g, err := New(prog, opts...)
	if err != nil {
		return nil, err
	}

	ch := g.cfg.Channels
	block := make([]int16, g.cfg.BlockSize*ch)
	var out []int16
	for {
		n, more := g.Run(block)
		out = append(out, block[:n*ch]...)
		if !more {
			return out, nil
		}
	}
}
