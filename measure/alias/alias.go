package alias

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/window"
)

const defaultCaptureBins = 3

// Config holds measurement parameters.
type Config struct {
	SampleRate  float64
	Fundamental float64
	// FFTSize defaults to the next power of two of the signal length.
	FFTSize int
	// CaptureBins is the number of bins on each side of a harmonic counted
	// as part of it. Defaults to 3, the Hann main lobe plus margin. Wider
	// windows need more.
	CaptureBins int
	// Window defaults to Hann.
	Window window.Type
}

// Result holds the measured powers. Powers are normalized by the window's
// coherent gain and noise bandwidth, so a sine of amplitude A contributes
// about A*A/2, its mean square.
//
//nolint:revive
type Result struct {
	Harmonics     int
	HarmonicPower float64
	AliasPower    float64
	Ratio         float64
	Ratio_dB      float64
}

// ErrConfig is wrapped by errors caused by invalid configuration.
var ErrConfig = errors.New("alias: invalid configuration")

// Meter performs repeated measurements with one configuration.
type Meter struct {
	cfg    Config
	plan   *algofft.Plan[complex128]
	window []float64
	norm   float64
	in     []complex128
	out    []complex128
	re     []float64
	im     []float64
	power  []float64
	tmp    []float64
}

// NewMeter prepares a meter for signals of up to cfg.FFTSize samples.
func NewMeter(cfg Config) (*Meter, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %f", ErrConfig, cfg.SampleRate)
	}
	if cfg.Fundamental <= 0 || cfg.Fundamental >= cfg.SampleRate/2 {
		return nil, fmt.Errorf("%w: fundamental must be in (0, %f): %f",
			ErrConfig, cfg.SampleRate/2, cfg.Fundamental)
	}
	if cfg.FFTSize < 2 || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return nil, fmt.Errorf("%w: FFT size must be a power of two >= 2: %d", ErrConfig, cfg.FFTSize)
	}
	if cfg.CaptureBins <= 0 {
		cfg.CaptureBins = defaultCaptureBins
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("alias: fft plan: %w", err)
	}

	bins := cfg.FFTSize/2 + 1
	return &Meter{
		cfg:   cfg,
		plan:  plan,
		in:    make([]complex128, cfg.FFTSize),
		out:   make([]complex128, cfg.FFTSize),
		re:    make([]float64, bins),
		im:    make([]float64, bins),
		power: make([]float64, bins),
	}, nil
}

// Analyze is a one-shot measurement. A zero cfg.FFTSize is derived from the
// signal length.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if cfg.FFTSize == 0 {
		cfg.FFTSize = nextPowerOf2(len(signal))
	}
	m, err := NewMeter(cfg)
	if err != nil {
		return Result{}, err
	}
	return m.Analyze(signal)
}

// Analyze measures signal, which must not be longer than the FFT size.
// Shorter signals are zero-padded after windowing.
func (m *Meter) Analyze(signal []float64) (Result, error) {
	n := len(signal)
	if n == 0 || n > m.cfg.FFTSize {
		return Result{}, fmt.Errorf("alias: signal length must be in [1, %d]: %d", m.cfg.FFTSize, n)
	}

	if len(m.window) != n {
		w := window.Generate(m.cfg.Window, n)
		a := window.Analyze(w)
		if a.CoherentGain <= 0 {
			return Result{}, fmt.Errorf("alias: %v window of %d samples has no gain", m.cfg.Window, n)
		}
		m.window = w
		m.norm = 2 / (float64(m.cfg.FFTSize) * float64(n) * a.CoherentGain * a.CoherentGain * a.ENBW)
		m.tmp = make([]float64, n)
	}
	vecmath.MulBlock(m.tmp, signal, m.window)
	for i := range m.in {
		m.in[i] = 0
	}
	for i, v := range m.tmp {
		m.in[i] = complex(v, 0)
	}
	if err := m.plan.Forward(m.out, m.in); err != nil {
		return Result{}, fmt.Errorf("alias: fft: %w", err)
	}

	for i := range m.power {
		m.re[i] = real(m.out[i])
		m.im[i] = imag(m.out[i])
	}
	vecmath.Power(m.power, m.re, m.im)
	for i := range m.power {
		m.power[i] *= m.norm
	}

	return m.classify(), nil
}

// classify splits the spectrum into harmonic and off-harmonic power. The
// bins around DC are ignored.
func (m *Meter) classify() Result {
	binHz := m.cfg.SampleRate / float64(m.cfg.FFTSize)
	capture := m.cfg.CaptureBins
	last := len(m.power) - 1

	var res Result
	harmonic := make([]bool, len(m.power))
	for k := 1; ; k++ {
		f := float64(k) * m.cfg.Fundamental
		if f > m.cfg.SampleRate/2 {
			break
		}
		res.Harmonics++
		c := int(math.Round(f / binHz))
		for b := max(c-capture, 0); b <= min(c+capture, last); b++ {
			harmonic[b] = true
		}
	}

	for b := capture + 1; b <= last; b++ {
		if harmonic[b] {
			res.HarmonicPower += m.power[b]
		} else {
			res.AliasPower += m.power[b]
		}
	}

	if res.HarmonicPower > 0 {
		res.Ratio = res.AliasPower / res.HarmonicPower
	}
	res.Ratio_dB = core.PowerToDB(res.Ratio)
	return res
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
