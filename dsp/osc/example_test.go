package osc_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/osc"
	"github.com/cwbudde/algo-synth/dsp/wave"
)

func ExampleOsc_Run() {
	o, err := osc.New(44100, wave.Sin)
	if err != nil {
		panic(err)
	}

	n := o.CycleLen(441)
	freq := make([]float64, n)
	for i := range freq {
		freq[i] = 441
	}
	phase := make([]uint32, n)
	out := make([]float64, n)
	o.FillPhase(phase, freq, nil, nil)
	o.Run(out, phase)

	fmt.Println(n, out[24] > 0.99, out[74] < -0.99)
	// Output: 100 true true
}
