package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(48000),
		core.WithBlockSize(256),
		core.WithChannels(1),
	)

	fmt.Printf("sampleRate=%d blockSize=%d channels=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Channels)

	// Output:
	// sampleRate=48000 blockSize=256 channels=1
}

func ExampleMSClock() {
	c := core.NewMSClock(44100)
	fmt.Println(c.Samples(10), c.Samples(10), c.Samples(10))

	// Output:
	// 441 441 441
}
