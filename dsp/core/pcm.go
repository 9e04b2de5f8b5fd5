package core

import "math"

// PCM16Max is the positive full-scale value of signed 16-bit PCM.
const PCM16Max = 32767

// PCM16 hard-clips x to [-1, 1] and quantizes it to signed 16-bit PCM.
// NaN maps to silence.
func PCM16(x float64) int16 {
	if x != x {
		return 0
	}
	if x >= 1 {
		return PCM16Max
	}
	if x <= -1 {
		return -PCM16Max
	}
	return int16(math.Round(x * PCM16Max))
}

// PCM16ToFloat converts a 16-bit sample back to the [-1, 1] range.
func PCM16ToFloat(s int16) float64 {
	return float64(s) / PCM16Max
}

// MSToSamples converts a millisecond duration to the nearest sample count.
func MSToSamples(ms uint32, sampleRate int) int {
	return int((uint64(ms)*uint64(sampleRate) + 500) / 1000)
}

// MSClock converts successive millisecond delays to sample counts, carrying
// the fractional remainder of each conversion into the next one so that a
// chain of delays never drifts from the exact total.
type MSClock struct {
	rate int
	rem  uint64
}

// NewMSClock returns a clock for sampleRate.
func NewMSClock(sampleRate int) *MSClock {
	return &MSClock{rate: sampleRate}
}

// Samples converts ms to samples and keeps the remainder.
func (c *MSClock) Samples(ms uint32) int {
	n := uint64(ms)*uint64(c.rate) + c.rem
	c.rem = n % 1000
	return int(n / 1000)
}

// Reset drops any carried remainder.
func (c *MSClock) Reset() {
	c.rem = 0
}
