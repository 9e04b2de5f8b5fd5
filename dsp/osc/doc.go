// Package osc implements the band-limited phase accumulator oscillator.
//
// An [Osc] advances a 32-bit fixed-point phase per sample. [Osc.FillPhase]
// turns per-sample frequency and phase modulation into absolute phases, and
// [Osc.Run] differentiates successive pre-integrated table readings at those
// phases:
//
//	s = (I(p) - I(prev)) / (p - prev) * scale + offset
//
// which is the mean of the wave over the sample step. A zero step reuses the
// previous sample, so a zero frequency yields a constant.
//
// The phase is pre-incremented: the sample emitted for index i belongs to
// the phase after adding that sample's increment.
package osc
