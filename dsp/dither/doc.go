// Package dither quantizes float samples to 16-bit PCM with optional dither
// noise and error-feedback noise shaping.
//
// A [Quantizer] keeps independent shaping state per channel and draws noise
// from a seeded generator, so two quantizers built with the same options
// produce identical output for identical input.
package dither
