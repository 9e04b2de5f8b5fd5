// Package alias measures how much of a periodic signal's energy lies off
// its harmonic series.
//
// A band-limited oscillator at fundamental f only produces energy at k*f
// below Nyquist. Everything else in the spectrum is aliasing folded back
// from above Nyquist (plus window leakage, which is the same for every
// signal measured with one configuration). The alias-to-harmonic power
// ratio therefore ranks oscillator implementations.
package alias
