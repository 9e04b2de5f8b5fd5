// Package wave holds the process-wide catalogue of oscillator look-up
// tables.
//
// Every wave has two tables of [Len] entries: the directly sampled shape
// (LUT) and its pre-integrated counterpart (PILUT), the running
// antiderivative of the DC-free shape rescaled to unit peak. Oscillators
// differentiate successive PILUT readings, which averages the wave over each
// sample step and suppresses aliasing of sharp edges. [Table.Scale] and
// [Table.Offset] undo the rescaling and restore the DC level.
//
// Tables are pure functions of fixed constants. They are built once, on the
// first call to [Init] or [Get], and never change afterwards.
package wave
