// Package interp provides the interpolation primitives used for wave table
// lookups.
//
//   - [Linear2]:  2-point linear interpolation ("lerp")
//   - [Hermite4]: 4-point cubic Hermite ("herp")
//
// [Table] and [TableHermite] read power-of-two tables addressed by a 32-bit
// fixed-point phase, wrapping at the table end.
package interp
