// Package line implements per-parameter value trajectories ("lines").
//
// A [Line] holds a current value and an optional goal reached after a span
// of samples. [Line.Run] renders the trajectory into a buffer and
// [Line.Skip] advances it without output. Once the goal is reached it becomes
// the new current value and the line holds steady.
//
// The shape of the approach is selected per line with a [Type]:
//
//   - Hold: keep the start value, jump to the goal at the end
//   - Lin, Cos: straight and half-cosine ("sinuous") segments
//   - Xpe, Lge: saturating exponential and logarithmic curves
//   - Exp, Log: pick Xpe or Lge from the direction of change
//   - Sqe, Cub, Smooth: quadratic and cubic ease, smoothstep
//   - Noise, NoiseLin, NoiseCos: uniform noise and noise-perturbed segments
//   - Ead: attack/decay asymmetric curve
//
// Noise is a pure function of the sample position and a per-line seed, so
// rendering is reproducible.
//
// Values can be ratios of an external modulation buffer (typically a
// parent oscillator's frequency): when a ratio flag is set and a buffer is
// passed to Run, the corresponding endpoint is multiplied per sample.
package line
