//go:build fastmath

package line

import "github.com/meko-christian/algo-approx"

// mathExp uses the fast approximation for the exponential curve family.
// Endpoint continuity then holds within the approximation error.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}
