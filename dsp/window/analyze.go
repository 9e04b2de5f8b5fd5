package window

// Analysis holds the amplitude properties of a set of window coefficients.
type Analysis struct {
	// CoherentGain is sum(w[n]) / N, the DC response of the window.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
}

// Analyze computes the coherent gain and equivalent noise bandwidth of coeffs.
func Analyze(coeffs []float64) Analysis {
	n := len(coeffs)
	if n == 0 {
		return Analysis{}
	}

	sum := 0.0
	sumSq := 0.0
	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}

	a := Analysis{CoherentGain: sum / float64(n)}
	if sum != 0 {
		a.ENBW = float64(n) * sumSq / (sum * sum)
	}
	return a
}
