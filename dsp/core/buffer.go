package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Fill sets all values in buf to v.
func Fill(buf []float64, v float64) {
	for i := range buf {
		buf[i] = v
	}
}

// ZeroTail clears buf[from:], clamping from to the slice bounds.
// It is used to silence the part of a block an expired source no longer covers.
func ZeroTail(buf []float64, from int) {
	if from < 0 {
		from = 0
	}
	if from >= len(buf) {
		return
	}
	Zero(buf[from:])
}
