package stats

import "math"

// AutoBins picks a histogram bin count for x the way numpy's "auto" estimator
// does: the smaller of the Sturges and Freedman-Diaconis bin widths, falling
// back to Sturges when the IQR is zero. Always returns at least 1.
func AutoBins(x []float64) int {
	n := len(x)
	if n < 2 {
		return 1
	}
	lo, hi := MinMax(x)
	span := hi - lo
	if span == 0 {
		return 1
	}

	sturges := span / (math.Log2(float64(n)) + 1)
	width := sturges
	if fd := 2 * IQR(x) * math.Pow(float64(n), -1.0/3); fd > 0 && fd < sturges {
		width = fd
	}
	bins := int(math.Ceil(span / width))
	if bins < 1 {
		return 1
	}
	return bins
}
