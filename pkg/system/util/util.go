package util

import "strconv"

// FmtFloat renders a float with six decimal places, the precision used for
// the timestamp and elapsed_sec columns (microsecond resolution).
func FmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// SafeDiv divides with a zero guard, used for the end-of-run average rate.
func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}
