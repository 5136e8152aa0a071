package utils

import "math"

// FloatEqualLow low precision equal
func FloatEqualLow(l float64, r float64) bool {
	return math.Abs(l-r) <= 0.01
}

// MinInt return min
func MinInt(a, b int) int {
	if a > b {
		return b
	}
	return a
}
