// Package arith holds the float comparison and rounding helpers used for
// every monetary amount in the system. Currency values are plain float64,
// so ordering checks must tolerate representation error: LessThan and
// GreaterThan compare with an epsilon relative to the larger magnitude
// instead of the raw < and > operators.
package arith

import "math"

// epsilon is the difference between 1.0 and the next representable
// float64 (machine epsilon, 2^-52).
const epsilon = 0x1p-52

// LessThan reports whether a is less than b beyond relative epsilon:
// (b-a) > max(|a|,|b|) * epsilon.
func LessThan(a, b float64) bool {
	return (b - a) > maxAbs(a, b)*epsilon
}

// GreaterThan reports whether a is greater than b beyond relative epsilon.
func GreaterThan(a, b float64) bool {
	return (a - b) > maxAbs(a, b)*epsilon
}

func maxAbs(a, b float64) float64 {
	if math.Abs(a) < math.Abs(b) {
		return math.Abs(b)
	}
	return math.Abs(a)
}

// Round rounds v to the given number of decimal places, ties away
// from zero.
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
