package math

import (
	"math"
	"strconv"
)

// Format formats a float with the reporting precision of 2 decimals.
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// IsDefined reports whether f carries a usable value.
func IsDefined(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Undefined marks a position where an indicator lookback is not yet full.
func Undefined() float64 {
	return math.NaN()
}
