package common

import "math"

// Round rounds v to places decimal digits. Ties go to the even neighbour so
// published values match what upstream tooling prints for the same input.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.RoundToEven(v*p) / p
}

// Finite reports whether every value is neither NaN nor ±Inf.
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
