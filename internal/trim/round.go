package trim

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Round rounds v to digits decimal places, halves away from zero
// (0.125 -> 0.13, -2.5 -> -3 at zero digits). Values that cannot be
// scaled without overflow are returned unchanged.
func Round(v float64, digits int) float64 {
	if digits < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if math.IsInf(v*math.Pow(10, float64(digits)), 0) {
		return v
	}
	rounded, err := stats.Round(v, digits)
	if err != nil {
		return v
	}
	return rounded
}
