package engine

import "math"

// roundFloat rounds v to the given number of decimal places.
func roundFloat(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// safeRatio returns num/den, or fallback when den is zero. Every tiered
// formula in the engine goes through this instead of dividing directly,
// so degenerate inputs land in a documented tier rather than producing
// NaN somewhere downstream.
func safeRatio(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}
