package service

import "math"

// Quote computes the final sale price for a piece of work:
//
//	total  = material + labor + other
//	profit = total * marginPercent / 100
//	price  = total + profit, rounded to 2 decimal places
//
// Rounding is half-away-from-zero (math.Round on cents), so Quote(100, 50,
// 20, 0) == 180.00 and the user-facing figure is deterministic. Inputs are
// expected non-negative and finite; marginPercent may exceed 100. Input
// validation happens at the API boundary before this function is reached.
func Quote(material, labor, marginPercent, other float64) float64 {
	total := material + labor + other
	profit := total * marginPercent / 100
	return math.Round((total+profit)*100) / 100
}
