package analysis

import "github.com/shopspring/decimal"

// Round2 rounds v to two decimal places, half away from zero. Every
// rate and confidence value in the persisted snapshot goes through this
// one function so the rounding rule cannot drift between writers:
// Round2(0.725) == 0.73.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
