package projection

import "github.com/shopspring/decimal"

// roundTo rounds x to the given number of decimal places, half away from zero.
// x must be finite.
func roundTo(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

func roundMoney(x float64) float64 { return roundTo(x, 0) }

// roundPercent is the LTV emission granularity (whole percent).
func roundPercent(x float64) float64 { return roundTo(x, 0) }
