package allocation

import "github.com/shopspring/decimal"

// Percentages cross the API as decimals; basis points are the fixed-point
// view used alongside them in responses (100% == 10000 bps).

var bpsPerPercent = decimal.NewFromInt(100)

// ToBasisPoints converts a percentage to whole basis points, rounding half
// away from zero.
func ToBasisPoints(pct decimal.Decimal) int64 {
	return pct.Mul(bpsPerPercent).Round(0).IntPart()
}

// FromBasisPoints converts whole basis points back to a percentage.
func FromBasisPoints(bps int64) decimal.Decimal {
	return decimal.NewFromInt(bps).Div(bpsPerPercent)
}
