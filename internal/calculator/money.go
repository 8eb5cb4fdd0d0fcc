package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

// SignificanceThreshold is the amount below which a balance or transfer is
// treated as zero.
const SignificanceThreshold = 0.01

// MaxAmount is the largest expense amount accepted. Above it a float64 can
// no longer hold every cent.
const MaxAmount = 1e12

var threshold = decimal.NewFromFloat(SignificanceThreshold)

// toDecimal converts a stored amount. Non-finite values count as zero;
// they cannot come from a validated draft or a JSON snapshot.
func toDecimal(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// roundCents rounds to 2 decimal places, half away from zero.
func roundCents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
