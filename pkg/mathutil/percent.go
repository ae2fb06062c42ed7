// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
	"math/big"

	"github.com/iwvelando/deck-odds/pkg/constants"
)

// Round rounds a percentage to two decimals for display.
func Round(val float64) float64 {
	return math.Round(val*100) / 100
}

// IsZero checks if a percentage is effectively zero
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.PercentTolerance
}

// MinInt returns the minimum of two ints
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// MaxInt returns the maximum of two ints
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Binomial returns C(n, k) exactly. It is zero when k is outside [0, n].
func Binomial(n, k int) *big.Int {
	if n < 0 || k < 0 || k > n {
		return new(big.Int)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}

// Percent converts the ratio num/den to a percentage. A zero denominator
// yields zero.
func Percent(num, den *big.Int) float64 {
	if den.Sign() == 0 {
		return 0
	}
	f, _ := new(big.Rat).SetFrac(num, den).Float64()
	return f * constants.PercentageMultiplier
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ClampPercent bounds a percentage to [0, 100].
func ClampPercent(val float64) float64 {
	return math.Max(0, math.Min(constants.PercentageMultiplier, val))
}
