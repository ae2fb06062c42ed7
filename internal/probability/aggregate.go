package probability

import (
	"fmt"
	"strings"

	"github.com/iwvelando/deck-odds/pkg/constants"
	"github.com/iwvelando/deck-odds/pkg/mathutil"
)

// ZeroPolicy decides how a 0% category enters the combined probability.
type ZeroPolicy string

const (
	// SkipZero treats a 0% category as the multiplicative identity.
	SkipZero ZeroPolicy = constants.ZeroPolicySkip
	// MultiplyZero multiplies 0% categories in, zeroing the product.
	MultiplyZero ZeroPolicy = constants.ZeroPolicyMultiply
)

// ParseZeroPolicy maps a configuration value to a ZeroPolicy. The empty
// string selects SkipZero.
func ParseZeroPolicy(s string) (ZeroPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", constants.ZeroPolicySkip:
		return SkipZero, nil
	case constants.ZeroPolicyMultiply:
		return MultiplyZero, nil
	default:
		return "", fmt.Errorf("invalid zero policy %q, expected %s or %s", s, constants.ZeroPolicySkip, constants.ZeroPolicyMultiply)
	}
}

// Combine multiplies per-category percentages as if the categories were
// independent and returns the product as a percentage.
//
// This is a heuristic, not the joint probability: categories compete for
// the same hand slots, so the true probability that every category lands in
// range differs from the product.
//
// With SkipZero, 0% entries are left out of the product. If every entry is
// 0% the result is 0. An empty input yields 100.
func Combine(percents []float64, policy ZeroPolicy) float64 {
	product := 1.0
	used := 0
	for _, p := range percents {
		if mathutil.IsZero(p) {
			if policy == MultiplyZero {
				return 0
			}
			continue
		}
		product *= p / constants.PercentageMultiplier
		used++
	}
	if used == 0 && len(percents) > 0 {
		return 0
	}
	return mathutil.ClampPercent(product * constants.PercentageMultiplier)
}
