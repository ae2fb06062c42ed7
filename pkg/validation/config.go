// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/deck-odds/pkg/constants"
)

// ValidateCategoryRange checks that a category's range can be met by a hand
func ValidateCategoryRange(name string, min, max, handSize int) []string {
	var warnings []string

	if min > handSize {
		warnings = append(warnings, fmt.Sprintf("Category '%s' requires at least %d cards in a hand of %d - it can never succeed",
			name, min, handSize))
	} else if max > handSize {
		warnings = append(warnings, fmt.Sprintf("Category '%s' max %d exceeds hand size %d - counts above the hand size are never drawn",
			name, max, handSize))
	}

	return warnings
}

// ValidateCategoryCount checks that a category holds enough cards to reach its minimum
func ValidateCategoryCount(name string, count, min int) string {
	if count < min {
		return fmt.Sprintf("Category '%s' has %d cards but requires at least %d in hand - it can never succeed",
			name, count, min)
	}
	return ""
}

// ValidateSampleCount warns when a simulation is too small to be a useful cross-check
func ValidateSampleCount(samples int) string {
	if samples > 0 && samples < constants.MinRecommendedSamples {
		return fmt.Sprintf("Monte Carlo samples %d is below the recommended minimum of %d - estimates will be noisy",
			samples, constants.MinRecommendedSamples)
	}
	return ""
}

// ConfigValidator gathers warnings for a deck that is valid but likely misconfigured
type ConfigValidator struct {
	HandSize   int
	Samples    int
	Categories []CategoryConfig
}

type CategoryConfig struct {
	Name  string
	Count int
	Min   int
	Max   int
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	for _, c := range cv.Categories {
		warnings = append(warnings, ValidateCategoryRange(c.Name, c.Min, c.Max, cv.HandSize)...)
		if warning := ValidateCategoryCount(c.Name, c.Count, c.Min); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if warning := ValidateSampleCount(cv.Samples); warning != "" {
		warnings = append(warnings, warning)
	}

	return warnings
}
