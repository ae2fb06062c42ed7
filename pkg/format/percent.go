// Package format provides display formatting for percentages and counts.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Percent returns a percentage with two decimals and a percent sign (e.g., "82.84%").
func Percent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// Range returns an inclusive hit range (e.g., "1-3", or "2" when min equals max).
func Range(min, max int) string {
	if min == max {
		return strconv.Itoa(min)
	}
	return fmt.Sprintf("%d-%d", min, max)
}

// Count returns an integer with thousands separators (e.g., "-1,234,567").
func Count(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + groupThousands(strconv.Itoa(n))
}

func groupThousands(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}

	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}
