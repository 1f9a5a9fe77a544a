package emissions

import (
	"math"
	"strconv"
	"strings"
)

// formatFloat formats a float for display.
// Integers are formatted without decimals; other values are rounded to at most
// decimals places with trailing zeros removed.
func formatFloat(f float64, decimals int) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	s := strconv.FormatFloat(f, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// formatFactor formats a table factor with the fewest digits that round-trip.
func formatFactor(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
