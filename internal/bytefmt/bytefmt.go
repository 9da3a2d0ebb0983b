// Package bytefmt renders byte counts as short human-readable strings
// using binary (1024-based) units.
package bytefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// Format renders n as a value with at most two decimal places followed by a
// binary unit. Trailing zeros in the fraction are trimmed, so 1024 becomes
// "1 KB" and 1536 becomes "1.5 KB". Negative values are not expected and are
// rendered as "0 B".
func Format(n int64) string {
	if n <= 0 {
		return "0 B"
	}

	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}

	v := float64(n) / math.Pow(1024, float64(i))
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")

	return fmt.Sprintf("%s %s", s, units[i])
}
