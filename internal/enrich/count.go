package enrich

import (
	"strconv"
	"strings"
)

// ParseEmployeeRange converts a textual employee count range into a numeric
// estimate. Supported shapes:
//
//	"1001-5000" -> 3000 (midpoint, integer division)
//	"51-200"    -> 125
//	"10001+"    -> 15001 (1.5x the base for open-ended ranges)
//	"3,200"     -> 3200 (bare number, separators stripped)
//
// Returns false for anything unparseable.
func ParseEmployeeRange(rangeStr string) (int, bool) {
	s := strings.TrimSpace(rangeStr)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	if strings.HasSuffix(s, "+") {
		base, err := strconv.Atoi(strings.TrimSuffix(s, "+"))
		if err != nil {
			return 0, false
		}
		return int(float64(base) * 1.5), true
	}

	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) != 2 {
			return 0, false
		}
		low, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, false
		}
		high, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, false
		}
		return (low + high) / 2, true
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
