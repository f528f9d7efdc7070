package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// dimensionRe matches "150x100", "150 x 100 cm", "150×100" and decimal
// sides written with either separator.
var dimensionRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*[x×]\s*(\d+(?:[.,]\d+)?)(?:\s*cm)?`)

// DefaultRatio is used whenever no dimension can be read.
const DefaultRatio = 1.0

// HasDimension reports whether text contains a dimension expression at all,
// regardless of whether its sides are usable.
func HasDimension(text string) bool {
	return text != "" && dimensionRe.MatchString(text)
}

// MatchRatio returns width/height for the first dimension expression in
// text. ok is false when there is none or a side is not positive.
func MatchRatio(text string) (ratio float64, ok bool) {
	if text == "" {
		return DefaultRatio, false
	}
	m := dimensionRe.FindStringSubmatch(text)
	if m == nil {
		return DefaultRatio, false
	}
	w, h := ToFloat(m[1]), ToFloat(m[2])
	if w <= 0 || h <= 0 {
		return DefaultRatio, false
	}
	return w / h, true
}

// ParseRatio is MatchRatio without the ok flag.
func ParseRatio(text string) float64 {
	r, _ := MatchRatio(text)
	return r
}

// MatchRatioFromHandle reads a ratio from a URL slug such as "sunset-150x100".
func MatchRatioFromHandle(handle string) (float64, bool) {
	return MatchRatio(strings.ReplaceAll(handle, "-", " "))
}

// ParseRatioFromHandle is MatchRatioFromHandle without the ok flag.
func ParseRatioFromHandle(handle string) float64 {
	r, _ := MatchRatioFromHandle(handle)
	return r
}

// ToFloat coerces a possibly comma-decimal number to float64. Anything that
// does not parse, including NaN and infinities, is 0.
func ToFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// toPosition parses a 1-based image position; anything else is 0 (unknown).
func toPosition(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
