package catalog

import "strings"

const (
	DefaultLimit = 30
	MaxLimit     = 60

	// ratios within this band of 1 count as square
	squareTolerance = 0.05
)

// Orientation values accepted by FilterOptions.
const (
	OrientationLandscape = "landscape"
	OrientationPortrait  = "portrait"
	OrientationSquare    = "square"
)

type FilterOptions struct {
	FreeWords   string
	MinPrice    float64
	MaxPrice    float64 // 0 means no upper bound
	Orientation string
	Limit       int
}

// ClampLimit keeps a requested page size within [1, MaxLimit]; 0 selects the default.
func ClampLimit(n int) int {
	if n == 0 {
		return DefaultLimit
	}
	return max(1, min(n, MaxLimit))
}

// Orientation classifies a width/height ratio.
func Orientation(ratio float64) string {
	switch {
	case ratio > 1+squareTolerance:
		return OrientationLandscape
	case ratio < 1-squareTolerance:
		return OrientationPortrait
	default:
		return OrientationSquare
	}
}

// Filter returns entries matching every set option, in input order, capped at the limit.
func Filter(entries []ArtworkEntry, opt FilterOptions) []ArtworkEntry {
	limit := ClampLimit(opt.Limit)
	keywords := strings.Fields(strings.ToLower(opt.FreeWords))

	out := make([]ArtworkEntry, 0, min(len(entries), limit))
	for _, e := range entries {
		if len(out) >= limit {
			break
		}
		if opt.MinPrice > 0 && e.Price < opt.MinPrice {
			continue
		}
		if opt.MaxPrice > 0 && e.Price > opt.MaxPrice {
			continue
		}
		if opt.Orientation != "" && Orientation(e.Ratio) != strings.ToLower(opt.Orientation) {
			continue
		}
		if len(keywords) > 0 {
			title := strings.ToLower(e.Title)
			ok := true
			for _, k := range keywords {
				if !strings.Contains(title, k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
