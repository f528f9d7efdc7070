package catalog

import (
	"net/url"
	"path"
	"strings"
)

// Scorer rates how likely an image is to show the artwork alone rather than
// a staged room shot. Higher is better.
type Scorer interface {
	Score(c ImageCandidate) float64
}

var (
	positiveHints = []string{
		"[raw]", "raw", "artwork-only", "artwork only", "product", "packshot", "flat", "scan",
		"unframed", "no frame", "no-frame", "no mockup", "print only", "canvas only",
	}
	negativeHints = []string{
		"mock", "mockup", "interior", "room", "wall", "living", "bedroom", "kitchen", "sofa",
		"couch", "styled", "scene", "frame", "framed", "gallery wall", "home", "office",
	}
)

const (
	positiveBonus   = 10.0
	negativePenalty = 8.0
	maxPositionGain = 5
)

// HeuristicScorer scores by substring hints in the alt text and file name,
// plus a small bonus for images near the front of the list.
type HeuristicScorer struct{}

func (HeuristicScorer) Score(c ImageCandidate) float64 {
	text := strings.ToLower(c.Alt) + " " + strings.ToLower(fileName(c.URL))

	score := 0.0
	if containsAny(text, positiveHints) {
		score += positiveBonus
	}
	if containsAny(text, negativeHints) {
		score -= negativePenalty
	}
	if c.Position > 0 {
		score += float64(maxPositionGain - min(c.Position, maxPositionGain))
	}
	return score
}

// fileName returns the last path segment of an image URL, ignoring the query.
func fileName(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
