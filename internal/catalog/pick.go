package catalog

// variantImageBonus favours the image the export ties to the chosen variant.
const variantImageBonus = 1.5

type scoredImage struct {
	url   string
	score float64
}

// PickBestImage returns the highest scoring image URL. Candidates are
// deduplicated by URL before scoring; the variant image, when set, competes
// with a bonus. Ties go to the earliest candidate. An empty string means no
// image is available.
func PickBestImage(s Scorer, variantImage string, images []ImageCandidate) string {
	if s == nil {
		s = HeuristicScorer{}
	}

	seen := make(map[string]bool, len(images))
	scored := make([]scoredImage, 0, len(images)+1)
	for _, img := range images {
		if img.URL == "" || seen[img.URL] {
			continue
		}
		seen[img.URL] = true
		scored = append(scored, scoredImage{url: img.URL, score: s.Score(img)})
	}
	if variantImage != "" {
		v := ImageCandidate{URL: variantImage, Alt: "variant"}
		scored = append(scored, scoredImage{url: variantImage, score: s.Score(v) + variantImageBonus})
	}
	if len(scored) == 0 {
		return ""
	}

	best := scored[0]
	for _, c := range scored[1:] {
		if c.score > best.score {
			best = c
		}
	}
	return best.url
}
