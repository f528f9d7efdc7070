package catalog

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// LinkBuilder builds the purchase reference for a product. The variant id,
// when present, must be embedded unchanged.
type LinkBuilder interface {
	ProductURL(handle, variantID string) string
}

// shopifyCDN images accept a width hint; the catalog asks for a display-sized copy.
const (
	shopifyCDN   = "cdn.shopify.com"
	displayWidth = "width=900"
)

// Resolver reduces variant rows to one ArtworkEntry per handle.
type Resolver struct {
	Scorer Scorer
	Links  LinkBuilder
}

// NewResolver returns a Resolver using the heuristic image scorer.
func NewResolver(links LinkBuilder) *Resolver {
	return &Resolver{Scorer: HeuristicScorer{}, Links: links}
}

// Resolve groups rows by handle, skipping rows without one, and resolves
// each group. Entries come out in the order handles were first seen.
func (r *Resolver) Resolve(rows []Row) []ArtworkEntry {
	var order []string
	groups := make(map[string][]Row)
	for _, row := range rows {
		handle := strings.TrimSpace(row.Get(FieldHandle))
		if handle == "" {
			continue
		}
		if _, ok := groups[handle]; !ok {
			order = append(order, handle)
		}
		groups[handle] = append(groups[handle], row)
	}

	out := make([]ArtworkEntry, 0, len(order))
	for _, handle := range order {
		out = append(out, r.ResolveProduct(handle, groups[handle]))
	}
	return out
}

// ResolveProduct builds the entry for one handle. rows must not be empty.
func (r *Resolver) ResolveProduct(handle string, rows []Row) ArtworkEntry {
	choice := chooseVariant(rows)

	title := cleanTitle(choice.Get(FieldTitle))
	variantTitle := strings.TrimSpace(choice.Get(FieldVariantTitle))
	displayTitle := title
	if variantTitle != "" && !strings.EqualFold(variantTitle, "default title") {
		displayTitle = title + " — " + variantTitle
	}

	price := ToFloat(choice.Get(FieldVariantPrice))
	if price < 0 {
		price = 0
	}

	imageURL := PickBestImage(r.Scorer, choice.Get(FieldVariantImage), gatherImages(rows))
	if imageURL != "" && strings.Contains(imageURL, shopifyCDN) {
		if strings.Contains(imageURL, "?") {
			imageURL += "&" + displayWidth
		} else {
			imageURL += "?" + displayWidth
		}
	}

	variantID := strings.TrimSpace(choice.Get(FieldVariantID))
	id := handle
	if variantID != "" {
		id = handle + "-" + variantID
	}

	entry := ArtworkEntry{
		ID:         id,
		Title:      displayTitle,
		ImageURL:   imageURL,
		Ratio:      resolveRatio(variantTitle, title, handle),
		Price:      price,
		ProductURL: r.productURL(handle, variantID),
		VariantID:  variantID,
	}

	log.Debug().
		Str("handle", handle).
		Int("rows", len(rows)).
		Str("variant_id", variantID).
		Float64("ratio", entry.Ratio).
		Str("image_url", imageURL).
		Msg("Resolved artwork")

	return entry
}

func (r *Resolver) productURL(handle, variantID string) string {
	if r.Links != nil {
		return r.Links.ProductURL(handle, variantID)
	}
	if variantID != "" {
		return "/products/" + handle + "?variant=" + variantID
	}
	return "/products/" + handle
}

// chooseVariant prefers the first row whose variant title names a size, then
// the first row with a positive price, then the first row.
func chooseVariant(rows []Row) Row {
	for _, row := range rows {
		if HasDimension(row.Get(FieldVariantTitle)) {
			return row
		}
	}
	for _, row := range rows {
		if ToFloat(row.Get(FieldVariantPrice)) > 0 {
			return row
		}
	}
	return rows[0]
}

// resolveRatio tries variant title, title and handle in turn; the first one
// carrying a usable dimension wins.
func resolveRatio(variantTitle, title, handle string) float64 {
	if r, ok := MatchRatio(variantTitle); ok {
		return r
	}
	if r, ok := MatchRatio(title); ok {
		return r
	}
	if r, ok := MatchRatioFromHandle(handle); ok {
		return r
	}
	return DefaultRatio
}

func gatherImages(rows []Row) []ImageCandidate {
	var images []ImageCandidate
	for _, row := range rows {
		src := row.Get(FieldImageSrc)
		if src == "" {
			continue
		}
		images = append(images, ImageCandidate{
			URL:      src,
			Alt:      row.Get(FieldImageAlt),
			Position: toPosition(row.Get(FieldImagePosition)),
		})
	}
	return images
}

func cleanTitle(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"'`))
}
