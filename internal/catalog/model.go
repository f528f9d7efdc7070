package catalog

// ArtworkEntry is one display-ready artwork, resolved from all variant rows
// sharing a handle.
type ArtworkEntry struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	ImageURL   string  `json:"image_url"`
	Ratio      float64 `json:"ratio"`
	Price      float64 `json:"price_eur"`
	ProductURL string  `json:"product_url"`
	VariantID  string  `json:"variant_id,omitempty"`
}

// ImageCandidate is one image attached to a product row.
type ImageCandidate struct {
	URL      string
	Alt      string
	Position int
}
