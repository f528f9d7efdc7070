// Package shop builds storefront links carrying attribution parameters.
package shop

import (
	"fmt"
	"net/url"
	"strings"
)

// Attribution is the UTM triple appended to every outbound link.
type Attribution struct {
	Source   string
	Medium   string
	Campaign string
}

// Links builds product and checkout URLs for one storefront.
type Links struct {
	storeDomain string
	attr        Attribution
}

// NewLinks trims scheme-less domain input such as "shop.example/" to "shop.example".
func NewLinks(storeDomain string, attr Attribution) *Links {
	d := strings.TrimSpace(storeDomain)
	d = strings.TrimPrefix(strings.TrimPrefix(d, "https://"), "http://")
	return &Links{storeDomain: strings.Trim(d, "/"), attr: attr}
}

// ProductURL links to the product page, preselecting the variant when given.
func (l *Links) ProductURL(handle, variantID string) string {
	base := fmt.Sprintf("https://%s/products/%s", l.storeDomain, handle)
	if variantID == "" {
		return base
	}
	return base + "?variant=" + variantID
}

// CheckoutRequest describes what the shopper wants to buy.
type CheckoutRequest struct {
	ProductURL string
	VariantID  string
	Quantity   int
	Discount   string
}

// CheckoutURL returns a cart permalink for a variant, or the product page or
// store root otherwise, with attribution merged into any existing query.
func (l *Links) CheckoutURL(req CheckoutRequest) (string, error) {
	var base string
	switch {
	case req.VariantID != "":
		base = fmt.Sprintf("https://%s/cart/%s:%d", l.storeDomain, req.VariantID, max(1, req.Quantity))
	case req.ProductURL != "":
		base = req.ProductURL
	default:
		base = "https://" + l.storeDomain
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid product url: %w", err)
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}

	q := u.Query()
	q.Set("utm_source", l.attr.Source)
	q.Set("utm_medium", l.attr.Medium)
	q.Set("utm_campaign", l.attr.Campaign)
	if req.Discount != "" {
		q.Set("discount", req.Discount)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
