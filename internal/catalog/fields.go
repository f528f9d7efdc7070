package catalog

import "strings"

// Field is a canonical column of the product export.
type Field int

const (
	FieldHandle Field = iota
	FieldTitle
	FieldVariantTitle
	FieldVariantPrice
	FieldVariantID
	FieldVariantImage
	FieldImageSrc
	FieldImageAlt
	FieldImagePosition
)

// fieldAliases lists the header spellings accepted for each field, in lookup order.
var fieldAliases = map[Field][]string{
	FieldHandle:        {"Handle"},
	FieldTitle:         {"Title"},
	FieldVariantTitle:  {"Variant Title", "variant_title"},
	FieldVariantPrice:  {"Variant Price", "Price"},
	FieldVariantID:     {"Variant ID"},
	FieldVariantImage:  {"Variant Image"},
	FieldImageSrc:      {"Image Src", "Image URL"},
	FieldImageAlt:      {"Image Alt Text"},
	FieldImagePosition: {"Image Position", "position"},
}

// Row is one record of the export keyed by header name.
type Row map[string]string

// Get returns the first non-empty value stored under one of the field's
// aliases. Exact header matches win over case-insensitive ones.
func (r Row) Get(f Field) string {
	names := fieldAliases[f]
	for _, name := range names {
		if v := r[name]; v != "" {
			return v
		}
	}
	for _, name := range names {
		key := ""
		for k, v := range r {
			// Lowest key wins so headers differing only by case resolve the same way every time.
			if v != "" && strings.EqualFold(k, name) && (key == "" || k < key) {
				key = k
			}
		}
		if key != "" {
			return r[key]
		}
	}
	return ""
}
