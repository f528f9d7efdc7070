package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoCatalog is returned when the data directory holds no product export.
var ErrNoCatalog = errors.New("catalog: no product export found")

const preferredExport = "shopify_products.csv"

// FindCSV locates the product export in dataDir. The conventional file name
// wins; otherwise CSVs mentioning "shopify", then "product", then the
// shortest path are preferred.
func FindCSV(dataDir string) (string, error) {
	explicit := filepath.Join(dataDir, preferredExport)
	if _, err := os.Stat(explicit); err == nil {
		return explicit, nil
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoCatalog
		}
		return "", fmt.Errorf("reading %s: %w", dataDir, err)
	}

	var cands []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		cands = append(cands, filepath.Join(dataDir, e.Name()))
	}
	if len(cands) == 0 {
		return "", ErrNoCatalog
	}

	rank := func(p string) (bool, bool, int) {
		l := strings.ToLower(filepath.Base(p))
		return !strings.Contains(l, "shopify"), !strings.Contains(l, "product"), len(p)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		si, pi, li := rank(cands[i])
		sj, pj, lj := rank(cands[j])
		if si != sj {
			return !si
		}
		if pi != pj {
			return !pi
		}
		return li < lj
	})
	return cands[0], nil
}

// LoadRowsFromDataDir reads every row of the product export found in dataDir.
func LoadRowsFromDataDir(dataDir string) ([]Row, error) {
	path, err := FindCSV(dataDir)
	if err != nil {
		return nil, err
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	rows, err := ReadRows(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return rows, nil
}

// ReadRows parses a CSV export with a header line into rows. A UTF-8 byte
// order mark on the header is dropped; short records leave missing columns
// empty. Empty input yields no rows.
func ReadRows(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		// an empty export is a catalog with no products
		return []Row{}, nil
	}

	header := records[0]
	out := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// Placeholder is served when no export is available.
func Placeholder() []ArtworkEntry {
	return []ArtworkEntry{
		{
			ID: "a1", Title: "Good Vibes #12", Ratio: 1.43, Price: 950,
			ProductURL: "https://irenart.studio/products/gv-12",
			ImageURL:   "https://via.placeholder.com/800x560?text=Good+Vibes+%2312",
		},
		{
			ID: "a2", Title: "Energy in Motion #3", Ratio: 1.5, Price: 1600,
			ProductURL: "https://irenart.studio/products/eim-3",
			ImageURL:   "https://via.placeholder.com/900x600?text=Energy+in+Motion+%233",
		},
		{
			ID: "a3", Title: "Soft Neutrals #5", Ratio: 1.0, Price: 650,
			ProductURL: "https://irenart.studio/products/sn-5",
			ImageURL:   "https://via.placeholder.com/700x700?text=Soft+Neutrals+%235",
		},
	}
}
