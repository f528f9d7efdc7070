package imagepkg

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"
)

const (
	DefaultPaletteSize = 5
	paletteSampleSide  = 512
	// bucketShift keeps the top 5 bits of each channel.
	bucketShift = 3
)

// FallbackPalette is offered when the wall photo cannot be read.
var FallbackPalette = []string{"#D4C5B9", "#E8DDD3", "#B89A7F", "#9B8577", "#F5EDE4"}

type colorBucket struct {
	r, g, b uint64
	n       uint64
}

// ExtractPalette returns up to k dominant colors of img as #RRGGBB, most
// common first. Colors are quantised into coarse RGB buckets and each bucket
// reports its mean color.
func ExtractPalette(img image.Image, k int) []string {
	if k <= 0 {
		k = DefaultPaletteSize
	}
	sample := imaging.Fit(img, paletteSampleSide, paletteSampleSide, imaging.Box)

	buckets := make(map[uint32]*colorBucket)
	for i := 0; i+3 < len(sample.Pix); i += 4 {
		if sample.Pix[i+3] == 0 {
			continue
		}
		r, g, b := sample.Pix[i], sample.Pix[i+1], sample.Pix[i+2]
		key := uint32(r>>bucketShift)<<10 | uint32(g>>bucketShift)<<5 | uint32(b>>bucketShift)
		bk := buckets[key]
		if bk == nil {
			bk = &colorBucket{}
			buckets[key] = bk
		}
		bk.r += uint64(r)
		bk.g += uint64(g)
		bk.b += uint64(b)
		bk.n++
	}
	if len(buckets) == 0 {
		return []string{"#CCCCCC"}
	}

	keys := make([]uint32, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		bi, bj := buckets[keys[i]], buckets[keys[j]]
		if bi.n != bj.n {
			return bi.n > bj.n
		}
		return keys[i] < keys[j]
	})

	out := make([]string, 0, k)
	seen := make(map[string]bool, k)
	for _, key := range keys {
		bk := buckets[key]
		hex := fmt.Sprintf("#%02X%02X%02X", bk.r/bk.n, bk.g/bk.n, bk.b/bk.n)
		if seen[hex] {
			continue
		}
		seen[hex] = true
		out = append(out, hex)
		if len(out) >= k {
			break
		}
	}
	return out
}
