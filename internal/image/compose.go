package imagepkg

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Policy holds the placement constants for wall mockups.
type Policy struct {
	MinScale       float64 // smallest share of the wall width the artwork may take
	MaxScale       float64 // largest share of the wall width the artwork may take
	VerticalAnchor float64 // top edge as a fraction of wall height
	DefaultScale   float64
}

// DefaultPolicy matches the proportions the mockup tool has always used.
func DefaultPolicy() Policy {
	return Policy{
		MinScale:       0.2,
		MaxScale:       0.9,
		VerticalAnchor: 0.35,
		DefaultScale:   0.45,
	}
}

// ClampScale bounds a requested scale to [MinScale, MaxScale]. NaN selects DefaultScale.
func (p Policy) ClampScale(scale float64) float64 {
	if math.IsNaN(scale) {
		scale = p.DefaultScale
	}
	return math.Max(p.MinScale, math.Min(scale, p.MaxScale))
}

// Placement is the artwork rectangle in wall pixel coordinates.
type Placement struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"w"`
	Height int `json:"h"`
}

// Rect returns the placement as an image rectangle.
func (pl Placement) Rect() image.Rectangle {
	return image.Rect(pl.X, pl.Y, pl.X+pl.Width, pl.Y+pl.Height)
}

// Validate reports whether the policy keeps placements on the wall:
// 0 < MinScale <= MaxScale <= 1 and VerticalAnchor within [0, 1].
func (p Policy) Validate() error {
	switch {
	case !(p.MinScale > 0 && p.MinScale <= p.MaxScale && p.MaxScale <= 1):
		return fmt.Errorf("mockup scale bounds [%v, %v] must satisfy 0 < min <= max <= 1", p.MinScale, p.MaxScale)
	case !(p.VerticalAnchor >= 0 && p.VerticalAnchor <= 1):
		return fmt.Errorf("mockup vertical anchor %v must be within [0, 1]", p.VerticalAnchor)
	case math.IsNaN(p.DefaultScale):
		return errors.New("mockup default scale is NaN")
	}
	return nil
}

// OrDefault returns p when it is valid and DefaultPolicy otherwise, along
// with the validation error.
func (p Policy) OrDefault() (Policy, error) {
	if err := p.Validate(); err != nil {
		return DefaultPolicy(), err
	}
	return p, nil
}

// ComputePlacement sizes and positions an artwork on a wall. ratio overrides
// the artwork's native width/height when positive.
func ComputePlacement(wallW, wallH, artW, artH int, ratio, scale float64, p Policy) Placement {
	tw := max(1, int(float64(wallW)*p.ClampScale(scale)))

	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1.0
		if artH > 0 && artW > 0 {
			ratio = float64(artW) / float64(artH)
		}
	}
	// clamp before converting: a tiny ratio would overflow int and keep the
	// artwork inside the wall either way
	th := max(1, int(math.Min(float64(tw)/ratio, float64(max(1, wallH)))))

	x := (wallW - tw) / 2
	y := int(math.Round(float64(wallH) * p.VerticalAnchor))
	y = max(0, min(y, wallH-th))

	return Placement{X: x, Y: y, Width: tw, Height: th}
}

// MockupOptions configure one composition.
type MockupOptions struct {
	Scale       float64
	Ratio       float64  // optional declared artwork ratio
	WallWidthCM *float64 // echoed back, not used in the pixel math
	Policy      Policy
}

// MockupResult is the composite image plus the placement used to build it.
type MockupResult struct {
	Image       *image.NRGBA
	Placement   Placement
	WallPixels  int
	WallWidthCM *float64
}

var errNilImage = errors.New("nil image")

// ComposeMockup pastes the artwork, stretched to the computed footprint,
// onto a copy of the wall. The wall image is not modified.
func ComposeMockup(wall, art image.Image, opts MockupOptions) (*MockupResult, error) {
	if wall == nil || art == nil {
		return nil, errNilImage
	}
	policy := opts.Policy
	if policy == (Policy{}) {
		policy = DefaultPolicy()
	}

	wb, ab := wall.Bounds(), art.Bounds()
	if wb.Empty() || ab.Empty() {
		return nil, ErrInvalidImage
	}
	pl := ComputePlacement(wb.Dx(), wb.Dy(), ab.Dx(), ab.Dy(), opts.Ratio, opts.Scale, policy)

	resized := imaging.Resize(art, pl.Width, pl.Height, imaging.Lanczos)
	canvas := imaging.Paste(opaque(imaging.Clone(wall)), opaque(resized), image.Pt(pl.X, pl.Y))

	return &MockupResult{
		Image:       canvas,
		Placement:   pl,
		WallPixels:  wb.Dx(),
		WallWidthCM: opts.WallWidthCM,
	}, nil
}

// opaque drops any alpha channel; mockups are flat RGB images.
func opaque(img *image.NRGBA) *image.NRGBA {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}
