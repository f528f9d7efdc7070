package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/youruser/wallart/internal/catalog"
	imagepkg "github.com/youruser/wallart/internal/image"
	"github.com/youruser/wallart/internal/lead"
	"github.com/youruser/wallart/internal/shop"
	"github.com/youruser/wallart/internal/storage"
)

// ArtworkSource yields the current resolved catalog.
type ArtworkSource interface {
	Artworks() ([]catalog.ArtworkEntry, error)
}

// Subscriber adds an email address to the mailing list.
type Subscriber interface {
	Subscribe(ctx context.Context, email, source string) error
}

// Handler serves the HTTP API.
type Handler struct {
	artworks ArtworkSource
	fetcher  imagepkg.Fetcher
	store    storage.Storage
	links    *shop.Links
	leads    Subscriber
	policy   imagepkg.Policy
}

func NewHandler(artworks ArtworkSource, fetcher imagepkg.Fetcher, store storage.Storage,
	links *shop.Links, leads Subscriber, policy imagepkg.Policy) *Handler {
	return &Handler{
		artworks: artworks,
		fetcher:  fetcher,
		store:    store,
		links:    links,
		leads:    leads,
		policy:   policy,
	}
}

const mockupKeyPrefix = "mockups/"

// health
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type artworksQuery struct {
	Limit       int     `form:"limit"`
	Query       string  `form:"q"`
	MinPrice    float64 `form:"min_price" binding:"gte=0"`
	MaxPrice    float64 `form:"max_price" binding:"gte=0"`
	Orientation string  `form:"orientation" binding:"omitempty,oneof=landscape portrait square"`
}

func (h *Handler) listArtworks(c *gin.Context) {
	var q artworksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	all, err := h.artworks.Artworks()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load catalog"})
		return
	}
	items := catalog.Filter(all, catalog.FilterOptions{
		FreeWords:   q.Query,
		MinPrice:    q.MinPrice,
		MaxPrice:    q.MaxPrice,
		Orientation: q.Orientation,
		Limit:       q.Limit,
	})
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) extractPalette(c *gin.Context) {
	data, err := readFormFile(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide an image file"})
		return
	}
	img, err := imagepkg.DecodeBytes(data)
	if err != nil {
		log.Ctx(c.Request.Context()).Debug().Err(err).Msg("Palette upload not decodable, using fallback")
		c.JSON(http.StatusOK, gin.H{"colors": imagepkg.FallbackPalette, "mood": "warm_neutrals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"colors": imagepkg.ExtractPalette(img, imagepkg.DefaultPaletteSize), "mood": "auto"})
}

type checkoutForm struct {
	ProductURL string `form:"product_url"`
	VariantID  string `form:"variant_id"`
	Quantity   int    `form:"quantity,default=1"`
	Discount   string `form:"discount"`
}

func (h *Handler) checkoutLink(c *gin.Context) {
	var f checkoutForm
	if err := c.ShouldBind(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.links.CheckoutURL(shop.CheckoutRequest{
		ProductURL: f.ProductURL,
		VariantID:  f.VariantID,
		Quantity:   f.Quantity,
		Discount:   f.Discount,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": u})
}

// qr endpoint returns a PNG of a QR for "text"; without text it encodes the store link
func (h *Handler) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		u, err := h.links.CheckoutURL(shop.CheckoutRequest{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		text = u
	}
	size := imagepkg.DefaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

type mockupForm struct {
	ArtworkURL   string   `form:"artwork_url" binding:"omitempty,httpurl"`
	ArtworkRatio *float64 `form:"artwork_ratio"`
	Scale        *float64 `form:"scale"`
	WallWidthCM  *float64 `form:"wall_width_cm" binding:"omitempty,gte=0"`
}

type mockupResponse struct {
	URL         string   `json:"url"`
	X           int      `json:"x"`
	Y           int      `json:"y"`
	W           int      `json:"w"`
	H           int      `json:"h"`
	WallPixels  int      `json:"wall_px"`
	WallWidthCM *float64 `json:"wall_width_cm"`
}

func (h *Handler) mockup(c *gin.Context) {
	var f mockupForm
	if err := c.ShouldBind(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallData, err := readFormFile(c, "wall")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a wall image"})
		return
	}
	wall, err := imagepkg.DecodeBytes(wallData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wall image"})
		return
	}

	art, status, msg := h.loadArtwork(c, f.ArtworkURL)
	if art == nil {
		c.JSON(status, gin.H{"error": msg})
		return
	}

	opts := imagepkg.MockupOptions{
		Scale:       h.policy.DefaultScale,
		WallWidthCM: f.WallWidthCM,
		Policy:      h.policy,
	}
	if f.Scale != nil {
		opts.Scale = *f.Scale
	}
	if f.ArtworkRatio != nil {
		opts.Ratio = *f.ArtworkRatio
	}

	res, err := imagepkg.ComposeMockup(wall, art, opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := imagepkg.EncodeJPEG(res.Image, imagepkg.MockupQuality)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode mockup"})
		return
	}

	key := fmt.Sprintf("%sm_%s.jpg", mockupKeyPrefix, uuid.NewString())
	if err := h.store.Put(c.Request.Context(), key, bytes.NewReader(out), "image/jpeg"); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store mockup"})
		return
	}

	log.Ctx(c.Request.Context()).Info().
		Str("key", key).
		Int("x", res.Placement.X).
		Int("y", res.Placement.Y).
		Int("w", res.Placement.Width).
		Int("h", res.Placement.Height).
		Msg("Mockup created")

	c.JSON(http.StatusOK, mockupResponse{
		URL:         h.store.GetURL(key),
		X:           res.Placement.X,
		Y:           res.Placement.Y,
		W:           res.Placement.Width,
		H:           res.Placement.Height,
		WallPixels:  res.WallPixels,
		WallWidthCM: res.WallWidthCM,
	})
}

// loadArtwork prefers an uploaded file over a URL. On failure it returns a
// nil image with the status and message to report.
func (h *Handler) loadArtwork(c *gin.Context, artworkURL string) (image.Image, int, string) {
	data, err := readFormFile(c, "artwork")
	if err == nil {
		img, err := imagepkg.DecodeBytes(data)
		if err != nil {
			return nil, http.StatusBadRequest, "Invalid artwork file"
		}
		return img, 0, ""
	}
	if artworkURL == "" {
		return nil, http.StatusBadRequest, "Provide artwork file or artwork_url"
	}

	img, err := h.fetcher.Download(c.Request.Context(), artworkURL)
	switch {
	case err == nil:
		return img, 0, ""
	case errors.Is(err, imagepkg.ErrInvalidImage):
		return nil, http.StatusBadRequest, "artwork_url is not a valid image"
	default:
		log.Ctx(c.Request.Context()).Warn().Err(err).Str("artwork_url", artworkURL).Msg("Artwork fetch failed")
		return nil, http.StatusBadGateway, "Cannot fetch artwork_url"
	}
}

// mockupNameRe matches the object names the mockup handler generates.
var mockupNameRe = regexp.MustCompile(`^m_[0-9a-f-]{36}\.jpg$`)

// getMockup streams a stored mockup, for buckets that are not publicly readable.
func (h *Handler) getMockup(c *gin.Context) {
	name := c.Param("name")
	if !mockupNameRe.MatchString(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "mockup not found"})
		return
	}
	rc, err := h.store.Get(c.Request.Context(), mockupKeyPrefix+name)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "mockup not found"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read mockup"})
		return
	}
	defer rc.Close()
	c.DataFromReader(http.StatusOK, -1, "image/jpeg", rc, nil)
}

// deleteMockup discards a mockup the shopper no longer wants.
func (h *Handler) deleteMockup(c *gin.Context) {
	name := c.Param("name")
	if !mockupNameRe.MatchString(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "mockup not found"})
		return
	}
	key := mockupKeyPrefix + name
	ok, err := h.store.Exists(c.Request.Context(), key)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up mockup"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "mockup not found"})
		return
	}
	if err := h.store.Delete(c.Request.Context(), key); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete mockup"})
		return
	}
	c.Status(http.StatusNoContent)
}

type leadForm struct {
	Email   string `form:"email" binding:"required,email"`
	Consent string `form:"consent,default=false"`
	Source  string `form:"source,default=roomvibe_app"`
}

func (h *Handler) captureLead(c *gin.Context) {
	var f leadForm
	if err := c.ShouldBind(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.leads.Subscribe(c.Request.Context(), f.Email, f.Source)
	var upstream *lead.UpstreamError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, lead.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "message": "MailerLite not configured"})
	case errors.As(err, &upstream):
		c.JSON(upstream.StatusCode, gin.H{"error": upstream.Body})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "MailerLite error: " + err.Error()})
	}
}

// stripeWebhook acknowledges payment events; nothing is processed yet.
func (h *Handler) stripeWebhook(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func readFormFile(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	return readMultipart(fh)
}

func readMultipart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
