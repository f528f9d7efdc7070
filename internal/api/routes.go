package api

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("httpurl", validateHTTPURL)
	}
}

// validateHTTPURL accepts absolute http(s) URLs only, so artwork fetches
// cannot be pointed at file:// or other schemes.
func validateHTTPURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/artworks", h.listArtworks)
		api.POST("/palette", h.extractPalette)
		api.POST("/checkout-link", h.checkoutLink)
		api.GET("/qr", h.qr)
		api.POST("/mockup", h.mockup)
		api.GET("/mockups/:name", h.getMockup)
		api.DELETE("/mockups/:name", h.deleteMockup)
		api.POST("/lead", h.captureLead)
	}
	r.POST("/webhooks/stripe", h.stripeWebhook)
}
