package imagepkg

import (
	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 400
	maxQRSize     = 2048
	minQRSize     = 64
)

// GenerateQRPNG returns PNG bytes of a QR code for text, typically a
// checkout link shown next to a mockup. size is clamped to a sane range.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	size = max(minQRSize, min(size, maxQRSize))
	return qrcode.Encode(text, qrcode.Medium, size)
}
