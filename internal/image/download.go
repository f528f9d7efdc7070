package imagepkg

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"
)

// ErrFetchFailed marks an artwork URL that could not be retrieved. It is kept
// apart from ErrInvalidImage so callers can tell a bad URL from a bad file.
var ErrFetchFailed = errors.New("artwork fetch failed")

const (
	defaultFetchTimeout = 10 * time.Second
	// maxDownloadBytes bounds remote artwork size.
	maxDownloadBytes = 25 << 20
)

// Fetcher retrieves a decoded image by URL.
type Fetcher interface {
	Download(ctx context.Context, url string) (image.Image, error)
}

// Downloader fetches artwork images over HTTP. It never retries.
type Downloader struct {
	client *http.Client
}

// NewDownloader returns a Downloader with the given timeout; zero selects 10s.
func NewDownloader(timeout time.Duration) *Downloader {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Downloader{client: &http.Client{Timeout: timeout}}
}

// Download fetches url and decodes the body. Transport failures and non-2xx
// responses wrap ErrFetchFailed; undecodable bodies wrap ErrInvalidImage.
func (d *Downloader) Download(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if len(body) > maxDownloadBytes {
		return nil, fmt.Errorf("%w: body larger than %d bytes", ErrFetchFailed, maxDownloadBytes)
	}
	return DecodeBytes(body)
}
