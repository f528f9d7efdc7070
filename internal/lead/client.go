// Package lead subscribes visitors to the newsletter list.
package lead

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://connect.mailerlite.com"
	subscribersAPI = "/api/subscribers"
	requestTimeout = 10 * time.Second
	maxErrorBody   = 2048
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("mailerlite not configured")

// UpstreamError carries a non-success answer from the list provider.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("mailerlite returned status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the MailerLite subscribers API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	groupID    string
}

func NewClient(apiKey, groupID string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		groupID:    groupID,
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

type subscribeRequest struct {
	Email  string            `json:"email"`
	Fields map[string]string `json:"fields"`
	Groups []string          `json:"groups,omitempty"`
}

// Subscribe adds email to the list, tagging it with source.
func (c *Client) Subscribe(ctx context.Context, email, source string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	payload := subscribeRequest{Email: email, Fields: map[string]string{"source": source}}
	if c.groupID != "" {
		payload.Groups = []string{c.groupID}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+subscribersAPI, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailerlite request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	return nil
}
