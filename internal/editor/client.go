// Package editor integrates with the external image-editor token issuer.
package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	// ClientTimeout is the total request timeout.
	ClientTimeout = 30 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is time to wait for response headers.
	ResponseHeaderTimeout = 15 * time.Second

	// maxResponseBytes caps how much of the issuer response is read.
	maxResponseBytes = 64 * 1024
)

// ErrIssuerUnavailable indicates the external issuer could not produce a token.
var ErrIssuerUnavailable = errors.New("editor token issuer unavailable")

// Issuer produces short-lived editor session tokens.
type Issuer interface {
	IssueToken(ctx context.Context) (string, error)
}

// Options configures the issuer call. Every request carries the same
// fixed parameters; nothing caller-specific is forwarded.
type Options struct {
	APIURL   string
	APIKey   string
	Mode     string
	Origin   string
	Theme    string
	TabLimit int
}

// Client calls the external image-editor token issuer.
type Client struct {
	httpClient *http.Client
	opts       Options
}

// NewClient creates a Client with hardened HTTP timeouts. Redirects are
// not followed.
func NewClient(opts Options) *Client {
	return &Client{
		opts: opts,
		httpClient: &http.Client{
			Timeout: ClientTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   DialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   TLSHandshakeTimeout,
				ResponseHeaderTimeout: ResponseHeaderTimeout,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type tokenRequest struct {
	APIKey   string `json:"apiKey"`
	Mode     string `json:"mode"`
	Origin   string `json:"origin"`
	Theme    string `json:"theme"`
	TabLimit int    `json:"tabLimit"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken requests a fresh editor token from the issuer.
func (c *Client) IssueToken(ctx context.Context) (string, error) {
	if c.opts.APIURL == "" {
		return "", fmt.Errorf("%w: issuer URL not configured", ErrIssuerUnavailable)
	}

	payload, err := json.Marshal(tokenRequest{
		APIKey:   c.opts.APIKey,
		Mode:     c.opts.Mode,
		Origin:   c.opts.Origin,
		Theme:    c.opts.Theme,
		TabLimit: c.opts.TabLimit,
	})
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Lumeo-Backend/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIssuerUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrIssuerUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: issuer returned status %d", ErrIssuerUnavailable, resp.StatusCode)
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrIssuerUnavailable, err)
	}
	if parsed.Token == "" {
		return "", fmt.Errorf("%w: empty token in response", ErrIssuerUnavailable)
	}

	return parsed.Token, nil
}
