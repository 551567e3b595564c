// Package dislikes looks up dislike estimates from the Return YouTube Dislike API.
package dislikes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultBaseURL = "https://returnyoutubedislikeapi.com"
	defaultTimeout = 5 * time.Second
)

// ErrNoDislikes is returned when the service answers without a usable dislike count.
var ErrNoDislikes = errors.New("dislike count not available")

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL overrides the service root (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeout bounds each lookup. Non-positive values keep the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Client fetches dislike estimates. Each lookup is a single request bounded by the client timeout.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	timeout    time.Duration
}

// NewClient creates a new dislike API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchDislikes returns the estimated dislike count for a video id.
func (c *Client) FetchDislikes(ctx context.Context, videoID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/votes?videoId=" + url.QueryEscape(videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "dislike lookup failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.Wrapf(ErrNoDislikes, "dislike API returned HTTP %d for %s", resp.StatusCode, videoID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read dislike response")
	}

	var votes votesResponse
	if err := json.Unmarshal(body, &votes); err != nil {
		return 0, errors.Wrapf(ErrNoDislikes, "malformed dislike response: %v", err)
	}
	if votes.Dislikes == nil {
		return 0, errors.Wrapf(ErrNoDislikes, "no dislikes field for %s", videoID)
	}

	return *votes.Dislikes, nil
}

type votesResponse struct {
	ID       string `json:"id"`
	Likes    *int64 `json:"likes"`
	Dislikes *int64 `json:"dislikes"`
}
