package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const defaultBaseURL = "https://www.googleapis.com"

// ErrVideoNotFound is returned when the videos endpoint has no item for an id.
var ErrVideoNotFound = errors.New("video not found")

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

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// Client is a YouTube Data API client authenticated with an API key.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
}

// NewClient creates a new YouTube API client with the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchVideo retrieves snippet, statistics and content details for one video.
// It returns ErrVideoNotFound when YouTube knows no video with that id.
func (c *Client) FetchVideo(ctx context.Context, videoID string) (*Video, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", videoID)

	body, err := c.doRequest(ctx, "videos", params)
	if err != nil {
		return nil, err
	}

	var response videosResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "failed to parse videos response")
	}

	if len(response.Items) == 0 {
		return nil, errors.Wrapf(ErrVideoNotFound, "id %q", videoID)
	}

	item := response.Items[0]
	return &Video{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		Tags:         item.Snippet.Tags,
		ChannelTitle: item.Snippet.ChannelTitle,
		ViewCount:    parseCount(item.Statistics.ViewCount),
		LikeCount:    parseCount(item.Statistics.LikeCount),
		CommentCount: parseCount(item.Statistics.CommentCount),
		Duration:     item.ContentDetails.Duration,
	}, nil
}

// FetchComments retrieves up to limit top-level comments ordered by relevance.
// Bodies are returned as YouTube renders them, markup included.
func (c *Client) FetchComments(ctx context.Context, videoID string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("order", "relevance")

	body, err := c.doRequest(ctx, "commentThreads", params)
	if err != nil {
		return nil, err
	}

	var response commentThreadsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "failed to parse comment threads response")
	}

	comments := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		comments = append(comments, item.Snippet.TopLevelComment.Snippet.TextDisplay)
	}

	return comments, nil
}

func (c *Client) doRequest(ctx context.Context, resource string, params url.Values) ([]byte, error) {
	params.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s/youtube/v3/%s?%s", c.baseURL, resource, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleAPIError(resp.StatusCode)
	}

	return body, nil
}

// parseCount turns a statistics counter into a number; absent or garbled counters are nil.
func parseCount(raw *string) *int64 {
	if raw == nil {
		return nil
	}
	n, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// API response types (private - implementation detail)

type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string   `json:"title"`
			Description  string   `json:"description"`
			ChannelTitle string   `json:"channelTitle"`
			Tags         []string `json:"tags"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    *string `json:"viewCount"`
			LikeCount    *string `json:"likeCount"`
			CommentCount *string `json:"commentCount"`
		} `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay string `json:"textDisplay"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

func (c *Client) handleAPIError(statusCode int) error {
	switch statusCode {
	case http.StatusBadRequest:
		return errors.New("YouTube API rejected the request - check YTDIGEST_API_KEY")
	case http.StatusUnauthorized:
		return errors.New("YouTube API authentication failed - check YTDIGEST_API_KEY")
	case http.StatusForbidden:
		return errors.New("YouTube API access denied - quota exhausted or resource disabled")
	case http.StatusNotFound:
		return errors.Wrap(ErrVideoNotFound, "YouTube API returned 404")
	case http.StatusTooManyRequests:
		return errors.New("YouTube API rate limit exceeded - please try again later")
	case http.StatusServiceUnavailable:
		return errors.New("YouTube API temporarily unavailable - please try again in a few minutes")
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusGatewayTimeout:
		return errors.New("YouTube API server error - please try again later")
	default:
		return errors.Errorf("YouTube API error (status %d) - please try again", statusCode)
	}
}
