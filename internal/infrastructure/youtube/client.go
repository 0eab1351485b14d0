package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
	"github.com/hszk-dev/tubepulse/internal/domain/repository"
	"github.com/hszk-dev/tubepulse/internal/infrastructure/metrics"
)

const (
	defaultBaseURL = "https://www.googleapis.com"
	maxPageSize    = 50
)

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

// WithRateLimit paces outgoing requests to rps per second with the given burst.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// Client is a YouTube Data API client authenticated with an API key.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
	limiter    *rate.Limiter
}

// Compile-time verification that Client implements repository.ChannelProvider.
var _ repository.ChannelProvider = (*Client)(nil)

// NewClient creates a new YouTube API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ResolveChannel looks a channel up by ID or handle.
func (c *Client) ResolveChannel(ctx context.Context, ref model.ChannelRef) (*model.ChannelRecord, error) {
	q := url.Values{}
	q.Set("part", "snippet,statistics,contentDetails")
	switch ref.Kind {
	case model.RefKindID:
		q.Set("id", ref.Value)
	default:
		q.Set("forHandle", "@"+ref.Value)
	}

	var resp channelsResponse
	if err := c.get(ctx, metrics.EndpointChannels, q, &resp); err != nil {
		return nil, err
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrChannelNotFound, ref)
	}

	item := resp.Items[0]
	uploads := item.ContentDetails.RelatedPlaylists.Uploads
	if uploads == "" {
		return nil, fmt.Errorf("%w: %s", repository.ErrNoUploads, ref)
	}

	return &model.ChannelRecord{
		ChannelID:       item.ID,
		Title:           item.Snippet.Title,
		UploadsSourceID: uploads,
		Subscribers:     parseCount(item.Statistics.SubscriberCount),
		TotalViews:      parseCount(item.Statistics.ViewCount),
		VideoCount:      parseCount(item.Statistics.VideoCount),
	}, nil
}

// ListRecentVideoIDs walks the uploads playlist page by page until max IDs
// are collected or the playlist ends.
func (c *Client) ListRecentVideoIDs(ctx context.Context, uploadsID string, max int) ([]string, error) {
	ids := make([]string, 0, max)
	pageToken := ""

	for len(ids) < max {
		q := url.Values{}
		q.Set("part", "contentDetails")
		q.Set("playlistId", uploadsID)
		q.Set("maxResults", strconv.Itoa(min(maxPageSize, max-len(ids))))
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var resp playlistItemsResponse
		if err := c.get(ctx, metrics.EndpointPlaylistItems, q, &resp); err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: %s", repository.ErrNoUploads, uploadsID)
			}
			return nil, err
		}

		for _, item := range resp.Items {
			if item.ContentDetails.VideoID == "" {
				continue
			}
			ids = append(ids, item.ContentDetails.VideoID)
			if len(ids) == max {
				break
			}
		}

		if resp.NextPageToken == "" || len(resp.Items) == 0 {
			break
		}
		pageToken = resp.NextPageToken
	}

	return ids, nil
}

// FetchVideos retrieves snippet, statistics and duration for up to 50 videos.
// Missing or malformed counters become 0.
func (c *Client) FetchVideos(ctx context.Context, ids []string) ([]model.RawVideo, error) {
	if len(ids) == 0 {
		return []model.RawVideo{}, nil
	}
	if len(ids) > repository.MaxVideoBatch {
		return nil, fmt.Errorf("too many video IDs in one batch: %d > %d", len(ids), repository.MaxVideoBatch)
	}

	q := url.Values{}
	q.Set("part", "snippet,statistics,contentDetails")
	q.Set("id", strings.Join(ids, ","))
	q.Set("maxResults", strconv.Itoa(maxPageSize))

	var resp videosResponse
	if err := c.get(ctx, metrics.EndpointVideos, q, &resp); err != nil {
		return nil, err
	}

	videos := make([]model.RawVideo, 0, len(resp.Items))
	for _, item := range resp.Items {
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)

		videos = append(videos, model.RawVideo{
			ID:           item.ID,
			ChannelID:    item.Snippet.ChannelID,
			ChannelTitle: item.Snippet.ChannelTitle,
			Title:        item.Snippet.Title,
			PublishedAt:  publishedAt,
			Duration:     item.ContentDetails.Duration,
			Views:        parseCount(item.Statistics.ViewCount),
			Likes:        parseCount(item.Statistics.LikeCount),
			Comments:     parseCount(item.Statistics.CommentCount),
		})
	}

	return videos, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	body, err := c.doRequest(ctx, endpoint, q)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, metrics.UpstreamStatusError).Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, metrics.UpstreamStatusOK).Inc()

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, q url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	q.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/youtube/v3/%s?%s", c.baseURL, endpoint, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

// parseCount parses a decimal counter string; anything unparsable is 0.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// APIError is a non-200 answer from the Data API.
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
}

func newAPIError(statusCode int, body []byte) *APIError {
	e := &APIError{StatusCode: statusCode}
	var parsed errorResponse
	if json.Unmarshal(body, &parsed) == nil {
		e.Message = parsed.Error.Message
		if len(parsed.Error.Errors) > 0 {
			e.Reason = parsed.Error.Errors[0].Reason
		}
	}
	return e
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode == http.StatusForbidden && e.Reason == "quotaExceeded":
		return "YouTube API quota exceeded - please try again tomorrow"
	case e.StatusCode == http.StatusBadRequest && e.Reason == "keyInvalid":
		return "YouTube API key is invalid - check YOUTUBE_API_KEY"
	case e.StatusCode == http.StatusUnauthorized:
		return "YouTube API authentication failed - check YOUTUBE_API_KEY"
	case e.StatusCode == http.StatusForbidden:
		return "YouTube API access denied - check the API key restrictions"
	case e.StatusCode == http.StatusNotFound:
		return "YouTube API resource not found"
	case e.StatusCode == http.StatusTooManyRequests:
		return "YouTube API rate limit exceeded - please try again later"
	case e.StatusCode == http.StatusServiceUnavailable:
		return "YouTube API temporarily unavailable - please try again in a few minutes"
	case e.StatusCode == http.StatusInternalServerError, e.StatusCode == http.StatusBadGateway, e.StatusCode == http.StatusGatewayTimeout:
		return "YouTube API server error - please try again later"
	default:
		return fmt.Sprintf("YouTube API error (status %d) - please try again", e.StatusCode)
	}
}
