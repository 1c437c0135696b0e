package youtube

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/tube/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	defaultBaseURL = "https://www.youtube.com"

	// The results page serves materially different markup, or blocks the
	// request outright, without a convincing desktop browser header set.
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.9"

	// Opaque result-type filter tokens for the sp parameter, pre-encoded
	filterVideos   = "EgIQAQ%3D%3D"
	filterChannels = "EgIQAg%3D%3D"
)

// Client scrapes the public search results page. It implements
// domain.VideoSource and performs no caching of its own; callers layer
// their own memoization.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a scrape client.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Fetch performs one GET against pageURL with browser-like headers and
// returns the raw body. Transport failures and non-2xx statuses are both
// NetworkError; there are no retries.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	c.logger.Debug("fetching results page", "url", pageURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("results page fetch failed", "url", pageURL, "error", err)
		return "", &domain.NetworkError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("results page returned bad status", "status", resp.StatusCode, "url", pageURL)
		return "", &domain.NetworkError{URL: pageURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.NetworkError{URL: pageURL, Err: err}
	}

	return string(body), nil
}

// SearchVideos scrapes a video-only search for query. An empty result is
// an empty slice, not an error.
func (c *Client) SearchVideos(ctx context.Context, query string, limit int) ([]domain.Video, error) {
	data, err := c.fetchInitialData(ctx, c.searchPageURL(query, filterVideos))
	if err != nil {
		return nil, err
	}
	return parseVideos(data, limit), nil
}

// SearchChannels scrapes a channel-only search for query.
func (c *Client) SearchChannels(ctx context.Context, query string, limit int) ([]domain.ChannelInfo, error) {
	data, err := c.fetchInitialData(ctx, c.searchPageURL(query, filterChannels))
	if err != nil {
		return nil, err
	}
	return parseChannels(data, limit), nil
}

// ChannelVideos scrapes the latest uploads for a channel handle. The
// handle is searched as a plain query with the video filter; empty results
// are normal for quiet channels.
func (c *Client) ChannelVideos(ctx context.Context, handle string, limit int) ([]domain.Video, error) {
	data, err := c.fetchInitialData(ctx, c.searchPageURL(handle, filterVideos))
	if err != nil {
		return nil, err
	}
	return parseVideos(data, limit), nil
}

func (c *Client) fetchInitialData(ctx context.Context, pageURL string) (any, error) {
	html, err := c.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ExtractInitialData(html)
}

// searchPageURL builds the results URL for a query and filter token. The
// token is already percent-encoded, so it is appended verbatim.
func (c *Client) searchPageURL(query, filter string) string {
	return fmt.Sprintf("%s/results?search_query=%s&sp=%s", c.baseURL, url.QueryEscape(query), filter)
}
