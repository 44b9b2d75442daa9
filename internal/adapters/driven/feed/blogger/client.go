package blogger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driven"
	"github.com/custodia-labs/feedsearch/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.FeedClient = (*Client)(nil)

// MaxBodyBytes caps the size of a feed response.
const MaxBodyBytes = 2 << 20

// feedPath is appended to the endpoint for every search.
const feedPath = "/feeds/posts/summary"

// Config configures a Client.
type Config struct {
	// Endpoint is the blog's base URL.
	Endpoint string

	// MaxResults is sent as max-results. Defaults to domain.DefaultMaxResults.
	MaxResults int

	// Timeout bounds each request. Defaults to domain.DefaultTimeout.
	Timeout time.Duration

	// RatePerSecond throttles requests. Zero disables throttling.
	RatePerSecond float64

	// HTTPClient overrides the transport. Optional.
	HTTPClient *http.Client
}

// Client fetches search results from a Blogger feed.
type Client struct {
	endpoint   string
	maxResults int
	httpClient *http.Client
	limiter    *RateLimiter
}

// NewClient creates a feed client.
func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, cfg.Endpoint)
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = domain.DefaultMaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		maxResults: cfg.MaxResults,
		httpClient: httpClient,
		limiter:    NewRateLimiter(cfg.RatePerSecond),
	}, nil
}

// SearchURL returns the request URL for query.
func (c *Client) SearchURL(query domain.Query) string {
	q := strings.ReplaceAll(url.QueryEscape(query.String()), "+", "%20")
	return c.endpoint + feedPath + "?alt=json&q=" + q + "&max-results=" + strconv.Itoa(c.maxResults)
}

// Fetch retrieves the entries matching query.
// Every error wraps domain.ErrNetworkFailure.
func (c *Client) Fetch(ctx context.Context, query domain.Query) ([]domain.FeedEntry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %w", domain.ErrNetworkFailure, err)
	}

	target := c.SearchURL(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("GET %s", target)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusTooManyRequests {
			c.limiter.Backoff(retryAfter(resp.Header.Get("Retry-After")))
		}
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: target}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrNetworkFailure, err)
	}
	if len(data) > MaxBodyBytes {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, ErrBodyTooLarge)
	}

	entries, err := decodeFeed(data)
	if err != nil {
		return nil, err
	}
	logger.Debug("Feed returned %d entries in %s", len(entries), time.Since(start))
	return entries, nil
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
