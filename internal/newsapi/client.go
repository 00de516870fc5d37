package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"newsreader/internal/article"
)

// AllCategories is the filter value that means "no category parameter".
const AllCategories = "all"

// ErrMalformedResponse is returned when the body decodes but lacks the
// articles array.
var ErrMalformedResponse = errors.New("malformed news response")

// StatusError is returned for any non-2xx response from the news service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("news service returned %d: %s", e.StatusCode, e.Body)
}

// FetchResult is the body of POST /news/fetch.
type FetchResult struct {
	Message           string `json:"message"`
	ArticlesStored    int    `json:"articles_stored"`
	ArticlesAttempted int    `json:"articles_attempted"`
}

// Client talks to the news service. baseURL is the full /news endpoint, for
// example https://news.example.com/news.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the configured /news endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ArticlesURL builds the feed URL. An empty category and "all" produce the
// same URL with no query parameter.
func (c *Client) ArticlesURL(category string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid news url %q: %w", c.baseURL, err)
	}
	if category != "" && category != AllCategories {
		q := u.Query()
		q.Set("category", category)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Articles fetches the general feed, optionally filtered by category.
func (c *Client) Articles(ctx context.Context, category string) ([]article.Article, error) {
	u, err := c.ArticlesURL(category)
	if err != nil {
		return nil, err
	}

	var out article.Feed
	if err := c.do(ctx, http.MethodGet, u, &out); err != nil {
		return nil, err
	}
	if out.Articles == nil {
		return nil, ErrMalformedResponse
	}
	return *out.Articles, nil
}

// Count returns the per-category article counts plus "total".
func (c *Client) Count(ctx context.Context) (map[string]int, error) {
	out := map[string]int{}
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/count", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TriggerFetch asks the news service to ingest fresh articles.
func (c *Client) TriggerFetch(ctx context.Context) (*FetchResult, error) {
	var out FetchResult
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/fetch", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
