package githubstars

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultAPIBase is the public GitHub REST API origin.
	DefaultAPIBase = "https://api.github.com"

	defaultTimeout = 10 * time.Second
	userAgent      = "smoothui-stars"
)

// HTTPError is returned when GitHub answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for URL %s: %s", e.StatusCode, e.URL, e.Message)
}

// RateLimited reports whether the error is GitHub's rate limit response.
func (e *HTTPError) RateLimited() bool {
	return e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusTooManyRequests
}

// repository is the subset of the GitHub repository payload we read.
type repository struct {
	StargazersCount int `json:"stargazers_count"`
}

// Client reads a repository's star count.
type Client struct {
	httpClient *http.Client
	apiBase    string
	repo       string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithAPIBase points the client at a different API origin.
func WithAPIBase(base string) Option {
	return func(cl *Client) {
		cl.apiBase = strings.TrimRight(base, "/")
	}
}

// WithToken sets an optional token for higher rate limits.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

// New creates a Client for the "owner/repo" repository.
func New(repo string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		apiBase:    DefaultAPIBase,
		repo:       repo,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Repo returns the "owner/repo" this client reads.
func (c *Client) Repo() string { return c.repo }

// Stars fetches the current stargazer count.
func (c *Client) Stars(ctx context.Context) (int, error) {
	url := fmt.Sprintf("%s/repos/%s", c.apiBase, c.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching repository: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if resp.StatusCode == http.StatusForbidden {
			msg = "rate limit exceeded, set GITHUB_TOKEN for higher limits"
		}
		return 0, &HTTPError{StatusCode: resp.StatusCode, URL: url, Message: msg}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading response body: %w", err)
	}

	var repo repository
	if err := json.Unmarshal(body, &repo); err != nil {
		return 0, fmt.Errorf("parsing repository JSON: %w", err)
	}

	return repo.StargazersCount, nil
}
