package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public GitHub REST API
	DefaultBaseURL = "https://api.github.com"
	// DefaultUserAgent is sent when no user agent is configured
	DefaultUserAgent = "ghscout"
	// DefaultTimeout bounds a single request
	DefaultTimeout = 30 * time.Second

	popularQuery = "stars:>1"
)

// Client represents a GitHub REST API client. It holds no per-call
// state and is safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new GitHub client. No request is made until an
// operation is called.
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: client.timeout}
	}

	return client
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchUser retrieves a single user by login
func (c *Client) FetchUser(ctx context.Context, username string) (*User, error) {
	user, err := getJSON[User](ctx, c, fmt.Sprintf("/users/%s", username), nil)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchRepos retrieves the public repositories of a user
func (c *Client) FetchRepos(ctx context.Context, username string) ([]Repository, error) {
	return getJSON[[]Repository](ctx, c, fmt.Sprintf("/users/%s/repos", username), nil)
}

// FetchFollowers retrieves the followers of a user
func (c *Client) FetchFollowers(ctx context.Context, username string) ([]User, error) {
	return getJSON[[]User](ctx, c, fmt.Sprintf("/users/%s/followers", username), nil)
}

// SearchPopularRepositories retrieves one page of repositories with more than
// one star, sorted by stars descending
func (c *Client) SearchPopularRepositories(ctx context.Context, page, perPage int) (*SearchResponse[Repository], error) {
	params := url.Values{}
	params.Set("q", popularQuery)
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))

	resp, err := getJSON[SearchResponse[Repository]](ctx, c, "/search/repositories", params)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("page", page).
		Int("count", len(resp.Items)).
		Int("total", resp.TotalCount).
		Bool("incomplete", resp.IncompleteResults).
		Msg("Retrieved popular repositories from GitHub")

	return &resp, nil
}

// getJSON performs one GET request and decodes the body into T. Every
// failure is returned as an *APIError.
func getJSON[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (T, error) {
	var result T

	rawURL := c.baseURL + endpoint
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return result, &APIError{Kind: KindInvalidURL, Endpoint: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return result, &APIError{Kind: KindInvalidURL, Endpoint: rawURL, Err: err}
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("url", req.URL.String()).
			Dur("duration", time.Since(start)).
			Msg("GitHub API request failed")
		return result, &APIError{Kind: KindNetwork, Endpoint: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("GitHub API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &APIError{
			Kind:       classifyStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Endpoint:   req.URL.String(),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, &APIError{
			Kind:       KindInvalidData,
			StatusCode: resp.StatusCode,
			Endpoint:   req.URL.String(),
			Err:        err,
		}
	}

	return result, nil
}
