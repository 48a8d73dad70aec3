package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultBaseURL = "https://api.github.com"
	userAgent      = "dev-assessment-be"
)

// UpstreamError is returned for any non-2xx response from the GitHub API.
// It carries the upstream status text so callers (and the model) can see
// what went wrong.
type UpstreamError struct {
	StatusCode int
	Status     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("GitHub API error: %s", e.Status)
}

// Client is a thin wrapper around the GitHub REST v3 API.
// Responses are cached in-memory for a short TTL so repeated tool calls
// within (or across) invocations do not burn rate limit. Raw upstream
// payloads are cached, never derived analyses.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	cache   *cache.Cache
}

func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// getJSON performs an authenticated GET against the API and decodes the
// JSON body into out. Non-2xx responses become *UpstreamError.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	if raw, found := c.cache.Get(path); found {
		return json.Unmarshal(raw.([]byte), out)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("github request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &UpstreamError{StatusCode: res.StatusCode, Status: res.Status}
	}

	c.cache.Set(path, body, cache.DefaultExpiration)
	return json.Unmarshal(body, out)
}

// GetUser fetches a user's profile.
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/users/"+username, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListRecentlyPushedRepos returns up to 15 repositories ordered by push
// recency.
func (c *Client) ListRecentlyPushedRepos(ctx context.Context, username string) ([]Repository, error) {
	var repos []Repository
	path := fmt.Sprintf("/users/%s/repos?sort=pushed&per_page=15", username)
	if err := c.getJSON(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// ListAllRepos returns up to 100 repositories of any visibility, used for
// language statistics.
func (c *Client) ListAllRepos(ctx context.Context, username string) ([]Repository, error) {
	var repos []Repository
	path := fmt.Sprintf("/users/%s/repos?per_page=100&type=all", username)
	if err := c.getJSON(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// ListRecentlyUpdatedRepos returns the 10 most recently updated
// repositories, used for pull request mining.
func (c *Client) ListRecentlyUpdatedRepos(ctx context.Context, username string) ([]Repository, error) {
	var repos []Repository
	path := fmt.Sprintf("/users/%s/repos?sort=updated&per_page=10", username)
	if err := c.getJSON(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// ListPullRequests returns up to 10 pull requests of any state for one
// repository.
func (c *Client) ListPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error) {
	var pulls []PullRequest
	path := fmt.Sprintf("/repos/%s/%s/pulls?state=all&per_page=10", owner, repo)
	if err := c.getJSON(ctx, path, &pulls); err != nil {
		return nil, err
	}
	return pulls, nil
}

// ListEvents returns up to 100 recent public activity events.
func (c *Client) ListEvents(ctx context.Context, username string) ([]Event, error) {
	var events []Event
	path := fmt.Sprintf("/users/%s/events?per_page=100", username)
	if err := c.getJSON(ctx, path, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListStarred returns up to 20 starred repositories, most recently
// starred first.
func (c *Client) ListStarred(ctx context.Context, username string) ([]Repository, error) {
	var repos []Repository
	path := fmt.Sprintf("/users/%s/starred?per_page=20&sort=created", username)
	if err := c.getJSON(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}
