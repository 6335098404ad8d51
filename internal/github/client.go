// Package github is a thin client for the two GitHub REST endpoints the
// application consumes: a user's public profile and their repository list.
//
// SCOPE:
// This package owns transport only — building requests, decoding responses,
// and classifying failures into the apperror taxonomy. It holds no request
// lifecycle state; that lives in the lookup coordinators, which call this
// client and translate its typed errors into user-facing messages.
//
// GitHub API docs:
//
//	https://docs.github.com/en/rest/users/users#get-a-user
//	https://docs.github.com/en/rest/repos/repos#list-repositories-for-a-user
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/sakif/devfinder/internal/apperror"
	"github.com/sakif/devfinder/internal/model"
)

// DefaultBaseURL is GitHub's public REST API root. Tests point the client
// at an httptest.Server instead.
const DefaultBaseURL = "https://api.github.com"

// ReposPerPage is the fixed page size for the repository list. The UI shows
// a single page of the most recently updated repos; there is no pagination.
const ReposPerPage = 30

// Client talks to the GitHub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a GitHub client.
//
// baseURL is usually DefaultBaseURL. token is optional: unauthenticated
// requests work fine but GitHub caps them at 60/hour per IP, so a personal
// access token raises the limit for anything beyond casual use.
//
// TOKEN TRANSPORT:
// oauth2.NewClient gives us an *http.Client whose transport injects the
// "Authorization: Bearer <token>" header into every request — the same
// mechanism an OAuth flow would use, just with a static token instead of
// an exchanged one.
func New(baseURL, token string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// apiError is the shape GitHub uses for error payloads.
// Example: {"message":"Not Found","documentation_url":"https://docs.github.com/..."}
// We consult it opportunistically — a missing or malformed payload just
// means we fall back to a status-based message.
type apiError struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}

// GetUser fetches the public profile for the given login.
func (c *Client) GetUser(ctx context.Context, login string) (*model.Profile, error) {
	var profile model.Profile
	path := "/users/" + url.PathEscape(login)
	if err := c.get(ctx, path, &profile); err != nil {
		return nil, err
	}
	if profile.ID == 0 {
		return nil, apperror.Remote("GitHub returned an invalid user (ID = 0)")
	}
	return &profile, nil
}

// ListRepos fetches the login's public repositories, newest-updated first,
// capped at ReposPerPage. An empty slice is a valid result — a user with
// no public repos is not an error.
func (c *Client) ListRepos(ctx context.Context, login string) ([]model.Repo, error) {
	q := url.Values{}
	q.Set("sort", "updated")
	q.Set("direction", "desc")
	q.Set("per_page", fmt.Sprintf("%d", ReposPerPage))

	repos := []model.Repo{}
	path := "/users/" + url.PathEscape(login) + "/repos?" + q.Encode()
	if err := c.get(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// get performs one GET against the API and decodes the JSON body into out.
//
// ERROR CLASSIFICATION:
// Every failure becomes a typed apperror so the lookup layer can word its
// messages by class without inspecting status codes itself:
//   - transport error (no HTTP status at all) → ErrUnreachable
//   - 404 → ErrNotFound
//   - 403 → ErrRateLimited (GitHub's answer when the rate limit is spent)
//   - anything else → ErrRemote, carrying the payload's message if present
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("github: building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all — DNS failure, refused connection, timeout.
		// This is the "status 0" case; the caller words it as a
		// connectivity problem, so don't leak the raw transport error.
		c.logger.Warn("github request failed before a response",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return apperror.Unreachable("could not reach GitHub")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperror.Remote("GitHub returned an unreadable response")
		}
		return nil

	case resp.StatusCode == http.StatusNotFound:
		return apperror.NotFound("resource not found")

	case resp.StatusCode == http.StatusForbidden:
		return apperror.RateLimited("GitHub API rate limit exceeded")

	default:
		// Try the error payload for a human-readable message.
		var payload apiError
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
			return apperror.Remote(payload.Message)
		}
		return apperror.Remote(fmt.Sprintf("GitHub API returned status %d", resp.StatusCode))
	}
}
