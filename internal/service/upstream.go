package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/msomdec/dataproc/internal/domain"
)

// UpstreamClient talks to the sibling service that owns raw user records.
// All failures are reported as domain.ErrUpstreamUnavailable so callers can
// distinguish upstream outages from local errors.
type UpstreamClient struct {
	baseURL string
	client  *http.Client
	auth    *AuthService
}

// NewUpstreamClient creates a client for the sibling service at baseURL.
// Requests carry a signed service token when auth is configured.
func NewUpstreamClient(baseURL string, timeout time.Duration, auth *AuthService) *UpstreamClient {
	return &UpstreamClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		auth:    auth,
	}
}

// BaseURL returns the configured sibling-service base URL.
func (c *UpstreamClient) BaseURL() string {
	return c.baseURL
}

// Health checks the sibling service's /health endpoint and returns its body.
func (c *UpstreamClient) Health(ctx context.Context) (map[string]any, error) {
	var body map[string]any
	if err := c.getJSON(ctx, "/health", &body); err != nil {
		return nil, err
	}
	return body, nil
}

// FetchUsers retrieves the full raw-user set from the sibling service.
func (c *UpstreamClient) FetchUsers(ctx context.Context) ([]domain.RawUser, error) {
	var body []upstreamUser
	if err := c.getJSON(ctx, "/users", &body); err != nil {
		return nil, err
	}

	users := make([]domain.RawUser, 0, len(body))
	for _, u := range body {
		users = append(users, domain.RawUser{
			UserID: string(u.ID),
			Name:   u.Name,
			Email:  u.Email,
			Age:    u.Age,
		})
	}
	return users, nil
}

// upstreamUser matches the sibling service's wire format. IDs arrive as
// numbers there, but string IDs from other deployments are accepted too.
type upstreamUser struct {
	ID    upstreamID `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Age   int        `json:"age"`
}

// upstreamID decodes from either a JSON number or a JSON string.
type upstreamID string

func (id *upstreamID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = upstreamID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = upstreamID(n.String())
	return nil
}

func (c *UpstreamClient) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrUpstreamUnavailable, err)
	}

	if c.auth != nil {
		token, err := c.auth.IssueServiceToken()
		if err != nil {
			// Local signing failure, not an upstream outage; deliberately not
			// wrapped in ErrUpstreamUnavailable so it surfaces as a server error.
			return fmt.Errorf("issue service token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s returned %d", domain.ErrUpstreamUnavailable, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return nil
}
