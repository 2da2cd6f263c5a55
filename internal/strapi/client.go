package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/octobees/cms-seeder/internal/config"
	"github.com/octobees/cms-seeder/internal/dto"
)

// Client talks to the CMS REST API.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
	limiter *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithRateLimit throttles outgoing requests with a token bucket. A disabled
// config leaves the client unthrottled.
func WithRateLimit(cfg config.RateLimitConfig) Option {
	return func(c *Client) {
		if !cfg.Enabled() {
			return
		}
		perRequest := cfg.Interval / time.Duration(cfg.Requests)
		if perRequest <= 0 {
			perRequest = time.Second
		}
		c.limiter = rate.NewLimiter(rate.Every(perRequest), 1)
	}
}

// NewClient builds a client for the API rooted at baseURL.
func NewClient(client *http.Client, baseURL, token string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL must not be empty")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	c := &Client{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a client from the shared configuration.
func NewFromConfig(cfg *config.Config) *Client {
	return NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.BaseURL, cfg.Token, WithRateLimit(cfg.RateLimit))
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks the liveness endpoint. Any 2xx answer is healthy.
func (c *Client) Health(ctx context.Context) error {
	res, err := call[[]byte](ctx, c, http.MethodGet, "/_health", nil, false)
	if err != nil {
		return err
	}
	_, err = res.Unwrap()
	return err
}

// ListRoles fetches the users-permissions role catalog.
func (c *Client) ListRoles(ctx context.Context) (*dto.RolesResponse, error) {
	res, err := call[dto.RolesResponse](ctx, c, http.MethodGet, "/api/users-permissions/roles", nil, true)
	if err != nil {
		return nil, err
	}
	roles, err := res.Unwrap()
	if err != nil {
		return nil, err
	}
	return &roles, nil
}

// Register creates an account through the local auth provider. The call is
// unauthenticated, like a browser sign-up.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	res, err := call[dto.RegisterResponse](ctx, c, http.MethodPost, "/api/auth/local/register", req, false)
	if err != nil {
		return nil, err
	}
	out, err := res.Unwrap()
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignRole sets the role of an existing user.
func (c *Client) AssignRole(ctx context.Context, userID, roleID int) error {
	path := "/api/users/" + strconv.Itoa(userID)
	res, err := call[[]byte](ctx, c, http.MethodPut, path, dto.AssignRoleRequest{Role: roleID}, true)
	if err != nil {
		return err
	}
	_, err = res.Unwrap()
	return err
}

// CreateEvent posts one entry to the events collection.
func (c *Client) CreateEvent(ctx context.Context, payload dto.EventCreatePayload) (*dto.Entry, error) {
	return createEntry(ctx, c, "/api/events", payload)
}

// CreatePage posts one entry to the pages collection.
func (c *Client) CreatePage(ctx context.Context, payload dto.PageCreatePayload) (*dto.Entry, error) {
	return createEntry(ctx, c, "/api/pages", payload)
}

func createEntry[T any](ctx context.Context, c *Client, path string, payload T) (*dto.Entry, error) {
	res, err := call[dto.EntryResponse](ctx, c, http.MethodPost, path, dto.DataEnvelope[T]{Data: payload}, true)
	if err != nil {
		return nil, err
	}
	out, err := res.Unwrap()
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// call performs one request and decodes the answer into a Result. The
// returned error covers transport and decoding failures only.
func call[T any](ctx context.Context, c *Client, method, path string, payload any, authorized bool) (Result[T], error) {
	var res Result[T]

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return res, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return res, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return res, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return res, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	return decodeResult[T](resp.StatusCode, resp.Body)
}
