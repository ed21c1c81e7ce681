package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/seven7een/museick-go/internal/shared"
)

// AuthDomain selects which credentials are attached to an outgoing request.
type AuthDomain int

const (
	// DomainSession authenticates with the session token only (application
	// backend routes).
	DomainSession AuthDomain = iota
	// DomainSessionCatalog attaches the session token plus the catalog token
	// via the X-Spotify-Token header (backend routes that proxy the catalog).
	DomainSessionCatalog
	// DomainCatalog authenticates with the catalog token only (direct
	// catalog service calls).
	DomainCatalog
)

// usesCatalog reports whether requests in this domain carry a catalog token
// and are therefore eligible for the refresh-and-retry cycle.
func (d AuthDomain) usesCatalog() bool {
	return d == DomainSessionCatalog || d == DomainCatalog
}

// Client performs authenticated HTTP requests against the application backend
// and the catalog service, with automatic one-time recovery from catalog
// authorization failure.
type Client struct {
	backendURL string
	catalogURL string
	httpClient *http.Client
	session    SessionTokenProvider
	store      CredentialStore
	refresher  *RefreshCoordinator
	events     *Broker
	logger     *log.Logger

	timeout        time.Duration
	catalogTimeout time.Duration
}

// ClientOpts contains dependencies for creating a Client.
type ClientOpts struct {
	BackendURL string
	CatalogURL string
	HTTPClient *http.Client
	Session    SessionTokenProvider
	Store      CredentialStore
	Refresher  *RefreshCoordinator
	Events     *Broker
	Logger     *log.Logger
	// Timeout bounds backend requests; CatalogTimeout bounds direct catalog
	// requests and falls back to Timeout when zero.
	Timeout        time.Duration
	CatalogTimeout time.Duration
}

// NewClient creates a Client with the given dependencies.
func NewClient(opts ClientOpts) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Events == nil {
		opts.Events = NewBroker()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.CatalogTimeout <= 0 {
		opts.CatalogTimeout = opts.Timeout
	}

	return &Client{
		backendURL: opts.BackendURL,
		catalogURL: opts.CatalogURL,
		httpClient: opts.HTTPClient,
		session:    opts.Session,
		store:      opts.Store,
		refresher:  opts.Refresher,
		events:     opts.Events,
		logger:     opts.Logger,

		timeout:        opts.Timeout,
		catalogTimeout: opts.CatalogTimeout,
	}
}

// Events returns the broker this client publishes auth-state changes on.
func (c *Client) Events() *Broker {
	return c.events
}

// Do performs one authenticated request and decodes the JSON response body
// into result when result is non-nil. A 204 response resolves without
// decoding.
//
// On 401/403 with a catalog token attached, the refresh coordinator is
// invoked once and the request retried exactly once with the new token; a
// second rejection is terminal. Session-only rejections are terminal
// immediately; no refresh path exists for the session token in this layer.
// Terminal rejections clear the credential store and publish
// [EventAuthExpired] before returning [shared.ErrAuthInvalid].
func (c *Client) Do(ctx context.Context, method, endpoint string, body, result any, domain AuthDomain) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	var sessionToken string
	if domain == DomainSession || domain == DomainSessionCatalog {
		token, err := c.session(ctx)
		if err != nil || token == "" {
			return fmt.Errorf("%w: session token provider returned nothing", shared.ErrAuthMissing)
		}
		sessionToken = token
	}

	refreshed := false
	catalogToken := ""
	if domain.usesCatalog() {
		token, err := c.store.Get()
		if err != nil {
			c.logger.Warn("credential store read failed", "error", err)
		}
		if token == "" {
			// No stored token: spend the one refresh up front.
			token = c.refresher.Refresh(ctx)
			refreshed = true
			if token == "" {
				return fmt.Errorf("%w: no catalog access token available", shared.ErrAuthMissing)
			}
		}
		catalogToken = token
	}

	resp, err := c.send(ctx, method, endpoint, payload, sessionToken, catalogToken, domain)
	if err != nil {
		return err
	}

	if isAuthFailure(resp.status) {
		if !domain.usesCatalog() {
			c.expireAuth()
			return fmt.Errorf("%w: status %d", shared.ErrAuthInvalid, resp.status)
		}

		if !refreshed {
			if token := c.refresher.Refresh(ctx); token != "" {
				retry, err := c.send(ctx, method, endpoint, payload, sessionToken, token, domain)
				if err != nil {
					return err
				}
				if !isAuthFailure(retry.status) {
					return c.finish(retry, result)
				}
				// Fresh token still rejected; fall through to terminal failure.
			}
		}

		c.expireAuth()
		return fmt.Errorf("%w: status %d", shared.ErrAuthInvalid, resp.status)
	}

	return c.finish(resp, result)
}

// response is a fully-read HTTP response.
type response struct {
	status int
	body   []byte
}

// send issues a single HTTP attempt with the resolved tokens attached.
func (c *Client) send(ctx context.Context, method, endpoint string, payload []byte, sessionToken, catalogToken string, domain AuthDomain) (*response, error) {
	base := c.backendURL
	timeout := c.timeout
	if domain == DomainCatalog {
		base = c.catalogURL
		timeout = c.catalogTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	switch domain {
	case DomainSession:
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	case DomainSessionCatalog:
		req.Header.Set("Authorization", "Bearer "+sessionToken)
		req.Header.Set("X-Spotify-Token", catalogToken)
	case DomainCatalog:
		req.Header.Set("Authorization", "Bearer "+catalogToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrNetwork, err)
	}

	return &response{status: resp.StatusCode, body: body}, nil
}

// finish classifies a non-auth response and decodes the result.
func (c *Client) finish(resp *response, result any) error {
	if resp.status < 200 || resp.status >= 300 {
		return &shared.RequestError{Status: resp.status, Message: errorMessage(resp.body)}
	}

	if resp.status == http.StatusNoContent || result == nil || len(resp.body) == 0 {
		return nil
	}

	if err := json.Unmarshal(resp.body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// expireAuth clears the credential store and broadcasts that reconnection is
// needed.
func (c *Client) expireAuth() {
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("failed to clear credential store", "error", err)
	}
	c.events.Publish(EventAuthExpired)
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// errorMessage extracts a human-readable message from an error body.
//
// The backend returns {"error": "..."}; the catalog service wraps it as
// {"error": {"status": ..., "message": "..."}}.
func errorMessage(body []byte) string {
	var backend struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &backend); err == nil && backend.Error != "" {
		return backend.Error
	}

	var catalog struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &catalog); err == nil && catalog.Error.Message != "" {
		return catalog.Error.Message
	}

	return ""
}
