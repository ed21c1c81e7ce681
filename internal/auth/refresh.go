package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/seven7een/museick-go/internal/shared"
)

// RefreshCoordinator exchanges the long-lived refresh credential held by the
// backend for a new catalog access token, deduplicating concurrent callers.
//
// At most one refresh network call is outstanding at any time: callers that
// arrive while one is in flight join it and observe the same outcome.
type RefreshCoordinator struct {
	baseURL    string
	httpClient *http.Client
	session    SessionTokenProvider
	store      CredentialStore
	events     *Broker
	logger     *log.Logger
	timeout    time.Duration

	mu       sync.Mutex
	inflight *refreshCall
}

// refreshCall is one shared refresh attempt. token is written exactly once
// before done is closed.
type refreshCall struct {
	done  chan struct{}
	token string
}

// RefreshOpts contains dependencies for creating a RefreshCoordinator.
type RefreshOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    SessionTokenProvider
	Store      CredentialStore
	Events     *Broker
	Logger     *log.Logger
	Timeout    time.Duration
}

// NewRefreshCoordinator creates a RefreshCoordinator with the given dependencies.
func NewRefreshCoordinator(opts RefreshOpts) *RefreshCoordinator {
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

	return &RefreshCoordinator{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		session:    opts.Session,
		store:      opts.Store,
		events:     opts.Events,
		logger:     opts.Logger,
		timeout:    opts.Timeout,
	}
}

// Events returns the broker this coordinator publishes on.
func (rc *RefreshCoordinator) Events() *Broker {
	return rc.events
}

// Refresh obtains a new catalog access token, returning "" when the refresh
// credential is no longer usable. It never returns an error: on failure the
// credential store is cleared and [EventAuthExpired] is published, so every
// concurrent waiter sees a consistent outcome.
//
// A call issued while another refresh is in flight joins it instead of
// starting a second network call. A caller whose context expires while
// waiting gets "" without disturbing the shared attempt.
func (rc *RefreshCoordinator) Refresh(ctx context.Context) string {
	rc.mu.Lock()
	if call := rc.inflight; call != nil {
		rc.mu.Unlock()
		select {
		case <-call.done:
			return call.token
		case <-ctx.Done():
			return ""
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	rc.inflight = call
	rc.mu.Unlock()

	call.token = rc.doRefresh(ctx)

	rc.mu.Lock()
	rc.inflight = nil
	rc.mu.Unlock()
	close(call.done)

	return call.token
}

// doRefresh performs the actual refresh network call.
func (rc *RefreshCoordinator) doRefresh(ctx context.Context) string {
	sessionToken, err := rc.session(ctx)
	if err != nil || sessionToken == "" {
		rc.logger.Warn("refresh skipped: no session token", "error", err)
		rc.expire()
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, rc.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rc.baseURL+"/spotify/refresh-token", nil)
	if err != nil {
		rc.logger.Error("failed to build refresh request", "error", err)
		rc.expire()
		return ""
	}
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := rc.httpClient.Do(req)
	if err != nil {
		rc.logger.Warn("refresh request failed", "error", err)
		rc.expire()
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rc.logger.Warn("refresh rejected", "status", resp.StatusCode)
		rc.expire()
		return ""
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.AccessToken == "" {
		rc.logger.Warn("refresh response missing access token", "error", err)
		rc.expire()
		return ""
	}

	if err := rc.store.Set(payload.AccessToken); err != nil {
		rc.logger.Error("failed to persist refreshed token", "error", err)
		rc.expire()
		return ""
	}

	rc.events.Publish(EventAuthRefreshed)
	return payload.AccessToken
}

// expire clears the stored credential and broadcasts the expiry.
func (rc *RefreshCoordinator) expire() {
	if err := rc.store.Clear(); err != nil {
		rc.logger.Warn("failed to clear credential store", "error", err)
	}
	rc.events.Publish(EventAuthExpired)
}
