package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/seven7een/museick-go/internal/shared"
	"golang.org/x/oauth2"
)

const spotifyAuthURL = "https://accounts.spotify.com/authorize"

// DefaultScopes are the catalog scopes Museick requests during authorization.
var DefaultScopes = []string{
	"user-read-private",
	"user-read-email",
	"user-top-read",
	"playlist-modify-public",
	"playlist-modify-private",
	"ugc-image-upload",
}

// Authorization holds the state of one PKCE authorization attempt. The
// verifier never leaves the client; only its S256 challenge is embedded in
// the URL.
type Authorization struct {
	URL      string
	State    string
	Verifier string
}

// BeginAuthorization builds the catalog authorize URL for the PKCE flow.
func BeginAuthorization(clientID, redirectURI string, scopes []string) (*Authorization, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: spotify client_id is not configured", shared.ErrInvalidConfig)
	}
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	state, err := shared.GenerateState()
	if err != nil {
		return nil, err
	}

	verifier := oauth2.GenerateVerifier()

	config := &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURI,
		Scopes:      scopes,
		Endpoint:    oauth2.Endpoint{AuthURL: spotifyAuthURL},
	}

	return &Authorization{
		URL:      config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)),
		State:    state,
		Verifier: verifier,
	}, nil
}

// TokenResponse is the backend's token exchange payload.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
}

// ExchangeCode trades the PKCE authorization code for a catalog access token
// via the backend, which keeps the refresh credential server-side. The new
// access token is persisted in the credential store.
func (c *Client) ExchangeCode(ctx context.Context, code, verifier string) (*TokenResponse, error) {
	if code == "" || verifier == "" {
		return nil, fmt.Errorf("%w: code and verifier are required", shared.ErrInvalidArgument)
	}

	body := map[string]string{"code": code, "code_verifier": verifier}

	var token TokenResponse
	if err := c.Do(ctx, http.MethodPost, "/spotify/exchange-code", body, &token, DomainSession); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: exchange returned no access token", shared.ErrAuthInvalid)
	}

	if err := c.store.Set(token.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to persist access token: %w", err)
	}
	c.events.Publish(EventAuthRefreshed)

	return &token, nil
}

// SignOut clears the stored catalog credential without broadcasting an
// expiry: sign-out is user-initiated, not a failure.
func (c *Client) SignOut() error {
	return c.store.Clear()
}
