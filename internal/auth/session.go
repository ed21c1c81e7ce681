package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenProvider returns the current first-party identity token.
//
// The capability is supplied by an external collaborator (the session
// identity provider); this layer consumes it and never mints or refreshes
// session tokens itself.
type SessionTokenProvider func(ctx context.Context) (string, error)

// StaticSessionToken wraps a fixed token as a [SessionTokenProvider].
func StaticSessionToken(token string) SessionTokenProvider {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// SessionSubject extracts the subject (user id) claim from a session JWT.
//
// The signature is not verified here: validation belongs to the identity
// provider and the backend. This is only used for display and logging.
func SessionSubject(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("session token has no subject claim")
	}

	return sub, nil
}
