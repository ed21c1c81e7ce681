package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seven7een/museick-go/internal/auth"
	"github.com/seven7een/museick-go/internal/server"
	"github.com/seven7een/museick-go/internal/shared"
	"github.com/urfave/cli/v3"
)

// authStatusKey is the transient flag recorded when a command hits a
// terminal auth failure, surfaced by `auth status`.
const authStatusKey = "auth"

// loginTimeout bounds the whole authorize round trip, browser included.
const loginTimeout = 5 * time.Minute

// AuthLogin runs the PKCE authorization code flow: opens the authorize URL,
// captures the redirect on a loopback listener, and exchanges the code
// through the backend so the refresh credential stays server-side.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.wire(); err != nil {
		return err
	}

	authz, err := auth.BeginAuthorization(r.config.Spotify.ClientID, r.config.Spotify.RedirectURI, nil)
	if err != nil {
		return err
	}

	if cmd.Bool("no-browser") {
		r.writePlain("Open this URL to authorize:\n%s\n", authz.URL)
	} else {
		r.logger.Info("opening browser for authorization")
		if err := shared.OpenBrowser(authz.URL); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
			r.writePlain("Open this URL to authorize:\n%s\n", authz.URL)
		}
	}

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	r.logger.Info("waiting for authorization redirect", "addr", addr)

	waitCtx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	code, err := server.AwaitCallback(waitCtx, addr, server.NewCallbackHandler(authz.State), r.logger)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	if _, err := r.client.ExchangeCode(ctx, code, authz.Verifier); err != nil {
		return r.noteAuthError(err)
	}

	r.logger.Info("catalog token stored")

	if err := r.backend.SyncUser(ctx); err != nil {
		r.logger.Warn("user sync failed", "error", err)
	}

	return r.writePlain("✓ Authorization successful\n")
}

// AuthStatus reports what credentials are present and whether a prior
// command recorded an auth failure.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.wire(); err != nil {
		return err
	}

	sessionToken, err := r.sessionProvider()(ctx)
	if err != nil {
		return err
	}

	if sessionToken == "" {
		r.writePlain("Session: ✗ no token (set %s or run 'museick auth session <token>')\n", sessionTokenEnv)
	} else if subject, err := auth.SessionSubject(sessionToken); err == nil {
		r.writePlain("Session: ✓ token for %s\n", subject)
	} else {
		r.writePlain("Session: ✓ token present (subject unreadable: %v)\n", err)
	}

	catalogToken, err := r.store.Get()
	if err != nil {
		return err
	}
	if catalogToken == "" {
		r.writePlain("Catalog: ✗ no token (run 'museick auth login')\n")
	} else {
		r.writePlain("Catalog: ✓ token present\n")
	}

	if message, ok, err := r.store.TakeStatus(authStatusKey); err == nil && ok {
		r.writePlain("Note: last session ended with auth failure: %s\n", message)
	}

	return nil
}

// AuthRefresh forces one refresh cycle through the backend.
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	if err := r.wire(); err != nil {
		return err
	}

	r.logger.Info("refreshing catalog token")
	if token := r.refresher.Refresh(ctx); token == "" {
		r.noteAuthError(shared.ErrRefreshFailed)
		return fmt.Errorf("%w: run 'museick auth login' to reauthorize", shared.ErrRefreshFailed)
	}

	return r.writePlain("✓ Catalog token refreshed\n")
}

// AuthLogout clears both stored tokens.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.wire(); err != nil {
		return err
	}

	if err := r.client.SignOut(); err != nil {
		return err
	}
	if err := r.store.ClearSessionToken(); err != nil {
		return err
	}

	return r.writePlain("✓ Signed out\n")
}

// AuthSession stores a backend session token for subsequent commands.
func (r *Runner) AuthSession(ctx context.Context, cmd *cli.Command) error {
	token := cmd.StringArg("token")
	if token == "" {
		return fmt.Errorf("%w: session token argument is required", shared.ErrMissingArgument)
	}

	if err := r.wire(); err != nil {
		return err
	}

	if _, err := auth.SessionSubject(token); err != nil {
		r.logger.Warn("token does not parse as a JWT, storing anyway", "error", err)
	}

	if err := r.store.SetSessionToken(token); err != nil {
		return err
	}

	return r.writePlain("✓ Session token stored\n")
}

// noteAuthError records terminal auth failures so `auth status` can explain
// why the next command will ask for a login. The original error passes
// through untouched.
func (r *Runner) noteAuthError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, shared.ErrAuthInvalid) || errors.Is(err, shared.ErrAuthMissing) || errors.Is(err, shared.ErrRefreshFailed) {
		if serr := r.store.SetStatus(authStatusKey, err.Error()); serr != nil {
			r.logger.Debug("failed to record auth status", "error", serr)
		}
	}
	return err
}
