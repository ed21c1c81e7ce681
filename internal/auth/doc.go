// Package auth implements the authenticated-access layer fronting two
// independent token systems: the first-party session token and the catalog
// access token whose refresh credential lives server-side.
//
// # Components
//
//   - [CredentialStore] : opaque persistence for the catalog access token
//   - [SessionTokenProvider] : injected capability returning the session JWT
//   - [RefreshCoordinator] : single-flight token refresh via the backend
//   - [Client] : one authenticated request with bounded refresh-and-retry
//   - [Broker] : best-effort pub/sub for credential-state changes
//
// # Recovery cycle
//
// A request carrying a catalog token that is rejected with 401/403 triggers
// exactly one [RefreshCoordinator.Refresh] followed by exactly one retry.
// Concurrent rejections share a single refresh network call. A second
// rejection clears the store, publishes [EventAuthExpired], and surfaces
// [shared.ErrAuthInvalid]; callers never loop.
//
// The coordinator itself never fails loudly: it resolves "" so that every
// concurrent waiter observes the same outcome.
//
// # Authorization flow
//
// [BeginAuthorization] builds a PKCE authorize URL ([oauth2.GenerateVerifier]
// and the S256 challenge); the resulting code is exchanged through the
// backend with [Client.ExchangeCode], so the refresh token never reaches the
// client.
package auth
