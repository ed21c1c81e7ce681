package auth

// CredentialStore is thin key/value persistence for the catalog access token.
//
// The token is opaque: no shape validation happens here, and no expiry is
// tracked client-side. Expiry is discovered reactively via a 401/403
// response. Implementations must survive process restarts.
//
// Only the [RefreshCoordinator], [Client.ExchangeCode] and the sign-out path
// write to the store; everything else reads.
type CredentialStore interface {
	// Get returns the stored catalog access token, or "" when absent.
	Get() (string, error)
	// Set persists a new catalog access token.
	Set(token string) error
	// Clear removes the stored token.
	Clear() error
}
