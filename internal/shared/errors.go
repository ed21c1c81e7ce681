package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	//
	// ErrAuthMissing means no session token could be obtained at all; the call
	// is never attempted. ErrAuthInvalid means a token was presented and
	// rejected, after at most one refresh-and-retry cycle.
	ErrAuthMissing   = fmt.Errorf("session token unavailable")
	ErrAuthInvalid   = fmt.Errorf("authentication rejected")
	ErrRefreshFailed = fmt.Errorf("token refresh failed")
	ErrTimeout       = fmt.Errorf("operation timed out")

	// Transport errors
	ErrNetwork = fmt.Errorf("network request failed")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)

// RequestError is a non-2xx, non-auth HTTP failure carrying the status code
// and the backend's error message when one could be parsed.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed: status %d", e.Status)
}
