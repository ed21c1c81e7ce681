package services

import (
	"context"

	"github.com/seven7een/museick-go/internal/auth"
)

// Doer performs one authenticated HTTP request.
//
// Implemented by [auth.Client]; the small interface keeps the service layer
// testable with fakes.
type Doer interface {
	Do(ctx context.Context, method, endpoint string, body, result any, domain auth.AuthDomain) error
}
