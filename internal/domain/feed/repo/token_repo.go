package repo

import (
	"context"
	"time"
)

// TokenRepo is the denylist for bearer tokens that were logged out before
// their expiry. Keys live only as long as the token itself would have.
type TokenRepo interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error

	IsRevoked(ctx context.Context, jti string) (bool, error)
}
