// Package credential implements the two credential strategies behind one
// interface: a stateless signed bearer token and a stateful opaque session.
// Exactly one strategy is active per process, selected by configuration.
package credential

import (
	"context"

	"github.com/ademarov/feedline/internal/domain/feed/model"
	"github.com/google/uuid"
)

type Issuer interface {
	// Issue mints a credential proving the identity of userID. remember
	// stretches the lifetime to the long TTL.
	Issue(ctx context.Context, userID uuid.UUID, remember bool) (model.Credential, error)

	// Resolve maps a presented credential to a user id. Any failure mode
	// (malformed, unknown, expired, revoked) comes back as ErrInvalidToken
	// so callers answer with a single unauthenticated status.
	Resolve(ctx context.Context, raw string) (uuid.UUID, error)

	// Revoke invalidates a credential ahead of its expiry.
	Revoke(ctx context.Context, raw string) error
}
