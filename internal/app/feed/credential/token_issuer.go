package credential

import (
	"context"
	"time"

	customErrors "github.com/ademarov/feedline/internal/domain/feed/errors"
	"github.com/ademarov/feedline/internal/domain/feed/model"
	"github.com/ademarov/feedline/internal/domain/feed/repo"
	"github.com/ademarov/feedline/internal/domain/feed/token"
	"github.com/google/uuid"
)

type tokenIssuer struct {
	util        token.Util
	denylist    repo.TokenRepo
	accessTTL   time.Duration
	rememberTTL time.Duration
}

// NewTokenIssuer returns the stateless strategy. Signature and expiry are
// checked computationally; the denylist only exists so logout can cut a
// token off before it expires.
func NewTokenIssuer(util token.Util, denylist repo.TokenRepo, accessTTL, rememberTTL time.Duration) Issuer {
	return &tokenIssuer{
		util:        util,
		denylist:    denylist,
		accessTTL:   accessTTL,
		rememberTTL: rememberTTL,
	}
}

func (t *tokenIssuer) Issue(ctx context.Context, userID uuid.UUID, remember bool) (model.Credential, error) {
	ttl := t.accessTTL
	if remember {
		ttl = t.rememberTTL
	}

	raw, exp, _, err := t.util.Generate(userID, ttl)
	if err != nil {
		return model.Credential{}, customErrors.WrapInternal(err, "Issue")
	}

	return model.Credential{
		Token:     raw,
		TTL:       time.Until(exp),
		UserID:    userID,
		ExpiresAt: exp,
	}, nil
}

func (t *tokenIssuer) Resolve(ctx context.Context, raw string) (uuid.UUID, error) {
	claims, err := t.util.Validate(raw)
	if err != nil {
		return uuid.Nil, customErrors.ErrInvalidToken
	}

	revoked, err := t.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return uuid.Nil, customErrors.WrapInternal(err, "Resolve")
	}
	if revoked {
		return uuid.Nil, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, customErrors.ErrInvalidToken
	}

	return uid, nil
}

func (t *tokenIssuer) Revoke(ctx context.Context, raw string) error {
	claims, err := t.util.Validate(raw)
	if err != nil {
		return customErrors.ErrInvalidToken
	}

	if err := t.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return customErrors.WrapInternal(err, "Revoke")
	}
	return nil
}
