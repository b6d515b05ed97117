package credential

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	customErrors "github.com/ademarov/feedline/internal/domain/feed/errors"
	"github.com/ademarov/feedline/internal/domain/feed/model"
	"github.com/ademarov/feedline/internal/domain/feed/repo"
	"github.com/google/uuid"
)

// sessionIDBytes gives a 43-character base64url id, comfortably above the
// unguessability floor for opaque session tokens.
const sessionIDBytes = 32

type sessionIssuer struct {
	sessions repo.SessionRepo
	ttl      time.Duration
}

// NewSessionIssuer returns the stateful strategy: one row per issued
// session, expired rows deleted lazily on the first resolve after expiry.
func NewSessionIssuer(sessions repo.SessionRepo, ttl time.Duration) Issuer {
	return &sessionIssuer{sessions: sessions, ttl: ttl}
}

func (s *sessionIssuer) Issue(ctx context.Context, userID uuid.UUID, _ bool) (model.Credential, error) {
	id, err := newSessionID()
	if err != nil {
		return model.Credential{}, customErrors.WrapInternal(err, "Issue")
	}

	now := time.Now()
	sess := model.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.sessions.CreateSession(ctx, sess); err != nil {
		return model.Credential{}, customErrors.WrapInternal(err, "Issue")
	}

	return model.Credential{
		Token:     id,
		TTL:       s.ttl,
		UserID:    userID,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

func (s *sessionIssuer) Resolve(ctx context.Context, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, customErrors.ErrInvalidToken
	}

	sess, err := s.sessions.GetSession(ctx, raw)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return uuid.Nil, customErrors.ErrInvalidToken
	case err != nil:
		return uuid.Nil, customErrors.WrapInternal(err, "Resolve")
	}

	if !sess.ExpiresAt.After(time.Now()) {
		// lazy cleanup; the delete failing must not change the outcome
		_ = s.sessions.DeleteSession(ctx, raw)
		return uuid.Nil, customErrors.ErrInvalidToken
	}

	return sess.UserID, nil
}

func (s *sessionIssuer) Revoke(ctx context.Context, raw string) error {
	err := s.sessions.DeleteSession(ctx, raw)
	if err != nil && !errors.Is(err, customErrors.ErrNotFound) {
		return customErrors.WrapInternal(err, "Revoke")
	}
	return nil
}

func newSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
