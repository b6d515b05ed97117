package credential_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ademarov/feedline/internal/app/feed/credential"
	appjwt "github.com/ademarov/feedline/internal/app/feed/jwt"
	authErrors "github.com/ademarov/feedline/internal/domain/feed/errors"
	"github.com/ademarov/feedline/internal/domain/feed/model"
	"github.com/ademarov/feedline/internal/infra/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

/* ──────────────────────────────── stubs ──────────────────────────────── */

type denylistStub struct{ revoked map[string]bool }

func (d *denylistStub) Revoke(_ context.Context, jti string, _ time.Time) error {
	d.revoked[jti] = true
	return nil
}
func (d *denylistStub) IsRevoked(_ context.Context, jti string) (bool, error) {
	return d.revoked[jti], nil
}

type sessionRepoStub struct {
	sessions map[string]model.Session
	deleted  []string
}

func (s *sessionRepoStub) CreateSession(_ context.Context, sess model.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}
func (s *sessionRepoStub) GetSession(_ context.Context, id string) (model.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, authErrors.ErrNotFound
	}
	return sess, nil
}
func (s *sessionRepoStub) DeleteSession(_ context.Context, id string) error {
	if _, ok := s.sessions[id]; !ok {
		return authErrors.ErrNotFound
	}
	delete(s.sessions, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func newTokenIssuer(t *testing.T) (credential.Issuer, *denylistStub) {
	t.Helper()
	util, err := appjwt.NewJWTUtil(&config.Config{
		JWTSecret: strings.Repeat("k", 32),
		JWTIssuer: "feedline",
	})
	require.NoError(t, err)
	deny := &denylistStub{revoked: map[string]bool{}}
	return credential.NewTokenIssuer(util, deny, 24*time.Hour, 720*time.Hour), deny
}

/* ─────────────────────────── token strategy ──────────────────────────── */

func TestTokenIssuer_IssueResolve(t *testing.T) {
	iss, _ := newTokenIssuer(t)
	ctx := context.Background()
	uid := uuid.New()

	cred, err := iss.Issue(ctx, uid, false)
	require.NoError(t, err)
	require.NotEmpty(t, cred.Token)

	got, err := iss.Resolve(ctx, cred.Token)
	require.NoError(t, err)
	require.Equal(t, uid, got)
}

func TestTokenIssuer_RememberMeStretchesTTL(t *testing.T) {
	iss, _ := newTokenIssuer(t)
	ctx := context.Background()

	short, err := iss.Issue(ctx, uuid.New(), false)
	require.NoError(t, err)
	long, err := iss.Issue(ctx, uuid.New(), true)
	require.NoError(t, err)

	require.Greater(t, long.TTL, 25*24*time.Hour)
	require.Less(t, short.TTL, 2*24*time.Hour)
}

func TestTokenIssuer_RevokedTokenIsInvalid(t *testing.T) {
	iss, _ := newTokenIssuer(t)
	ctx := context.Background()

	cred, err := iss.Issue(ctx, uuid.New(), false)
	require.NoError(t, err)

	require.NoError(t, iss.Revoke(ctx, cred.Token))

	_, err = iss.Resolve(ctx, cred.Token)
	require.True(t, authErrors.IsInvalidToken(err))
}

func TestTokenIssuer_GarbageIsInvalidNotError(t *testing.T) {
	iss, _ := newTokenIssuer(t)
	_, err := iss.Resolve(context.Background(), "not-a-jwt")
	require.True(t, authErrors.IsInvalidToken(err))
}

/* ────────────────────────── session strategy ─────────────────────────── */

func TestSessionIssuer_IssueResolve(t *testing.T) {
	repo := &sessionRepoStub{sessions: map[string]model.Session{}}
	iss := credential.NewSessionIssuer(repo, 720*time.Hour)
	ctx := context.Background()
	uid := uuid.New()

	cred, err := iss.Issue(ctx, uid, false)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(cred.Token), 21, "session id must be unguessable")

	got, err := iss.Resolve(ctx, cred.Token)
	require.NoError(t, err)
	require.Equal(t, uid, got)
}

func TestSessionIssuer_UniqueIDs(t *testing.T) {
	repo := &sessionRepoStub{sessions: map[string]model.Session{}}
	iss := credential.NewSessionIssuer(repo, time.Hour)
	ctx := context.Background()

	a, err := iss.Issue(ctx, uuid.New(), false)
	require.NoError(t, err)
	b, err := iss.Issue(ctx, uuid.New(), false)
	require.NoError(t, err)
	require.NotEqual(t, a.Token, b.Token)
}

func TestSessionIssuer_ExpiredSessionLazilyDeleted(t *testing.T) {
	repo := &sessionRepoStub{sessions: map[string]model.Session{}}
	iss := credential.NewSessionIssuer(repo, time.Hour)
	ctx := context.Background()

	cred, err := iss.Issue(ctx, uuid.New(), false)
	require.NoError(t, err)

	expired := repo.sessions[cred.Token]
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	repo.sessions[cred.Token] = expired

	_, err = iss.Resolve(ctx, cred.Token)
	require.True(t, authErrors.IsInvalidToken(err))
	require.Contains(t, repo.deleted, cred.Token, "expired row must be removed on first resolve")

	// second resolve: row already gone, same uniform outcome
	_, err = iss.Resolve(ctx, cred.Token)
	require.True(t, authErrors.IsInvalidToken(err))
}

func TestSessionIssuer_RevokeDeletesRow(t *testing.T) {
	repo := &sessionRepoStub{sessions: map[string]model.Session{}}
	iss := credential.NewSessionIssuer(repo, time.Hour)
	ctx := context.Background()

	cred, err := iss.Issue(ctx, uuid.New(), false)
	require.NoError(t, err)

	require.NoError(t, iss.Revoke(ctx, cred.Token))
	_, err = iss.Resolve(ctx, cred.Token)
	require.True(t, authErrors.IsInvalidToken(err))

	// revoking an unknown credential is not an error
	require.NoError(t, iss.Revoke(ctx, "missing"))
}
