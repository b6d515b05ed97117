package repo

import (
	"context"

	"github.com/ademarov/feedline/internal/domain/feed/model"
)

type SessionRepo interface {
	CreateSession(ctx context.Context, s model.Session) error

	GetSession(ctx context.Context, id string) (model.Session, error)

	DeleteSession(ctx context.Context, id string) error
}
