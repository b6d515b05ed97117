package repo

import (
	"context"

	"github.com/ademarov/feedline/internal/domain/feed/model"
	"github.com/google/uuid"
)

type PostRepo interface {
	CreatePost(ctx context.Context, p model.Post) (uuid.UUID, error)

	GetPostByID(ctx context.Context, id uuid.UUID) (model.Post, error)

	// ListPosts returns all posts newest-first with the author preloaded.
	ListPosts(ctx context.Context) ([]model.Post, error)

	UpdatePost(ctx context.Context, p model.Post) error

	DeletePost(ctx context.Context, id uuid.UUID) error
}
