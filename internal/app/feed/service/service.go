package service

import (
	"context"

	"github.com/ademarov/feedline/internal/adapters/transport/http/dto"
	"github.com/ademarov/feedline/internal/domain/feed/model"
	"github.com/google/uuid"
)

// AuthResult is what register and login hand back: the account (hash never
// leaves the service) and the freshly minted credential.
type AuthResult struct {
	User       model.User
	Credential model.Credential
}

type Service interface {
	RegistrationOpen() bool

	Register(context.Context, dto.RegisterDTO) (AuthResult, error)
	Login(context.Context, dto.LoginDTO) (AuthResult, error)
	Logout(ctx context.Context, credential string) error

	// Resolve maps a presented credential to a user id; every failure mode
	// is ErrInvalidToken.
	Resolve(ctx context.Context, credential string) (uuid.UUID, error)

	ListPosts(context.Context) ([]model.Post, error)
	CreatePost(ctx context.Context, userID uuid.UUID, in dto.CreatePostDTO) (model.Post, error)
	UpdatePost(ctx context.Context, userID, postID uuid.UUID, in dto.UpdatePostDTO) (model.Post, error)
	DeletePost(ctx context.Context, userID, postID uuid.UUID) error
}
