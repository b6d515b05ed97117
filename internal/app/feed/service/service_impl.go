package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ademarov/feedline/internal/adapters/transport/http/dto"
	"github.com/ademarov/feedline/internal/app/feed/credential"
	customErrors "github.com/ademarov/feedline/internal/domain/feed/errors"
	"github.com/ademarov/feedline/internal/domain/feed/model"
	"github.com/ademarov/feedline/internal/domain/feed/repo"
	"github.com/ademarov/feedline/internal/infra/config"
	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type feedService struct {
	userRepo repo.UserRepo
	postRepo repo.PostRepo
	issuer   credential.Issuer
	cfg      *config.Config
	v        *validator.Validate
}

func New(
	ur repo.UserRepo,
	pr repo.PostRepo,
	iss credential.Issuer,
	cfg *config.Config,
	v *validator.Validate,
) Service {
	return &feedService{
		userRepo: ur, postRepo: pr, issuer: iss, cfg: cfg, v: v,
	}
}

func (f *feedService) RegistrationOpen() bool {
	return f.cfg.RegistrationOpen
}

func (f *feedService) Register(ctx context.Context, in dto.RegisterDTO) (AuthResult, error) {
	if err := f.v.Struct(in); err != nil {
		return AuthResult{}, customErrors.NewInvalidArgument(err.Error())
	}

	if !f.cfg.RegistrationOpen {
		return AuthResult{}, customErrors.ErrRegistrationClosed
	}

	passwordHash, err := argon2id.CreateHash(in.Password+f.cfg.PasswordPepper, argonParams)
	if err != nil {
		return AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
	}
	// email uniqueness is the DB constraint's job; a concurrent duplicate
	// surfaces here as ErrAlreadyExists, never as a generic failure
	if _, err = f.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return AuthResult{}, customErrors.ErrAlreadyExists
		}
		return AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	cred, err := f.issuer.Issue(ctx, user.ID, false)
	if err != nil {
		return AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	return AuthResult{User: user, Credential: cred}, nil
}

func (f *feedService) Login(ctx context.Context, in dto.LoginDTO) (AuthResult, error) {
	if err := f.v.Struct(in); err != nil {
		return AuthResult{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := f.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return AuthResult{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return AuthResult{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := argon2id.ComparePasswordAndHash(in.Password+f.cfg.PasswordPepper, user.PasswordHash)
	if err != nil {
		// malformed stored hash fails closed, same answer as a wrong password
		return AuthResult{}, customErrors.ErrInvalidCredentials
	}
	if !ok {
		return AuthResult{}, customErrors.ErrInvalidCredentials
	}

	cred, err := f.issuer.Issue(ctx, user.ID, in.RememberMe)
	if err != nil {
		return AuthResult{}, customErrors.WrapInternal(err, "Login")
	}

	return AuthResult{User: user, Credential: cred}, nil
}

func (f *feedService) Logout(ctx context.Context, raw string) error {
	return f.issuer.Revoke(ctx, raw)
}

func (f *feedService) Resolve(ctx context.Context, raw string) (uuid.UUID, error) {
	return f.issuer.Resolve(ctx, raw)
}

func (f *feedService) ListPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := f.postRepo.ListPosts(ctx)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListPosts")
	}
	return posts, nil
}

func (f *feedService) CreatePost(ctx context.Context, userID uuid.UUID, in dto.CreatePostDTO) (model.Post, error) {
	if err := f.validateContent(in.Content); err != nil {
		return model.Post{}, err
	}

	post := model.Post{
		ID:      uuid.New(),
		UserID:  userID,
		Content: in.Content,
	}
	if _, err := f.postRepo.CreatePost(ctx, post); err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "CreatePost")
	}

	created, err := f.postRepo.GetPostByID(ctx, post.ID)
	if err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "CreatePost")
	}
	return created, nil
}

func (f *feedService) UpdatePost(ctx context.Context, userID, postID uuid.UUID, in dto.UpdatePostDTO) (model.Post, error) {
	if err := f.validateContent(in.Content); err != nil {
		return model.Post{}, err
	}

	// existence before ownership before mutation
	post, err := f.postRepo.GetPostByID(ctx, postID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.Post{}, customErrors.ErrNotFound
	case err != nil:
		return model.Post{}, customErrors.WrapInternal(err, "UpdatePost")
	}

	if post.UserID != userID {
		return model.Post{}, customErrors.NewForbidden("you can only edit your own posts")
	}

	post.Content = in.Content
	if err := f.postRepo.UpdatePost(ctx, post); err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "UpdatePost")
	}

	updated, err := f.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "UpdatePost")
	}
	return updated, nil
}

func (f *feedService) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := f.postRepo.GetPostByID(ctx, postID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return customErrors.ErrNotFound
	case err != nil:
		return customErrors.WrapInternal(err, "DeletePost")
	}

	if post.UserID != userID {
		return customErrors.NewForbidden("you can only delete your own posts")
	}

	if err := f.postRepo.DeletePost(ctx, postID); err != nil {
		return customErrors.WrapInternal(err, "DeletePost")
	}
	return nil
}

func (f *feedService) validateContent(content string) error {
	if content == "" {
		return customErrors.NewInvalidArgument("content is required")
	}
	if n := utf8.RuneCountInString(content); n > f.cfg.MaxPostChars {
		return customErrors.NewInvalidArgument(
			fmt.Sprintf("content cannot exceed %d characters", f.cfg.MaxPostChars))
	}
	return nil
}
