package postgres

import (
	"context"
	"errors"
	"time"

	customErrors "github.com/ademarov/feedline/internal/domain/feed/errors"
	"github.com/ademarov/feedline/internal/domain/feed/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresPostRepo struct {
	db *gorm.DB
}

func NewPostgresPostRepo(db *gorm.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// postRecord is the flat row shape gorm works with; the domain model
// carries the author as a nested struct, which is filled from the join.
type postRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (postRecord) TableName() string { return "posts" }

type postWithAuthor struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	AuthorName string
}

func (p *PostgresPostRepo) CreatePost(ctx context.Context, post model.Post) (uuid.UUID, error) {
	rec := postRecord{
		ID:      post.ID,
		UserID:  post.UserID,
		Content: post.Content,
	}
	res := p.db.WithContext(ctx).Create(&rec)
	if err := res.Error; err != nil {
		return uuid.Nil, customErrors.WrapInternal(err, "CreatePost")
	}
	return rec.ID, nil
}

func (p *PostgresPostRepo) GetPostByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	var row postWithAuthor
	res := p.db.WithContext(ctx).
		Table("posts").
		Select("posts.*, users.name AS author_name").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.id = ?", id).
		Take(&row)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Post{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "GetPostByID")
	}

	return toDomain(row), nil
}

func (p *PostgresPostRepo) ListPosts(ctx context.Context) ([]model.Post, error) {
	var rows []postWithAuthor
	res := p.db.WithContext(ctx).
		Table("posts").
		Select("posts.*, users.name AS author_name").
		Joins("JOIN users ON users.id = posts.user_id").
		Order("posts.created_at DESC").
		Scan(&rows)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListPosts")
	}

	posts := make([]model.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, toDomain(row))
	}
	return posts, nil
}

func (p *PostgresPostRepo) UpdatePost(ctx context.Context, post model.Post) error {
	res := p.db.WithContext(ctx).
		Model(&postRecord{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"content":    post.Content,
			"updated_at": time.Now(),
		})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "UpdatePost")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresPostRepo) DeletePost(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Where("id = ?", id).Delete(&postRecord{})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeletePost")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func toDomain(row postWithAuthor) model.Post {
	return model.Post{
		ID:        row.ID,
		UserID:    row.UserID,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Author: model.User{
			ID:   row.UserID,
			Name: row.AuthorName,
		},
	}
}
