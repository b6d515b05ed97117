package postgres

import (
	"context"
	"errors"

	customErrors "github.com/ademarov/feedline/internal/domain/feed/errors"
	"github.com/ademarov/feedline/internal/domain/feed/model"
	"gorm.io/gorm"
)

type PostgresSessionRepo struct {
	db *gorm.DB
}

func NewPostgresSessionRepo(db *gorm.DB) *PostgresSessionRepo {
	return &PostgresSessionRepo{db: db}
}

func (p *PostgresSessionRepo) CreateSession(ctx context.Context, s model.Session) error {
	res := p.db.WithContext(ctx).Table("sessions").Create(&s)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "CreateSession")
	}
	return nil
}

func (p *PostgresSessionRepo) GetSession(ctx context.Context, id string) (model.Session, error) {
	var s model.Session
	res := p.db.WithContext(ctx).Table("sessions").Where("id = ?", id).First(&s)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Session{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Session{}, customErrors.WrapInternal(err, "GetSession")
	}

	return s, nil
}

func (p *PostgresSessionRepo) DeleteSession(ctx context.Context, id string) error {
	res := p.db.WithContext(ctx).Table("sessions").Where("id = ?", id).Delete(&model.Session{})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteSession")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}
