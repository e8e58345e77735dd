package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/gallery/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, gallery *domain.Gallery) error {
	return db.WithContext(ctx).Create(gallery).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Gallery, error) {
	var gallery domain.Gallery
	err := db.WithContext(ctx).First(&gallery, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gallery, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	fields["update_counter"] = gorm.Expr("update_counter + 1")
	return db.WithContext(ctx).
		Model(&domain.Gallery{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Gallery{}, "id = ?", id).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, limit int) ([]domain.Gallery, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Gallery{}).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	var galleries []domain.Gallery
	if err := stmt.Find(&galleries).Error; err != nil {
		return nil, err
	}
	return galleries, nil
}
