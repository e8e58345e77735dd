package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/merchant/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, merchant *domain.Merchant) error {
	return db.WithContext(ctx).Create(merchant).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Merchant, error) {
	var merchant domain.Merchant
	err := db.WithContext(ctx).First(&merchant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &merchant, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Merchant, error) {
	var merchant domain.Merchant
	err := db.WithContext(ctx).First(&merchant, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &merchant, nil
}

func (r *repo) SlugExists(ctx context.Context, db *gorm.DB, slug string, excludeID snowflake.ID) (bool, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Merchant{}).
		Where("slug = ?", slug)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}

	var count int64
	if err := stmt.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	fields["update_counter"] = gorm.Expr("update_counter + 1")
	return db.WithContext(ctx).
		Model(&domain.Merchant{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Merchant{}, "id = ?", id).Error
}

func (r *repo) ListWithProductCount(ctx context.Context, db *gorm.DB) ([]domain.MerchantWithCount, error) {
	var rows []domain.MerchantWithCount
	err := db.WithContext(ctx).
		Model(&domain.Merchant{}).
		Select("merchants.*, COALESCE(COUNT(products.id), 0) AS product_count").
		Joins("LEFT JOIN products ON products.merchant_id = merchants.id").
		Group("merchants.id").
		Order("merchants.created_at DESC, merchants.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
