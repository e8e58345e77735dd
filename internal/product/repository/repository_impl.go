package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ProductWithMerchant, error) {
	var row domain.ProductWithMerchant
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Select("products.*, merchants.name AS merchant_name, merchants.slug AS merchant_slug").
		Joins("LEFT JOIN merchants ON merchants.id = products.merchant_id").
		Where("products.id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repo) SlugExists(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, slug string, excludeID snowflake.ID) (bool, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("merchant_id = ? AND slug = ?", merchantID, slug)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}

	var count int64
	if err := stmt.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) MerchantExists(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("merchants").
		Where("id = ?", merchantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	fields["update_counter"] = gorm.Expr("update_counter + 1")
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) ([]domain.ProductWithMerchant, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Product{}).
		Select("products.*, merchants.name AS merchant_name, merchants.slug AS merchant_slug").
		Joins("LEFT JOIN merchants ON merchants.id = products.merchant_id")
	if merchantID != 0 {
		stmt = stmt.Where("products.merchant_id = ?", merchantID)
	}

	var rows []domain.ProductWithMerchant
	err := stmt.
		Order("products.created_at DESC, products.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
