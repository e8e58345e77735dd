package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ProductWithMerchant, error)
	// SlugExists checks slug uniqueness within one merchant's scope,
	// optionally excluding one product (its own row, during updates).
	SlugExists(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, slug string, excludeID snowflake.ID) (bool, error)
	MerchantExists(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) (bool, error)
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	List(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) ([]ProductWithMerchant, error)
}
