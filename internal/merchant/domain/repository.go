package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, merchant *Merchant) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Merchant, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Merchant, error)
	// SlugExists checks global slug uniqueness, optionally excluding one
	// merchant (its own row, during updates).
	SlugExists(ctx context.Context, db *gorm.DB, slug string, excludeID snowflake.ID) (bool, error)
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ListWithProductCount(ctx context.Context, db *gorm.DB) ([]MerchantWithCount, error)
}
