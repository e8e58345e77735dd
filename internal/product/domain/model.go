package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Product struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	MerchantID    snowflake.ID `json:"merchant_id" gorm:"not null;index:ix_products_merchant;uniqueIndex:ux_products_merchant_slug,priority:1"`
	Name          string       `json:"name" gorm:"type:text;not null;index:ix_products_name"`
	Description   string       `json:"description" gorm:"type:text;not null"`
	URL           string       `json:"url" gorm:"type:text;not null"`
	PriceCents    int64        `json:"price_cents" gorm:"not null"`
	Slug          string       `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_products_merchant_slug,priority:2"`
	ImageKey      *string      `json:"image_key,omitempty" gorm:"type:text"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdateCounter int64        `json:"update_counter" gorm:"not null;default:0"`
}

func (Product) TableName() string { return "products" }

// ProductWithMerchant is a product row joined with its merchant summary.
type ProductWithMerchant struct {
	Product
	MerchantName string `gorm:"column:merchant_name"`
	MerchantSlug string `gorm:"column:merchant_slug"`
}
