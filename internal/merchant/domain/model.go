package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Merchant struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"type:text;not null;index:ix_merchants_name"`
	Description   *string      `json:"description,omitempty" gorm:"type:text"`
	Slug          string       `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_merchants_slug"`
	LogoKey       *string      `json:"logo_key,omitempty" gorm:"type:text"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdateCounter int64        `json:"update_counter" gorm:"not null;default:0"`
}

func (Merchant) TableName() string { return "merchants" }

// MerchantWithCount is a merchant row joined with its product count.
type MerchantWithCount struct {
	Merchant
	ProductCount int64 `json:"product_count" gorm:"column:product_count"`
}
