package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Gallery struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	Description   *string      `json:"description,omitempty" gorm:"type:text"`
	ImageKey      *string      `json:"image_key,omitempty" gorm:"type:text"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP;index:ix_galleries_created_at"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdateCounter int64        `json:"update_counter" gorm:"not null;default:0"`
}

func (Gallery) TableName() string { return "galleries" }
