package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
}

type Upload struct {
	Data        []byte
	ContentType string
}

type CreateRequest struct {
	Description *string
	Image       *Upload
}

/// UpdateRequest applies a partial update: nil pointer leaves the field
// unchanged, a pointer to the zero value clears it.
type UpdateRequest struct {
	ID          string
	Description *string
	Image       *Upload
}

type ListRequest struct {
	Limit int
}

type Response struct {
	ID            string    `json:"id"`
	Description   *string   `json:"description,omitempty"`
	ImageKey      string    `json:"image_key,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UpdateCounter int64     `json:"update_counter"`
}

var (
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidImage       = errors.New("invalid_image")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)
