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
	GetBySlug(ctx context.Context, slug string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
}

// Upload carries raw asset bytes handed to the storage gateway during a
// create or update.
type Upload struct {
	Data        []byte
	ContentType string
}

type CreateRequest struct {
	Name        string
	Description *string
	Logo        *Upload
}

/// UpdateRequest applies a partial update: nil pointer leaves the field
// unchanged, a pointer to the zero value clears it. The slug is regenerated
// only when Name is set and differs from the stored name.
type UpdateRequest struct {
	ID          string
	Name        *string
	Description *string
	Logo        *Upload
}

type Response struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Slug          string    `json:"slug"`
	LogoKey       string    `json:"logo_key,omitempty"`
	LogoURL       string    `json:"logo_url,omitempty"`
	ProductCount  int64     `json:"product_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UpdateCounter int64     `json:"update_counter"`
}

var (
	ErrInvalidUser        = errors.New("invalid_user")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidSlug        = errors.New("invalid_slug")
	ErrNotFound           = errors.New("not_found")
)
