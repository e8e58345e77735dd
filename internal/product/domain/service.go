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
	MerchantID  string
	Name        string
	Description string
	URL         string
	PriceCents  int64
	Image       *Upload
}

/// UpdateRequest applies a partial update: nil pointer leaves the field
// unchanged, a pointer to the zero value clears it. The slug is regenerated
// only when Name is set and differs from the stored name.
type UpdateRequest struct {
	ID          string
	Name        *string
	Description *string
	URL         *string
	PriceCents  *int64
	Image       *Upload
}

type ListRequest struct {
	MerchantID string
}

// MerchantSummary is the owning merchant embedded in product reads.
type MerchantSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Response struct {
	ID            string           `json:"id"`
	MerchantID    string           `json:"merchant_id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	URL           string           `json:"url"`
	PriceCents    int64            `json:"price_cents"`
	Slug          string           `json:"slug"`
	ImageKey      string           `json:"image_key,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	Merchant      *MerchantSummary `json:"merchant,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	UpdateCounter int64            `json:"update_counter"`
}

var (
	ErrInvalidMerchant    = errors.New("invalid_merchant")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidURL         = errors.New("invalid_url")
	ErrInvalidPrice       = errors.New("invalid_price")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)
