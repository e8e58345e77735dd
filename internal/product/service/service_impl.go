package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/smallbiznis/storefront/internal/slugs"
	"github.com/smallbiznis/storefront/internal/storage"
	"github.com/smallbiznis/storefront/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxTextLen = 255

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Gateway storage.Gateway
	Policy  *config.UploadPolicyHolder
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	gateway storage.Gateway
	policy  *config.UploadPolicyHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("product.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		gateway: p.Gateway,
		policy:  p.Policy,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	merchantID, err := snowflake.ParseString(strings.TrimSpace(req.MerchantID))
	if err != nil || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxTextLen {
		return nil, domain.ErrInvalidName
	}
	description := strings.TrimSpace(req.Description)
	if description == "" || len(description) > maxTextLen {
		return nil, domain.ErrInvalidDescription
	}
	buyURL := strings.TrimSpace(req.URL)
	if err := validateURL(buyURL); err != nil {
		return nil, err
	}
	if req.PriceCents < 0 {
		return nil, domain.ErrInvalidPrice
	}
	if req.Image != nil {
		if err := storage.ValidateUpload(s.policy.Get(), req.Image.Data, req.Image.ContentType); err != nil {
			return nil, err
		}
	}

	exists, err := s.repo.MerchantExists(ctx, s.db, merchantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrInvalidMerchant
	}

	// Upload before insert: a failed upload means no row, a failed insert
	// after upload leaves an orphaned object (logged, never cleaned up).
	var imageKey *string
	if req.Image != nil {
		key, err := s.gateway.Store(ctx, req.Image.Data, req.Image.ContentType)
		if err != nil {
			return nil, err
		}
		imageKey = &key
	}

	// Slug uniqueness is scoped to this merchant; the same slug may exist
	// under a different merchant.
	slug, err := slugs.Resolve(ctx, name, func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, s.db, merchantID, candidate, 0)
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:          s.genID.Generate(),
		MerchantID:  merchantID,
		Name:        name,
		Description: description,
		URL:         buyURL,
		PriceCents:  req.PriceCents,
		Slug:        slug,
		ImageKey:    imageKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		if imageKey != nil {
			s.log.Warn("product insert failed after upload, object orphaned",
				zap.String("image_key", *imageKey), zap.Error(err))
		}
		// A concurrent writer claimed the slug between the existence check
		// and this insert.
		if db.IsDuplicateKeyErr(err) {
			return nil, slugs.ErrExhausted
		}
		return nil, err
	}

	return s.toResponse(ctx, &domain.ProductWithMerchant{Product: product}), nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	// Validation is fail-fast: nothing is written, stored or uploaded when
	// any supplied field is out of range.
	fields := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > maxTextLen {
			return nil, domain.ErrInvalidName
		}
		fields["name"] = name

		if name != current.Name {
			slug, err := slugs.Resolve(ctx, name, func(ctx context.Context, candidate string) (bool, error) {
				return s.repo.SlugExists(ctx, s.db, current.MerchantID, candidate, id)
			})
			if err != nil {
				return nil, err
			}
			fields["slug"] = slug
		}
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" || len(description) > maxTextLen {
			return nil, domain.ErrInvalidDescription
		}
		fields["description"] = description
	}

	if req.URL != nil {
		buyURL := strings.TrimSpace(*req.URL)
		if err := validateURL(buyURL); err != nil {
			return nil, err
		}
		fields["url"] = buyURL
	}

	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, domain.ErrInvalidPrice
		}
		fields["price_cents"] = *req.PriceCents
	}

	if req.Image != nil {
		if err := storage.ValidateUpload(s.policy.Get(), req.Image.Data, req.Image.ContentType); err != nil {
			return nil, err
		}
		key, err := s.gateway.Store(ctx, req.Image.Data, req.Image.ContentType)
		if err != nil {
			return nil, err
		}
		fields["image_key"] = key
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if err := s.repo.Update(ctx, s.db, id, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return s.toResponse(ctx, updated), nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) GetByID(ctx context.Context, rawID string) (*domain.Response, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return s.toResponse(ctx, row), nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	var merchantID snowflake.ID
	if raw := strings.TrimSpace(req.MerchantID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil || parsed == 0 {
			return nil, domain.ErrInvalidMerchant
		}
		merchantID = parsed
	}

	rows, err := s.repo.List(ctx, s.db, merchantID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, *s.toResponse(ctx, &row))
	}
	return resp, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func (s *Service) toResponse(ctx context.Context, row *domain.ProductWithMerchant) *domain.Response {
	resp := &domain.Response{
		ID:            row.ID.String(),
		MerchantID:    row.MerchantID.String(),
		Name:          row.Name,
		Description:   row.Description,
		URL:           row.URL,
		PriceCents:    row.PriceCents,
		Slug:          row.Slug,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
		UpdateCounter: row.UpdateCounter,
	}
	if row.MerchantName != "" || row.MerchantSlug != "" {
		resp.Merchant = &domain.MerchantSummary{
			ID:   row.MerchantID.String(),
			Name: row.MerchantName,
			Slug: row.MerchantSlug,
		}
	}
	if row.ImageKey != nil && *row.ImageKey != "" {
		resp.ImageKey = *row.ImageKey
		url, err := s.gateway.URLFor(ctx, *row.ImageKey, storage.URLOptions{})
		if err != nil {
			s.log.Warn("derive image url failed", zap.String("image_key", *row.ImageKey), zap.Error(err))
		}
		resp.ImageURL = url
	}
	return resp
}

func validateURL(raw string) error {
	if raw == "" || len(raw) > maxTextLen {
		return domain.ErrInvalidURL
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return domain.ErrInvalidURL
	}
	return nil
}
