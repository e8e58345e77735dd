package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/authctx"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/merchant/domain"
	"github.com/smallbiznis/storefront/internal/session"
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

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Gateway  storage.Gateway
	Policy   *config.UploadPolicyHolder
	Sessions session.Propagator
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	gateway  storage.Gateway
	policy   *config.UploadPolicyHolder
	sessions session.Propagator
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("merchant.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		gateway:  p.Gateway,
		policy:   p.Policy,
		sessions: p.Sessions,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxTextLen {
		return nil, domain.ErrInvalidName
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}
	if req.Logo != nil {
		if err := storage.ValidateUpload(s.policy.Get(), req.Logo.Data, req.Logo.ContentType); err != nil {
			return nil, err
		}
	}

	// Upload before insert. A failed upload means no row; a failed insert
	// after upload leaves an orphaned object, which is logged, not cleaned.
	var logoKey *string
	if req.Logo != nil {
		key, err := s.gateway.Store(ctx, req.Logo.Data, req.Logo.ContentType)
		if err != nil {
			return nil, err
		}
		logoKey = &key
	}

	slug, err := slugs.Resolve(ctx, name, func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, s.db, candidate, 0)
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	merchant := domain.Merchant{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: req.Description,
		Slug:        slug,
		LogoKey:     logoKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &merchant); err != nil {
		if logoKey != nil {
			s.log.Warn("merchant insert failed after upload, object orphaned",
				zap.String("logo_key", *logoKey), zap.Error(err))
		}
		// A concurrent writer claimed the slug between the existence check
		// and this insert.
		if db.IsDuplicateKeyErr(err) {
			return nil, slugs.ErrExhausted
		}
		return nil, err
	}

	// The user's owned-merchant set changed; refresh cached sessions before
	// returning so the next request sees it. Propagation failure never rolls
	// back the committed row.
	if err := s.sessions.UpdateAllSessionsOfUser(ctx, userID); err != nil {
		s.log.Error("session propagation failed, sessions stale until refresh",
			zap.String("user_id", userID.String()), zap.Error(err))
	}

	return s.toResponse(ctx, &merchant, 0), nil
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

	fields := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > maxTextLen {
			return nil, domain.ErrInvalidName
		}
		fields["name"] = name

		// Regenerate the slug only when the name actually changed.
		if name != current.Name {
			slug, err := slugs.Resolve(ctx, name, func(ctx context.Context, candidate string) (bool, error) {
				return s.repo.SlugExists(ctx, s.db, candidate, id)
			})
			if err != nil {
				return nil, err
			}
			fields["slug"] = slug
		}
	}

	if req.Description != nil {
		if err := validateDescription(req.Description); err != nil {
			return nil, err
		}
		fields["description"] = *req.Description
	}

	if req.Logo != nil {
		if err := storage.ValidateUpload(s.policy.Get(), req.Logo.Data, req.Logo.ContentType); err != nil {
			return nil, err
		}
		key, err := s.gateway.Store(ctx, req.Logo.Data, req.Logo.ContentType)
		if err != nil {
			return nil, err
		}
		fields["logo_key"] = key
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
	return s.toResponse(ctx, updated, 0), nil
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

	// Owned products go with the merchant. The child delete runs explicitly
	// inside the transaction so the invariant holds even where the engine
	// does not enforce the FK cascade (sqlite with foreign_keys off).
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM products WHERE merchant_id = ?`, id).Error; err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *Service) GetByID(ctx context.Context, rawID string) (*domain.Response, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	merchant, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, domain.ErrNotFound
	}
	return s.toResponse(ctx, merchant, 0), nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Response, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrInvalidSlug
	}

	merchant, err := s.repo.FindBySlug(ctx, s.db, slug)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, domain.ErrNotFound
	}
	return s.toResponse(ctx, merchant, 0), nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	rows, err := s.repo.ListWithProductCount(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, *s.toResponse(ctx, &row.Merchant, row.ProductCount))
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

// toResponse re-derives the display URL from the stored key on every read;
// signed URLs expire and are never persisted.
func (s *Service) toResponse(ctx context.Context, m *domain.Merchant, productCount int64) *domain.Response {
	resp := &domain.Response{
		ID:            m.ID.String(),
		Name:          m.Name,
		Description:   m.Description,
		Slug:          m.Slug,
		ProductCount:  productCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		UpdateCounter: m.UpdateCounter,
	}
	if m.LogoKey != nil && *m.LogoKey != "" {
		resp.LogoKey = *m.LogoKey
		url, err := s.gateway.URLFor(ctx, *m.LogoKey, storage.URLOptions{})
		if err != nil {
			s.log.Warn("derive logo url failed", zap.String("logo_key", *m.LogoKey), zap.Error(err))
		}
		resp.LogoURL = url
	}
	return resp
}

func validateDescription(desc *string) error {
	if desc != nil && len(*desc) > maxTextLen {
		return domain.ErrInvalidDescription
	}
	return nil
}
