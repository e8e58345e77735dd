package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/gallery/domain"
	"github.com/smallbiznis/storefront/internal/storage"
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
		log:     p.Log.Named("gallery.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		gateway: p.Gateway,
		policy:  p.Policy,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}
	if req.Image == nil || len(req.Image.Data) == 0 {
		return nil, domain.ErrInvalidImage
	}
	if err := storage.ValidateUpload(s.policy.Get(), req.Image.Data, req.Image.ContentType); err != nil {
		return nil, err
	}

	key, err := s.gateway.Store(ctx, req.Image.Data, req.Image.ContentType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	gallery := domain.Gallery{
		ID:          s.genID.Generate(),
		Description: req.Description,
		ImageKey:    &key,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &gallery); err != nil {
		s.log.Warn("gallery insert failed after upload, object orphaned",
			zap.String("image_key", key), zap.Error(err))
		return nil, err
	}

	return s.toResponse(ctx, &gallery), nil
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

	if req.Description != nil {
		if err := validateDescription(req.Description); err != nil {
			return nil, err
		}
		fields["description"] = *req.Description
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

	gallery, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if gallery == nil {
		return nil, domain.ErrNotFound
	}
	return s.toResponse(ctx, gallery), nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	galleries, err := s.repo.List(ctx, s.db, req.Limit)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(galleries))
	for i := range galleries {
		resp = append(resp, *s.toResponse(ctx, &galleries[i]))
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

func (s *Service) toResponse(ctx context.Context, g *domain.Gallery) *domain.Response {
	resp := &domain.Response{
		ID:            g.ID.String(),
		Description:   g.Description,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
		UpdateCounter: g.UpdateCounter,
	}
	if g.ImageKey != nil && *g.ImageKey != "" {
		resp.ImageKey = *g.ImageKey
		url, err := s.gateway.URLFor(ctx, *g.ImageKey, storage.URLOptions{})
		if err != nil {
			s.log.Warn("derive image url failed", zap.String("image_key", *g.ImageKey), zap.Error(err))
		}
		resp.ImageURL = url
	}
	return resp
}

func validateDescription(desc *string) error {
	if desc != nil && len(*desc) > maxTextLen {
		return domain.ErrInvalidDescription
	}
	return nil
}
