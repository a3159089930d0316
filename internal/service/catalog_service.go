package service

import (
	"context"

	"gamelibrary/backend/internal/errs"
	"gamelibrary/backend/internal/models"
	"gamelibrary/backend/internal/validation"

	"gorm.io/gorm"
)

// CatalogService manages the genres and platforms games can be attached to.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	genres := []models.Genre{}
	if err := s.db.WithContext(ctx).Order("name").Find(&genres).Error; err != nil {
		return nil, errs.Persistence("list genres", err)
	}
	return genres, nil
}

func (s *CatalogService) AddGenre(ctx context.Context, genre *models.Genre) error {
	if err := validation.Struct(genre); err != nil {
		return err
	}
	genre.ID = 0
	return errs.Persistence("add genre", s.db.WithContext(ctx).Create(genre).Error)
}

func (s *CatalogService) ListPlatforms(ctx context.Context) ([]models.Platform, error) {
	platforms := []models.Platform{}
	if err := s.db.WithContext(ctx).Order("name").Find(&platforms).Error; err != nil {
		return nil, errs.Persistence("list platforms", err)
	}
	return platforms, nil
}

func (s *CatalogService) AddPlatform(ctx context.Context, platform *models.Platform) error {
	if err := validation.Struct(platform); err != nil {
		return err
	}
	platform.ID = 0
	return errs.Persistence("add platform", s.db.WithContext(ctx).Create(platform).Error)
}
