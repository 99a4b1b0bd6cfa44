package services

import (
	"context"

	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
)

type regionService struct {
	regions ports.RegionRepository
}

func NewRegionService(regions ports.RegionRepository) ports.RegionService {
	return &regionService{regions: regions}
}

func (s *regionService) ListRegions(ctx context.Context) ([]domain.Region, error) {
	return s.regions.ListRegions(ctx)
}

func (s *regionService) SubregionsOf(ctx context.Context, regionID uint) ([]domain.Subregion, error) {
	if _, err := s.regions.GetRegion(ctx, regionID); err != nil {
		return nil, err
	}
	return s.regions.SubregionsOf(ctx, regionID)
}

func (s *regionService) RegionOf(ctx context.Context, subregionID uint) (*domain.Region, error) {
	subregion, err := s.regions.GetSubregion(ctx, subregionID)
	if err != nil {
		return nil, err
	}
	return s.regions.GetRegion(ctx, subregion.RegionID)
}

func (s *regionService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.regions.ListCategories(ctx)
}

func (s *regionService) ValidateSubregion(ctx context.Context, regionID uint, subregionID uint) error {
	subregion, err := s.regions.GetSubregion(ctx, subregionID)
	if err != nil {
		return err
	}
	if subregion.RegionID != regionID {
		return domain.ErrSubregionMismatch
	}
	return nil
}
