package db

import (
	"context"
	"errors"

	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
	"github.com/jumush/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

// regionRepository serves the read-only region/subregion/category catalog.
type regionRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRegionRepository(db *gorm.DB, log *logger.Logger) ports.RegionRepository {
	return &regionRepository{db: db, log: log}
}

func (r *regionRepository) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var regions []domain.Region
	if err := r.db.WithContext(ctx).Order("title").Find(&regions).Error; err != nil {
		r.log.Errorw("region_repo_list_failed", "error", err)
		return nil, err
	}
	return regions, nil
}

func (r *regionRepository) GetRegion(ctx context.Context, id uint) (*domain.Region, error) {
	var region domain.Region
	if err := r.db.WithContext(ctx).First(&region, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRegionNotFound
		}
		return nil, err
	}
	return &region, nil
}

func (r *regionRepository) SubregionsOf(ctx context.Context, regionID uint) ([]domain.Subregion, error) {
	var subregions []domain.Subregion
	err := r.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		Order("title").
		Find(&subregions).Error
	if err != nil {
		r.log.Errorw("region_repo_subregions_failed", "region_id", regionID, "error", err)
		return nil, err
	}
	return subregions, nil
}

func (r *regionRepository) GetSubregion(ctx context.Context, id uint) (*domain.Subregion, error) {
	var subregion domain.Subregion
	if err := r.db.WithContext(ctx).First(&subregion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubregionNotFound
		}
		return nil, err
	}
	return &subregion, nil
}

func (r *regionRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).Order("title").Find(&categories).Error; err != nil {
		r.log.Errorw("region_repo_categories_failed", "error", err)
		return nil, err
	}
	return categories, nil
}

func (r *regionRepository) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}
