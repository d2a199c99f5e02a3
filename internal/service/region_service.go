package service

import (
	"context"
	"errors"
	"fmt"

	"contingent-booking-api-server/internal/models"
	"contingent-booking-api-server/internal/repository"

	"github.com/rs/zerolog/log"
)

// ProvinceCache is satisfied by cache.ProvinceCache.
type ProvinceCache interface {
	Get(ctx context.Context) ([]models.Province, error)
	Set(ctx context.Context, provinces []models.Province) error
	Invalidate(ctx context.Context) error
}

// RegionService reads the master_region reference data.
type RegionService struct {
	regions RegionStore
	cache   ProvinceCache
}

// NewRegionService returns a RegionService. cache may be nil.
func NewRegionService(regions RegionStore, cache ProvinceCache) *RegionService {
	return &RegionService{regions: regions, cache: cache}
}

// AllProvinces returns every province with its regencies. The cache is read
// through; its failures are logged and never surfaced.
func (s *RegionService) AllProvinces(ctx context.Context) ([]models.Province, error) {
	if s.cache != nil {
		provinces, err := s.cache.Get(ctx)
		if err == nil {
			return provinces, nil
		}
		log.Debug().Err(err).Msg("province cache unavailable, reading from mongo")
	}

	provinces, err := s.regions.AllProvinces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, provinces); err != nil {
			log.Warn().Err(err).Msg("failed to cache provinces")
		}
	}
	return provinces, nil
}

// InvalidateCache drops the cached province list after the reference data
// changed. Cache failures are logged.
func (s *RegionService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate province cache")
		return
	}
	log.Info().Msg("province cache invalidated")
}

func (s *RegionService) ProvinceByID(ctx context.Context, id string) (*models.Province, error) {
	province, err := s.regions.ProvinceByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProvinceNotFound
		}
		return nil, fmt.Errorf("find province: %w", err)
	}
	return province, nil
}

func (s *RegionService) RegenciesByProvinceID(ctx context.Context, id string) ([]models.Regency, error) {
	province, err := s.ProvinceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if province.Regencies == nil {
		return []models.Regency{}, nil
	}
	return province.Regencies, nil
}

// CoordinatorService serves the region coordinator lookups.
type CoordinatorService struct {
	coordinators CoordinatorStore
}

func NewCoordinatorService(coordinators CoordinatorStore) *CoordinatorService {
	return &CoordinatorService{coordinators: coordinators}
}

func (s *CoordinatorService) All(ctx context.Context) ([]models.RegionCoordinator, error) {
	return s.coordinators.All(ctx)
}

func (s *CoordinatorService) ByName(ctx context.Context, q string) ([]models.RegionCoordinator, error) {
	return s.coordinators.SearchByName(ctx, q)
}

func (s *CoordinatorService) ByPhone(ctx context.Context, q string) ([]models.RegionCoordinator, error) {
	return s.coordinators.SearchByPhone(ctx, q)
}
