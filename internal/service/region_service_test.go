package service

import (
	"context"
	"errors"
	"testing"

	"contingent-booking-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvinceCache struct {
	provinces     []models.Province
	getErr        error
	setErr        error
	sets          int
	invalidations int
}

func (c *stubProvinceCache) Invalidate(context.Context) error {
	c.invalidations++
	c.provinces = nil
	c.getErr = errors.New("cache miss")
	return nil
}

func (c *stubProvinceCache) Get(context.Context) ([]models.Province, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.provinces, nil
}

func (c *stubProvinceCache) Set(_ context.Context, provinces []models.Province) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.provinces = provinces
	return nil
}

func TestAllProvinces(t *testing.T) {
	ctx := context.Background()

	t.Run("without cache", func(t *testing.T) {
		regions := newFakeRegions()
		svc := NewRegionService(regions, nil)

		got, err := svc.AllProvinces(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Len(t, got[0].Regencies, 2)
	})

	t.Run("miss fills the cache then hits", func(t *testing.T) {
		regions := newFakeRegions()
		cache := &stubProvinceCache{getErr: errors.New("cache miss")}
		svc := NewRegionService(regions, cache)

		_, err := svc.AllProvinces(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.sets)

		cache.getErr = nil
		got, err := svc.AllProvinces(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, 1, regions.calls)
	})

	t.Run("cache failures fall through", func(t *testing.T) {
		regions := newFakeRegions()
		cache := &stubProvinceCache{getErr: errors.New("connection refused"), setErr: errors.New("connection refused")}
		svc := NewRegionService(regions, cache)

		got, err := svc.AllProvinces(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestInvalidateCache(t *testing.T) {
	ctx := context.Background()
	regions := newFakeRegions()
	cache := &stubProvinceCache{provinces: []models.Province{{ID: "stale"}}}
	svc := NewRegionService(regions, cache)

	got, err := svc.AllProvinces(ctx)
	require.NoError(t, err)
	assert.Equal(t, "stale", got[0].ID)

	svc.InvalidateCache(ctx)
	assert.Equal(t, 1, cache.invalidations)

	got, err = svc.AllProvinces(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, regions.calls)

	// Without a cache it is a no-op.
	NewRegionService(regions, nil).InvalidateCache(ctx)
}

func TestProvinceLookups(t *testing.T) {
	ctx := context.Background()
	svc := NewRegionService(newFakeRegions(), nil)

	p, err := svc.ProvinceByID(ctx, "33")
	require.NoError(t, err)
	assert.Equal(t, "JAWA TENGAH", p.Name)

	_, err = svc.ProvinceByID(ctx, "99")
	require.ErrorIs(t, err, ErrProvinceNotFound)

	regencies, err := svc.RegenciesByProvinceID(ctx, "35")
	require.NoError(t, err)
	assert.Equal(t, []models.Regency{{ID: "3525", Name: "KABUPATEN GRESIK"}, {ID: "3578", Name: "KOTA SURABAYA"}}, regencies)

	_, err = svc.RegenciesByProvinceID(ctx, "99")
	require.ErrorIs(t, err, ErrProvinceNotFound)
}

func TestCoordinatorLookups(t *testing.T) {
	ctx := context.Background()
	store := &fakeCoordinators{}
	for i := 0; i < 12; i++ {
		require.NoError(t, store.Insert(ctx, &models.RegionCoordinator{Name: "Budi", Phone: "0812"}))
	}
	require.NoError(t, store.Insert(ctx, &models.RegionCoordinator{Name: "Sari", Phone: "0899"}))
	svc := NewCoordinatorService(store)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 13)

	byName, err := svc.ByName(ctx, "Bud")
	require.NoError(t, err)
	assert.Len(t, byName, 10)

	byName, err = svc.ByName(ctx, "bud")
	require.NoError(t, err)
	assert.Empty(t, byName)

	byPhone, err := svc.ByPhone(ctx, "99")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Sari", byPhone[0].Name)
}
