package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"contingent-booking-api-server/internal/models"
)

// ErrMiss is returned when a key is not cached.
var ErrMiss = errors.New("cache miss")

const provinceListKey = "master_region:provinces"

// Store is the subset of RedisClient the typed caches need.
type Store interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
}

// ProvinceCache keeps the serialized province list. The reference data is
// static, so entries only expire by TTL.
type ProvinceCache struct {
	store Store
	ttl   time.Duration
}

func NewProvinceCache(store Store, ttl time.Duration) *ProvinceCache {
	return &ProvinceCache{store: store, ttl: ttl}
}

// Get returns the cached province list or ErrMiss.
func (c *ProvinceCache) Get(ctx context.Context) ([]models.Province, error) {
	raw, err := c.store.Get(ctx, provinceListKey)
	if err != nil {
		return nil, err
	}
	var provinces []models.Province
	if err := json.Unmarshal([]byte(raw), &provinces); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached provinces: %w", err)
	}
	return provinces, nil
}

// Set stores the province list.
func (c *ProvinceCache) Set(ctx context.Context, provinces []models.Province) error {
	raw, err := json.Marshal(provinces)
	if err != nil {
		return fmt.Errorf("failed to marshal provinces: %w", err)
	}
	return c.store.Set(ctx, provinceListKey, string(raw), c.ttl)
}

// Invalidate drops the cached list.
func (c *ProvinceCache) Invalidate(ctx context.Context) error {
	return c.store.Delete(ctx, provinceListKey)
}
