package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"MONGO_URI", "MONGO_DBNAME", "SERVER_PORT", "APP_ENV", "JWT_SECRET", "JWT_EXPIRATION", "REDIS_ADDR", "S3_BUCKET", "BOOKING_CODE_RETRIES"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "contingent_booking", cfg.Mongo.DBName)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 3, cfg.Booking.CodeRetries)
	assert.Equal(t, "data/master_region.json", cfg.Seed.MasterRegionFile)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := `
server:
  port: "9090"
  env: production
  allowedOrigins:
    - https://admin.example.com
mongo:
  uri: mongodb://yaml:27017
  dbName: bookings_yaml
redis:
  addr: localhost:6379
  provinceTTL: 30m
booking:
  codeRetries: 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	t.Setenv("MONGO_URI", "mongodb://env:27017")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_EXPIRATION", "2h")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://admin.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "mongodb://env:27017", cfg.Mongo.URI)
	assert.Equal(t, "bookings_yaml", cfg.Mongo.DBName)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 30*time.Minute, cfg.Redis.ProvinceTTL)
	assert.Equal(t, 1, cfg.Booking.CodeRetries)
}

func TestLoadConfigRejectsBrokenFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	require.Error(t, err)
}
