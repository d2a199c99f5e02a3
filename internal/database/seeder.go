// internal/database/seeder.go
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"contingent-booking-api-server/config"
	"contingent-booking-api-server/internal/auth"
	"contingent-booking-api-server/internal/models"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedSuperAdmin creates the initial superadmin account when it does not exist yet.
// Seeding is skipped when no admin password is configured.
func SeedSuperAdmin(ctx context.Context, db *mongo.Database, cfg config.SeedConfig) error {
	if cfg.AdminPassword == "" {
		log.Warn().Msg("seed.adminPassword is empty, super admin seeding skipped")
		return nil
	}

	userCollection := db.Collection(UserCollection)

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": cfg.AdminEmail})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Str("email", cfg.AdminEmail).Msg("super admin already exists, seeding skipped")
		return nil
	}

	hashedPassword, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	superAdmin := models.User{
		Email:     cfg.AdminEmail,
		Name:      "Super Admin",
		Password:  hashedPassword,
		Role:      models.RoleSuperAdmin,
		Status:    models.UserStatusActive,
		CreatedAt: time.Now(),
	}
	if _, err := userCollection.InsertOne(ctx, superAdmin); err != nil {
		return err
	}

	log.Info().Str("email", cfg.AdminEmail).Msg("super admin seeded")
	return nil
}

// LoadProvinces decodes the master region reference file.
func LoadProvinces(path string) ([]models.Province, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read master region file: %w", err)
	}
	var provinces []models.Province
	if err := json.Unmarshal(raw, &provinces); err != nil {
		return nil, fmt.Errorf("decode master region file: %w", err)
	}
	return provinces, nil
}

// SeedMasterRegion fills the master_region collection from the reference file
// when the collection is empty and returns the number of provinces inserted.
// The collection is never mutated afterwards.
func SeedMasterRegion(ctx context.Context, db *mongo.Database, path string) (int, error) {
	coll := db.Collection(MasterRegionCollection)

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Debug().Int64("provinces", count).Msg("master region already seeded")
		return 0, nil
	}
	if path == "" {
		log.Warn().Msg("master region collection is empty and no seed file is configured")
		return 0, nil
	}

	provinces, err := LoadProvinces(path)
	if err != nil {
		return 0, err
	}
	if len(provinces) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(provinces))
	for _, p := range provinces {
		docs = append(docs, p)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return 0, fmt.Errorf("insert master region: %w", err)
	}

	log.Info().Int("provinces", len(provinces)).Msg("master region seeded")
	return len(provinces), nil
}
