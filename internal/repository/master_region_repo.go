// internal/repository/master_region_repo.go
package repository

import (
	"context"
	"errors"

	"contingent-booking-api-server/internal/database"
	"contingent-booking-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MasterRegionRepository reads the pre-seeded province/regency reference data.
type MasterRegionRepository struct {
	coll *mongo.Collection
}

func NewMasterRegionRepository(db *mongo.Database) *MasterRegionRepository {
	return &MasterRegionRepository{coll: db.Collection(database.MasterRegionCollection)}
}

var provinceProjection = bson.D{
	{Key: "_id", Value: 0},
	{Key: "id", Value: 1},
	{Key: "name", Value: 1},
	{Key: "regencies.id", Value: 1},
	{Key: "regencies.name", Value: 1},
}

// AllProvinces returns every province with its regencies.
func (r *MasterRegionRepository) AllProvinces(ctx context.Context) ([]models.Province, error) {
	opts := options.Find().
		SetProjection(provinceProjection).
		SetSort(bson.D{{Key: "id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	provinces := []models.Province{}
	if err := cursor.All(ctx, &provinces); err != nil {
		return nil, err
	}
	return provinces, nil
}

// ProvinceByID returns one province with its regencies.
func (r *MasterRegionRepository) ProvinceByID(ctx context.Context, id string) (*models.Province, error) {
	var province models.Province
	err := r.coll.FindOne(ctx, bson.M{"id": id}, options.FindOne().SetProjection(provinceProjection)).Decode(&province)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &province, nil
}
