// internal/repository/region_coordinator_repo.go
package repository

import (
	"context"
	"errors"
	"regexp"

	"contingent-booking-api-server/internal/database"
	"contingent-booking-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CoordinatorSearchLimit caps the name/phone lookups.
const CoordinatorSearchLimit = 10

type RegionCoordinatorRepository struct {
	coll *mongo.Collection
}

func NewRegionCoordinatorRepository(db *mongo.Database) *RegionCoordinatorRepository {
	return &RegionCoordinatorRepository{coll: db.Collection(database.RegionCoordinatorCollection)}
}

var coordinatorProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "name", Value: 1},
	{Key: "phone", Value: 1},
}

// containsFilter matches field values containing q literally. Case-sensitive.
func containsFilter(field, q string) bson.M {
	return bson.M{field: primitive.Regex{Pattern: regexp.QuoteMeta(q)}}
}

func (r *RegionCoordinatorRepository) find(ctx context.Context, filter bson.M, limit int64) ([]models.RegionCoordinator, error) {
	opts := options.Find().
		SetProjection(coordinatorProjection).
		SetSort(bson.D{{Key: "name", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	coordinators := []models.RegionCoordinator{}
	if err := cursor.All(ctx, &coordinators); err != nil {
		return nil, err
	}
	return coordinators, nil
}

// All returns every coordinator.
func (r *RegionCoordinatorRepository) All(ctx context.Context) ([]models.RegionCoordinator, error) {
	return r.find(ctx, bson.M{}, 0)
}

// SearchByName returns at most CoordinatorSearchLimit coordinators whose name contains q.
func (r *RegionCoordinatorRepository) SearchByName(ctx context.Context, q string) ([]models.RegionCoordinator, error) {
	return r.find(ctx, containsFilter("name", q), CoordinatorSearchLimit)
}

// SearchByPhone returns at most CoordinatorSearchLimit coordinators whose phone contains q.
func (r *RegionCoordinatorRepository) SearchByPhone(ctx context.Context, q string) ([]models.RegionCoordinator, error) {
	return r.find(ctx, containsFilter("phone", q), CoordinatorSearchLimit)
}

func (r *RegionCoordinatorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RegionCoordinator, error) {
	var coordinator models.RegionCoordinator
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&coordinator)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &coordinator, nil
}

// Insert stores c. A zero c.ID is replaced by the generated id.
func (r *RegionCoordinatorRepository) Insert(ctx context.Context, c *models.RegionCoordinator) error {
	result, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

// Delete removes the coordinator with id.
func (r *RegionCoordinatorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
