package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on.
// The unique bookingCode index turns a concurrent create with the same
// contingent/city prefix into a duplicate key error the service retries.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		BookingCollection: {
			{
				Keys:    bson.D{{Key: "bookingCode", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_booking_code"),
			},
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
				Options: options.Index().SetName("created_desc"),
			},
		},
		RegionCoordinatorCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("name")},
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetName("phone")},
		},
		MasterRegionCollection: {
			{
				Keys:    bson.D{{Key: "id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_province_id"),
			},
		},
		UserCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_email"),
			},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
