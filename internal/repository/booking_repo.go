// internal/repository/booking_repo.go
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

// BookingRepository handles the bookings collection.
type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(database.BookingCollection)}
}

// codePrefixFilter matches booking codes made of prefix followed only by the sequence digits.
func codePrefixFilter(prefix string) bson.M {
	return bson.M{"bookingCode": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix) + `\d+$`}}
}

// contingentNameFilter is a case-insensitive literal substring match.
func contingentNameFilter(name string) bson.M {
	return bson.M{"contingentName": primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}}
}

// withCoordinator appends the stages resolving regionCoordinatorId into regionCoordinator.
func withCoordinator(stages ...bson.D) mongo.Pipeline {
	pipeline := mongo.Pipeline(stages)
	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.RegionCoordinatorCollection},
			{Key: "localField", Value: "regionCoordinatorId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "regionCoordinator"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$regionCoordinator"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	)
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// CountByCodePrefix counts bookings whose code is prefix followed by a sequence number.
func (r *BookingRepository) CountByCodePrefix(ctx context.Context, prefix string) (int64, error) {
	return r.coll.CountDocuments(ctx, codePrefixFilter(prefix))
}

// Insert stores b and sets its generated id.
func (r *BookingRepository) Insert(ctx context.Context, b *models.Booking) error {
	result, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

// FindByID returns one booking with its coordinator resolved.
func (r *BookingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	pipeline := withCoordinator(
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
		bson.D{{Key: "$limit", Value: 1}},
	)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}

	var booking models.Booking
	if err := cursor.Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// List returns bookings newest first with their coordinators resolved.
// A limit of 0 means no limit.
func (r *BookingRepository) List(ctx context.Context, skip, limit int64) ([]models.Booking, error) {
	stages := []bson.D{{{Key: "$sort", Value: newestFirst}}}
	if skip > 0 {
		stages = append(stages, bson.D{{Key: "$skip", Value: skip}})
	}
	if limit > 0 {
		stages = append(stages, bson.D{{Key: "$limit", Value: limit}})
	}

	cursor, err := r.coll.Aggregate(ctx, withCoordinator(stages...))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Update applies fields with $set and returns the updated document.
func (r *BookingRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Booking, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// Delete removes the booking and returns it.
func (r *BookingRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FilterContingentName returns id/name pairs of bookings whose contingent name contains name.
func (r *BookingRepository) FilterContingentName(ctx context.Context, name string) ([]models.ContingentNameOption, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 1}, {Key: "contingentName", Value: 1}}).
		SetSort(bson.D{{Key: "contingentName", Value: 1}})

	cursor, err := r.coll.Find(ctx, contingentNameFilter(name), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	names := []models.ContingentNameOption{}
	if err := cursor.All(ctx, &names); err != nil {
		return nil, err
	}
	return names, nil
}
