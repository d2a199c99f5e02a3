package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegionCoordinator is shared by many bookings.
type RegionCoordinator struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
